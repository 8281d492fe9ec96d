// Package topics holds the library of philosophical topics offered by the
// web UI and resolves a user's selection to a single topic string.
package topics

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	_ "embed"
)

// AIChoiceLabel is the dropdown sentinel meaning "let the system choose".
const AIChoiceLabel = "✨ Let AI choose"

//go:embed topics.yaml
var embeddedCatalog []byte

// fallbackTopics is used when the catalog cannot be parsed at all.
var fallbackTopics = []string{
	"What is justice?",
	"What is happiness?",
	"What is truth?",
}

// Category is one named group of topics.
type Category struct {
	Name   string   `yaml:"name"`
	Topics []string `yaml:"topics"`
}

// Catalog is a read-only topic library. It is constructed explicitly at
// startup and safe for concurrent use; Reload swaps the contents atomically.
type Catalog struct {
	path string

	mu         sync.RWMutex
	categories []Category
	labels     []string
}

// Load builds a catalog from a YAML file, or from the embedded default when
// path is empty. A broken file degrades to the built-in fallback topics.
func Load(path string) *Catalog {
	c := &Catalog{path: path}
	c.reload()
	return c
}

// Reload re-reads the catalog source.
func (c *Catalog) Reload() {
	c.reload()
}

func (c *Catalog) reload() {
	data := embeddedCatalog
	if c.path != "" {
		fileData, err := os.ReadFile(c.path)
		if err == nil {
			data = fileData
		}
	}

	categories, err := parseCatalog(data)
	if err != nil || len(categories) == 0 {
		categories = []Category{{Name: "Classical Questions", Topics: fallbackTopics}}
	}

	labels := make([]string, 0, 32)
	for _, category := range categories {
		for _, topic := range category.Topics {
			labels = append(labels, fmt.Sprintf("[%s] %s", category.Name, topic))
		}
	}

	c.mu.Lock()
	c.categories = categories
	c.labels = labels
	c.mu.Unlock()
}

func parseCatalog(data []byte) ([]Category, error) {
	var raw map[string]Category
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse topic catalog: %w", err)
	}

	// Map iteration order is random; sort keys for a stable listing.
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	categories := make([]Category, 0, len(keys))
	for _, key := range keys {
		category := raw[key]
		if category.Name == "" || len(category.Topics) == 0 {
			continue
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// All returns every topic as a "[Category] Topic" label.
func (c *Catalog) All() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Categories returns the category names in listing order.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.categories))
	for _, category := range c.categories {
		names = append(names, category.Name)
	}
	return names
}

// ByCategory returns the topics of the named category.
func (c *Catalog) ByCategory(name string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, category := range c.categories {
		if category.Name == name {
			out := make([]string, len(category.Topics))
			copy(out, category.Topics)
			return out
		}
	}
	return nil
}

// Random picks one topic using the given source.
func (c *Catalog) Random(rng *rand.Rand) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.labels) == 0 {
		return ""
	}
	label := c.labels[rng.Intn(len(c.labels))]
	return stripCategory(label)
}

// Resolve maps a dropdown value and a free-text value to the topic to run.
// Free text wins; the AI-choice sentinel and an empty dropdown mean "let the
// pipeline choose" and resolve to "".
func Resolve(dropdownValue, textValue string) string {
	if text := strings.TrimSpace(textValue); text != "" {
		return text
	}
	if dropdownValue == "" || dropdownValue == AIChoiceLabel {
		return ""
	}
	return stripCategory(dropdownValue)
}

func stripCategory(label string) string {
	if _, topic, found := strings.Cut(label, "] "); found {
		return topic
	}
	return label
}
