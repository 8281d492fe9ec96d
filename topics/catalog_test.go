package topics

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c := Load("")

	categories := c.Categories()
	require.NotEmpty(t, categories)
	// Categories are listed by sorted key, so "Art & Beauty" (aesthetics)
	// comes first and "Classical Questions" (classics) second.
	assert.Equal(t, "Art & Beauty", categories[0])
	assert.Contains(t, categories, "Classical Questions")
	assert.Contains(t, categories, "Technology & Future")

	all := c.All()
	assert.Contains(t, all, "[Classical Questions] What is justice?")
	assert.Contains(t, all, "[Technology & Future] Can AI have rights?")
	for _, label := range all {
		assert.True(t, strings.HasPrefix(label, "["), "label %q", label)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	content := `custom:
  name: "Custom"
  topics:
    - "Is this a test?"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c := Load(path)
	assert.Equal(t, []string{"Custom"}, c.Categories())
	assert.Equal(t, []string{"Is this a test?"}, c.ByCategory("Custom"))
}

func TestLoadMissingFileFallsBackToEmbedded(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Contains(t, c.Categories(), "Classical Questions")
}

func TestLoadBrokenFileDegradesToFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not: [valid"), 0o644))

	c := Load(path)
	assert.Equal(t, []string{"Classical Questions"}, c.Categories())
	assert.Equal(t, fallbackTopics, c.ByCategory("Classical Questions"))
}

func TestReloadPicksUpFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	first := `a:
  name: "Before"
  topics: ["One?"]
`
	require.NoError(t, os.WriteFile(path, []byte(first), 0o644))
	c := Load(path)
	require.Equal(t, []string{"Before"}, c.Categories())

	second := `a:
  name: "After"
  topics: ["Two?"]
`
	require.NoError(t, os.WriteFile(path, []byte(second), 0o644))
	c.Reload()
	assert.Equal(t, []string{"After"}, c.Categories())
}

func TestByCategoryUnknownName(t *testing.T) {
	c := Load("")
	assert.Nil(t, c.ByCategory("No Such Category"))
}

func TestRandomReturnsKnownTopic(t *testing.T) {
	c := Load("")
	known := make(map[string]bool)
	for _, label := range c.All() {
		known[stripCategory(label)] = true
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		topic := c.Random(rng)
		assert.True(t, known[topic], "unexpected topic %q", topic)
		assert.False(t, strings.HasPrefix(topic, "["))
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		dropdown string
		text     string
		want     string
	}{
		{"free text wins", "[Classical Questions] What is justice?", "What is courage?", "What is courage?"},
		{"free text trimmed", "", "  What is courage?  ", "What is courage?"},
		{"dropdown label stripped", "[Classical Questions] What is justice?", "", "What is justice?"},
		{"ai choice sentinel", AIChoiceLabel, "", ""},
		{"both empty", "", "", ""},
		{"whitespace text ignored", AIChoiceLabel, "   ", ""},
		{"unlabelled dropdown passes through", "What is truth?", "", "What is truth?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.dropdown, tt.text))
		})
	}
}
