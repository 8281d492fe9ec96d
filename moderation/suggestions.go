package moderation

import "strings"

// defaultSuggestions are the fallback topics when no theme is detected.
var defaultSuggestions = []string{
	"What is justice?",
	"What is the good life?",
	"Is morality relative or universal?",
	"What is consciousness?",
	"Do we have free will?",
	"Can AI have rights?",
	"What is truth?",
	"Is beauty objective?",
}

// suggestionTheme maps detection keywords to a themed suggestion list.
// Themes are matched in declaration order so equal inputs always produce
// equal suggestions.
type suggestionTheme struct {
	keywords    []string
	suggestions []string
}

var suggestionThemes = []suggestionTheme{
	{
		keywords: []string{"ai", "robot", "technology", "computer", "digital", "internet", "social media"},
		suggestions: []string{
			"Can AI have rights?",
			"Should we fear artificial intelligence?",
			"What is consciousness?",
			"Can machines be creative?",
			"What makes us human in a digital age?",
			"Is privacy a fundamental right?",
			"How should we regulate technology?",
			"What is the nature of intelligence?",
		},
	},
	{
		keywords: []string{"moral", "ethics", "right", "wrong", "should", "ought", "good", "bad", "virtue"},
		suggestions: []string{
			"Is morality relative or universal?",
			"What is the good life?",
			"Can morality exist without religion?",
			"What is justice?",
			"Are there universal human rights?",
			"Is utilitarianism the best ethical framework?",
			"What role should empathy play in ethics?",
			"Can an action be both right and wrong?",
		},
	},
	{
		keywords: []string{"government", "politics", "society", "democracy", "freedom", "liberty", "law", "rights"},
		suggestions: []string{
			"What is justice?",
			"What is the ideal form of government?",
			"Are there limits to freedom of speech?",
			"What is the social contract?",
			"Should voting be mandatory?",
			"What role should government play in our lives?",
			"Are universal human rights possible?",
			"Can democracy survive the digital age?",
		},
	},
	{
		keywords: []string{"mind", "consciousness", "brain", "thought", "awareness", "perception", "mental", "cognitive"},
		suggestions: []string{
			"What is consciousness?",
			"Do we have free will?",
			"Is the mind separate from the brain?",
			"What is the nature of reality?",
			"Can we trust our perceptions?",
			"What is the self?",
			"Are our thoughts truly our own?",
			"What is subjective experience?",
		},
	},
	{
		keywords: []string{"meaning", "purpose", "life", "death", "existence", "existential", "absurd", "suffer"},
		suggestions: []string{
			"What is the good life?",
			"What makes life meaningful?",
			"Is there inherent meaning in the universe?",
			"How should we face mortality?",
			"Can we create our own purpose?",
			"What is happiness?",
			"Is suffering necessary for meaning?",
			"What is the examined life?",
		},
	},
	{
		keywords: []string{"truth", "knowledge", "belief", "fact", "science", "evidence", "prove", "certain"},
		suggestions: []string{
			"What is truth?",
			"Can we know anything with certainty?",
			"What is the relationship between science and philosophy?",
			"Is objective truth possible?",
			"What is knowledge?",
			"Can faith and reason coexist?",
			"What are the limits of human knowledge?",
			"How do we distinguish truth from opinion?",
		},
	},
	{
		keywords: []string{"art", "beauty", "aesthetic", "music", "creative", "culture"},
		suggestions: []string{
			"Is beauty objective?",
			"What is art?",
			"Can machines be creative?",
			"What is the purpose of art?",
			"Is there a universal aesthetic?",
			"What makes something beautiful?",
			"Can art be immoral?",
			"What is the value of aesthetic experience?",
		},
	},
}

// Suggestions returns alternative topics for a rejected one, themed to the
// rejected topic when a theme keyword matches, otherwise the defaults. The
// result is deterministic for equal inputs.
func Suggestions(rejectedTopic string) []string {
	rejectedTopic = strings.TrimSpace(rejectedTopic)
	if rejectedTopic == "" {
		return defaultSuggestions
	}

	lower := strings.ToLower(rejectedTopic)
	for _, theme := range suggestionThemes {
		for _, keyword := range theme.keywords {
			if strings.Contains(lower, keyword) {
				return theme.suggestions
			}
		}
	}
	return defaultSuggestions
}

// Guidelines explains what makes topics appropriate for philosophical
// discourse, as markdown.
func Guidelines() string {
	return `**Our Guidelines for Philosophical Discourse**

We welcome questions that:
- Explore ethics, morality, and values through reasoned inquiry
- Question fundamental assumptions about society, knowledge, or existence
- Examine difficult topics with intellectual rigor and good faith
- Seek understanding through the Socratic method

We filter out topics that:
- Contain explicit sexual or violent content
- Include hate speech or discriminatory language
- Promote illegal activities (policy questions about legalization are welcome)
- Appear designed to provoke rather than explore

**The Difference**: "Should drugs be legalized?" explores policy and ethics ✓
vs. explicit content about drug use ✗

If your topic was rejected, try rephrasing it as a philosophical question that explores underlying principles, values, or reasoning rather than specific content.`
}
