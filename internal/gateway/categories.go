package gateway

import (
	"slices"
	"strings"
)

// Categories is an immutable mapping of category names to search phrases.
// Names are matched case-insensitively.
type Categories struct {
	phrases map[string]string
}

// NewCategories returns categories for the specified mapping. The mapping is
// copied.
func NewCategories(phrases map[string]string) Categories {
	copied := make(map[string]string, len(phrases))
	for name, phrase := range phrases {
		copied[normalizeCategory(name)] = phrase
	}

	return Categories{phrases: copied}
}

// Phrase returns the search phrase of the named category.
func (c Categories) Phrase(name string) (string, bool) {
	phrase, ok := c.phrases[normalizeCategory(name)]
	return phrase, ok
}

// Names returns the sorted names of all categories.
func (c Categories) Names() []string {
	names := make([]string, 0, len(c.phrases))
	for name := range c.phrases {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalizeCategory(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
