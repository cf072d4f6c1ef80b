package summary

import "strings"

// Category groups agents whose names contain one of Patterns
type Category struct {
	Title    string
	Patterns []string
}

// FallbackCategory collects agents no category matches
const FallbackCategory = "Other Agents"

// Categories are tested in order; the first match wins
var Categories = []Category{
	{Title: "Core Architecture", Patterns: []string{"architect", "core", "component", "hook", "state"}},
	{Title: "Development & Integration", Patterns: []string{"dev", "integration", "interop", "build", "api", "tool"}},
	{Title: "UI & Styling", Patterns: []string{"ui-", "-ui", "style", "css", "form", "design"}},
	{Title: "Migration & Quality", Patterns: []string{"migrat", "review", "quality", "test", "lint", "refactor"}},
}

// Categorize returns the title of the first category matching name
func Categorize(name string) string {
	name = strings.ToLower(name)
	for _, c := range Categories {
		for _, pattern := range c.Patterns {
			if strings.Contains(name, pattern) {
				return c.Title
			}
		}
	}
	return FallbackCategory
}

func titles() []string {
	out := make([]string, 0, len(Categories)+1)
	for _, c := range Categories {
		out = append(out, c.Title)
	}
	return append(out, FallbackCategory)
}
