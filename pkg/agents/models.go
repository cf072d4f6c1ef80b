package agents

import "strings"

// defaultModels maps legacy model aliases to provider qualified model ids
func defaultModels() map[string]string {
	return map[string]string{
		"sonnet": "anthropic/claude-sonnet-4-20250514",
		"opus":   "anthropic/claude-opus-4-20250514",
		"haiku":  "anthropic/claude-3-5-haiku-20241022",
	}
}

func normalizeModelAlias(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}

// ResolveModel translates a legacy model alias. Provider qualified ids
// ("provider/model") are already in the destination form and kept as is.
func (c *Converter) ResolveModel(alias string) (string, bool) {
	if id, ok := c.models[normalizeModelAlias(alias)]; ok {
		return id, true
	}
	if alias = strings.TrimSpace(alias); strings.Contains(alias, "/") {
		return alias, true
	}
	return "", false
}
