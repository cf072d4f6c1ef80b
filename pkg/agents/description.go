package agents

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jingkaihe/agentconv/pkg/frontmatter"
)

const (
	minDescriptionLength = 10
	maxDescriptionLength = 100
)

// ResolveDescription picks the agent description: the explicit description
// field, else the first body heading, else the first substantial body line,
// else a name derived from filename.
func ResolveDescription(source *frontmatter.Block, body, filename string) string {
	if desc, ok := source.String(KeyDescription); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			return desc
		}
	}

	if desc := describeFromBody(body); desc != "" {
		return desc
	}

	return FallbackDescription(filename)
}

func describeFromBody(body string) string {
	lines := strings.Split(body, "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		if heading := strings.TrimSpace(strings.TrimLeft(line, "#")); heading != "" {
			return heading
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || utf8.RuneCountInString(line) <= minDescriptionLength {
			continue
		}
		return truncate(line, maxDescriptionLength)
	}

	return ""
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

// AgentName returns the file name without directory and extension
func AgentName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HumanizeName turns "code-reviewer_v2" into "code reviewer v2"
func HumanizeName(name string) string {
	return strings.Join(strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	}), " ")
}

// FallbackDescription synthesizes a description from the file name
func FallbackDescription(filename string) string {
	name := HumanizeName(AgentName(filename))
	if name == "" {
		return "Agent"
	}
	return name + " agent"
}
