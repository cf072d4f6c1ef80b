package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/agentconv/pkg/frontmatter"
)

func enabled(m *frontmatter.BoolMap) []string {
	var out []string
	for _, name := range m.Keys() {
		if v, _ := m.Get(name); v {
			out = append(out, name)
		}
	}
	return out
}

func TestDefault(t *testing.T) {
	m := Default()

	assert.Equal(t, Names(), m.Keys())
	assert.Equal(t, []string{Read, Grep, Glob}, enabled(m))
}

func TestTranslateList(t *testing.T) {
	tests := []struct {
		name     string
		tools    []string
		expected []string
	}{
		{"empty", nil, []string{Read, Grep, Glob}},
		{"write and bash", []string{"Write", "Bash"}, []string{Read, Write, Bash, Grep, Glob}},
		{"multi edit grants patch", []string{"MultiEdit"}, []string{Read, Edit, Grep, Glob, Patch}},
		{"todo write grants read", []string{"TodoWrite"}, []string{Read, Grep, Glob, TodoWrite, TodoRead}},
		{"web tools", []string{"WebSearch", "WebFetch"}, []string{Read, Grep, Glob, WebFetch}},
		{"ls", []string{"LS"}, []string{Read, Grep, Glob, List}},
		{"unknown ignored", []string{"Task", "mcp__thing", "Write"}, []string{Read, Write, Grep, Glob}},
		{"wildcard", []string{Wildcard}, Names()},
		{"wildcard with others", []string{"Read", Wildcard, "Nope"}, Names()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := TranslateList(tt.tools)
			assert.Equal(t, tt.expected, enabled(m))
		})
	}
}

func TestTranslateList_AlwaysCompleteShape(t *testing.T) {
	inputs := [][]string{
		nil,
		{},
		{Wildcard},
		{"Read", "Write", "Edit", "MultiEdit", "Bash", "Grep", "Glob", "LS", "WebFetch", "WebSearch", "TodoWrite", "TodoRead", "NotebookRead", "NotebookEdit"},
		{"Unknown"},
	}

	for _, input := range inputs {
		m := TranslateList(input)
		assert.Equal(t, Names(), m.Keys(), "input %v", input)
	}
}

func TestTranslate(t *testing.T) {
	t.Run("modern map passes through unchanged", func(t *testing.T) {
		m := frontmatter.NewBoolMap()
		m.Set("read", false)
		m.Set("custom", true)

		got := Translate(m)
		assert.Same(t, m, got)
	})

	t.Run("legacy list", func(t *testing.T) {
		got := Translate(frontmatter.StringList{"Bash"})
		assert.Equal(t, []string{Read, Bash, Grep, Glob}, enabled(got))
	})

	t.Run("scalar is split", func(t *testing.T) {
		got := Translate(frontmatter.Scalar("Write, Edit"))
		assert.Equal(t, []string{Read, Write, Edit, Grep, Glob}, enabled(got))
	})

	t.Run("absent yields default", func(t *testing.T) {
		got := Translate(nil)
		require.NotNil(t, got)
		assert.Equal(t, []string{Read, Grep, Glob}, enabled(got))
	})

	t.Run("number yields default", func(t *testing.T) {
		got := Translate(frontmatter.Number(1))
		assert.Equal(t, Names(), got.Keys())
	})
}

func TestTranslate_DoesNotMutateTables(t *testing.T) {
	first := TranslateList([]string{Wildcard})
	first.Set(Read, false)

	assert.Equal(t, []string{Read, Grep, Glob}, enabled(Default()))
	assert.Equal(t, Names(), enabled(All()))
}

func TestUnknown(t *testing.T) {
	assert.Equal(t, []string{"Task", "Other"}, Unknown([]string{"Read", "Task", Wildcard, "Other"}))
	assert.Empty(t, Unknown([]string{"Read", "Write"}))
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("webfetch"))
	assert.False(t, IsKnown("WebFetch"))
	assert.False(t, IsKnown("custom"))
}
