package agents

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/agentconv/pkg/capability"
	"github.com/jingkaihe/agentconv/pkg/frontmatter"
)

func newTestConverter(t *testing.T, opts ...ConverterOption) *Converter {
	t.Helper()
	c, err := NewConverter(opts...)
	require.NoError(t, err)
	return c
}

func TestConverter_MinimalAgent(t *testing.T) {
	c := newTestConverter(t)

	out := c.Convert(context.Background(), "---\ndescription: X\n---\n\nBody text", "minimal.md")

	expected := `---
description: X
mode: subagent
temperature: 0.3
tools:
  read: true
  write: false
  edit: false
  bash: false
  grep: true
  glob: true
  list: false
  patch: false
  todowrite: false
  todoread: false
  webfetch: false
---

Body text`
	assert.Equal(t, expected, out)

	doc := frontmatter.Parse(out)
	assert.Equal(t, "Body text", doc.Body)
}

func TestConverter_WildcardTools(t *testing.T) {
	c := newTestConverter(t)

	out := c.Convert(context.Background(), "---\ndescription: All\ntools: \"*\"\n---\nBody", "all.md")

	doc := frontmatter.Parse(out)
	tools, ok := doc.Frontmatter.Get(KeyTools).(*frontmatter.BoolMap)
	require.True(t, ok)
	assert.Equal(t, capability.Names(), tools.Keys())
	for _, name := range tools.Keys() {
		v, _ := tools.Get(name)
		assert.True(t, v, name)
	}
}

func TestConverter_LegacyAgent(t *testing.T) {
	c := newTestConverter(t)

	out := c.Convert(context.Background(), SampleAgent, SampleFilename)
	doc := frontmatter.Parse(out)
	fm := doc.Frontmatter

	assert.Equal(t, []string{KeyDescription, KeyMode, KeyModel, KeyTemperature, KeyTools}, fm.Keys())

	desc, _ := fm.String(KeyDescription)
	assert.Equal(t, "Designs React components in ClojureScript. Use when: structuring hooks, props and state", desc)
	assert.Contains(t, out, `description: "Designs React components in ClojureScript. Use when: structuring hooks, props and state"`)

	model, _ := fm.String(KeyModel)
	assert.Equal(t, "anthropic/claude-sonnet-4-20250514", model)

	tools := fm.Get(KeyTools).(*frontmatter.BoolMap)
	for name, want := range map[string]bool{"write": true, "edit": true, "patch": true, "bash": true, "todowrite": true, "todoread": true, "webfetch": false, "list": false} {
		got, ok := tools.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	assert.NotContains(t, out, "color:")
	assert.NotContains(t, out, "name:")
	assert.True(t, strings.HasPrefix(doc.Body, "# ClojureScript Component Architect"))
}

func TestConverter_ModernToolsPassThrough(t *testing.T) {
	c := newTestConverter(t)

	content := "---\ndescription: d\ntools:\n  bash: true\n  custom: false\n---\nBody"
	doc := frontmatter.Parse(c.Convert(context.Background(), content, "modern.md"))

	tools := doc.Frontmatter.Get(KeyTools).(*frontmatter.BoolMap)
	assert.Equal(t, []string{"bash", "custom"}, tools.Keys())
}

func TestConverter_Temperature(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		opts     []ConverterOption
		expected frontmatter.Value
	}{
		{"source value kept", "temperature: 0.7", nil, frontmatter.Number(0.7)},
		{"out of range kept", "temperature: 1.5", nil, frontmatter.Number(1.5)},
		{"unparseable uses default", "temperature: hot", nil, frontmatter.Number(0.3)},
		{"absent uses default", "", nil, frontmatter.Number(0.3)},
		{"configured default", "", []ConverterOption{WithDefaultTemperature(0.1)}, frontmatter.Number(0.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConverter(t, tt.opts...)
			content := "---\ndescription: d\n" + tt.line + "\n---\n"
			doc := frontmatter.Parse(c.Convert(context.Background(), content, "t.md"))
			assert.Equal(t, tt.expected, doc.Frontmatter.Get(KeyTemperature))
		})
	}
}

func TestConverter_Models(t *testing.T) {
	t.Run("alias translated case-insensitively", func(t *testing.T) {
		c := newTestConverter(t)
		doc := frontmatter.Parse(c.Convert(context.Background(), "---\nmodel: Opus\n---\n", "m.md"))
		model, ok := doc.Frontmatter.String(KeyModel)
		require.True(t, ok)
		assert.Equal(t, "anthropic/claude-opus-4-20250514", model)
	})

	t.Run("unknown alias omitted", func(t *testing.T) {
		c := newTestConverter(t)
		doc := frontmatter.Parse(c.Convert(context.Background(), "---\nmodel: inherit\n---\n", "m.md"))
		assert.False(t, doc.Frontmatter.Has(KeyModel))
	})

	t.Run("qualified id kept", func(t *testing.T) {
		c := newTestConverter(t)
		id, ok := c.ResolveModel("openai/gpt-4.1")
		require.True(t, ok)
		assert.Equal(t, "openai/gpt-4.1", id)
	})

	t.Run("configured override", func(t *testing.T) {
		c := newTestConverter(t, WithModels(map[string]string{"Sonnet": "openrouter/sonnet", "local": "ollama/llama3"}))
		id, ok := c.ResolveModel("sonnet")
		require.True(t, ok)
		assert.Equal(t, "openrouter/sonnet", id)
		id, ok = c.ResolveModel("local")
		require.True(t, ok)
		assert.Equal(t, "ollama/llama3", id)
	})
}

func TestNewConverter_InvalidOptions(t *testing.T) {
	_, err := NewConverter(WithDefaultTemperature(2))
	assert.Error(t, err)

	_, err = NewConverter(WithModels(map[string]string{"sonnet": " "}))
	assert.Error(t, err)
}

func TestConverter_NoFrontmatter(t *testing.T) {
	c := newTestConverter(t)
	input := "# Foo Bar\n\nJust a body.\n"

	out := c.Convert(context.Background(), input, "foo-bar.md")

	require.True(t, strings.HasSuffix(out, "---\n\n"+input))
	doc := frontmatter.Parse(out)
	desc, _ := doc.Frontmatter.String(KeyDescription)
	assert.Equal(t, "Foo Bar", desc)
	mode, _ := doc.Frontmatter.String(KeyMode)
	assert.Equal(t, ModeSubagent, mode)
	assert.Equal(t, frontmatter.Number(0.3), doc.Frontmatter.Get(KeyTemperature))
	assert.Equal(t, capability.Names(), doc.Frontmatter.Get(KeyTools).(*frontmatter.BoolMap).Keys())
}

func TestConverter_BodyPreserved(t *testing.T) {
	c := newTestConverter(t)
	bodies := []string{
		"Body text",
		"# Title\n\n```yaml\n---\nkey: value\n---\n```\n",
		"  leading spaces\n\ttabs\n",
		"unicode ✓ ünïcödé\n",
	}

	for _, body := range bodies {
		out := c.Convert(context.Background(), "---\ndescription: d\ntools: Read\n---\n\n"+body, "b.md")
		assert.Equal(t, body, frontmatter.Parse(out).Body)
	}
}

func TestConverter_ReconvertIsIdempotent(t *testing.T) {
	c := newTestConverter(t)

	first := c.Convert(context.Background(), SampleAgent, SampleFilename)
	second := c.Convert(context.Background(), first, SampleFilename)

	assert.Equal(t, first, second)
}

func TestConverter_ConvertFile(t *testing.T) {
	c := newTestConverter(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "helper.md")
	require.NoError(t, os.WriteFile(path, []byte("no frontmatter here at all"), 0o644))

	out, err := c.ConvertFile(context.Background(), path)
	require.NoError(t, err)
	desc, _ := frontmatter.Parse(out).Frontmatter.String(KeyDescription)
	assert.Equal(t, "no frontmatter here at all", desc)

	_, err = c.ConvertFile(context.Background(), filepath.Join(dir, "missing.md"))
	assert.Error(t, err)
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Agent frontmatter", decoded["title"])
	assert.ElementsMatch(t, []any{"description", "mode"}, decoded["required"])

	props := decoded["properties"].(map[string]any)
	mode := props["mode"].(map[string]any)
	assert.ElementsMatch(t, []any{"primary", "subagent", "all"}, mode["enum"])
}
