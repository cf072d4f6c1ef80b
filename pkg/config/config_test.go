package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestInit_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agentconv.yaml")
	content := `input_dir: src/agents
output_dir: out/agents
default_temperature: 0.2
exclude:
  - README.md
  - "draft-*"
models:
  fast: openai/gpt-4.1-mini
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	require.NoError(t, Init(v, path))

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "src/agents", cfg.InputDir)
	assert.Equal(t, "out/agents", cfg.OutputDir)
	assert.Equal(t, 0.2, cfg.DefaultTemperature)
	assert.Equal(t, []string{"README.md", "draft-*"}, cfg.Exclude)
	assert.Equal(t, map[string]string{"fast": "openai/gpt-4.1-mini"}, cfg.Models)
	assert.Equal(t, "*.md", cfg.Include)
}

func TestInit_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInit_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AGENTCONV_OUTPUT_DIR", "env-out")
	t.Setenv("AGENTCONV_EXCLUDE", "README.md,NOTES.md")
	t.Setenv("AGENTCONV_DEFAULT_TEMPERATURE", "0.5")

	v := viper.New()
	require.NoError(t, Init(v, ""))

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "env-out", cfg.OutputDir)
	assert.Equal(t, []string{"README.md", "NOTES.md"}, cfg.Exclude)
	assert.Equal(t, 0.5, cfg.DefaultTemperature)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty input dir", func(c *Config) { c.InputDir = "" }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"temperature too high", func(c *Config) { c.DefaultTemperature = 1.2 }},
		{"temperature negative", func(c *Config) { c.DefaultTemperature = -0.1 }},
		{"bad include", func(c *Config) { c.Include = "[*.md" }},
		{"bad exclude", func(c *Config) { c.Exclude = []string{"[unterminated"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestRegisterFlags(t *testing.T) {
	v := viper.New()
	flags := pflag.NewFlagSet("agentconv", pflag.ContinueOnError)
	require.NoError(t, RegisterFlags(v, flags))
	require.NoError(t, flags.Parse([]string{"--input-dir", "agents", "--log-level", "debug"}))

	SetDefaults(v)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "agents", cfg.InputDir, "flags take precedence over defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Default().OutputDir, cfg.OutputDir, "unset flags keep the default")
}
