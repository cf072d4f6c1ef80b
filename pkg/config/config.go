// Package config loads agentconv settings from flags, environment variables
// (AGENTCONV_*) and an optional YAML config file through viper.
package config

import (
	"math"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jingkaihe/agentconv/pkg/fileset"
)

// EnvPrefix is the prefix of environment variables read by agentconv
const EnvPrefix = "AGENTCONV"

// Config holds all agentconv settings
type Config struct {
	InputDir           string            `mapstructure:"input_dir"`
	OutputDir          string            `mapstructure:"output_dir"`
	SummaryPath        string            `mapstructure:"summary_path"`
	Include            string            `mapstructure:"include"`
	Exclude            []string          `mapstructure:"exclude"`
	DefaultTemperature float64           `mapstructure:"default_temperature"`
	Models             map[string]string `mapstructure:"models"`
	LogLevel           string            `mapstructure:"log_level"`
	LogFormat          string            `mapstructure:"log_format"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		InputDir:           filepath.Join(".claude", "agents"),
		OutputDir:          filepath.Join(".opencode", "agent"),
		SummaryPath:        "AGENTS.md",
		Include:            fileset.DefaultInclude,
		Exclude:            append([]string(nil), fileset.DefaultExclude...),
		DefaultTemperature: 0.3,
		Models:             map[string]string{},
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// SetDefaults registers the built-in settings on v so environment variables
// and config files can override each key
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("input_dir", d.InputDir)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("summary_path", d.SummaryPath)
	v.SetDefault("include", d.Include)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("default_temperature", d.DefaultTemperature)
	v.SetDefault("models", d.Models)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}

// flagKeys maps command line flags to configuration keys
var flagKeys = []struct {
	flag, key string
}{
	{"input-dir", "input_dir"},
	{"output-dir", "output_dir"},
	{"summary-path", "summary_path"},
	{"log-level", "log_level"},
	{"log-format", "log_format"},
}

// RegisterFlags adds the configuration flags to flags and binds them to v
func RegisterFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	d := Default()
	flags.String("input-dir", d.InputDir, "Directory containing the source agents")
	flags.String("output-dir", d.OutputDir, "Directory the converted agents are written to")
	flags.String("summary-path", d.SummaryPath, "Path of the generated agent index")
	flags.String("log-level", d.LogLevel, "Log level (panic, fatal, error, warn, info, debug, trace)")
	flags.String("log-format", d.LogFormat, "Log format (text, json)")

	for _, fk := range flagKeys {
		if err := v.BindPFlag(fk.key, flags.Lookup(fk.flag)); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", fk.flag)
		}
	}
	return nil
}

// Init wires environment variables and the config file into v. An explicit
// configFile must exist; otherwise config.yaml is looked up in
// $HOME/.agentconv and the working directory and is optional.
func Init(v *viper.Viper, configFile string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file '%s'", configFile)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".agentconv"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read config file")
		}
	}
	return nil
}

// FromViper decodes the settings held by v
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := Default()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create config decoder")
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings for consistency
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errors.New("input_dir must not be empty")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if math.IsNaN(c.DefaultTemperature) || c.DefaultTemperature < 0 || c.DefaultTemperature > 1 {
		return errors.Errorf("default_temperature %v must be within [0, 1]", c.DefaultTemperature)
	}
	_, err := c.Filter()
	return err
}

// Filter compiles the include and exclude patterns
func (c *Config) Filter() (*fileset.Filter, error) {
	return fileset.NewFilter(c.Include, c.Exclude)
}
