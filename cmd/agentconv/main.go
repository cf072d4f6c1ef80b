package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jingkaihe/agentconv/pkg/agents"
	"github.com/jingkaihe/agentconv/pkg/config"
	"github.com/jingkaihe/agentconv/pkg/logger"
	"github.com/jingkaihe/agentconv/pkg/presenter"
)

type contextKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(contextKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agentconv",
		Short: "Convert Claude Code agents into OpenCode agents",
		Long: `agentconv rewrites Claude Code agent definitions (.claude/agents/*.md) into
OpenCode agent definitions (.opencode/agent/*.md) and writes an AGENTS.md index.

Without a mode flag every agent in the input directory is converted and the
index is regenerated.

Example:
  agentconv
  agentconv --input-dir agents --output-dir .opencode/agent
  agentconv --validate
  agentconv --diff`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, v)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			if code := runRoot(cmd); code != 0 {
				os.Exit(code)
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Config file (default is $HOME/.agentconv/config.yaml or ./config.yaml)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.BoolP("quiet", "q", false, "Only print errors and requested output")
	if err := config.RegisterFlags(v, flags); err != nil {
		panic(err)
	}

	cmd.Flags().Bool("test", false, "Convert a built-in sample agent and validate the result")
	cmd.Flags().Bool("validate", false, "Validate the converted agents in the output directory")
	cmd.Flags().Bool("agents-md", false, "Only regenerate the agent index")
	cmd.Flags().Bool("diff", false, "Show what a conversion would change without writing")
	cmd.MarkFlagsMutuallyExclusive("test", "validate", "agents-md", "diff")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

func setup(cmd *cobra.Command, v *viper.Viper) error {
	configFile, _ := cmd.Flags().GetString("config")
	if err := config.Init(v, configFile); err != nil {
		return err
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		presenter.SetDefault(presenter.NewWithOptions(os.Stdout, os.Stderr, presenter.ColorNever))
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		presenter.SetQuiet(true)
	}

	ctx := logger.WithRunID(cmd.Context())
	logger.G(ctx).WithField("input_dir", cfg.InputDir).WithField("output_dir", cfg.OutputDir).Debug("Loaded configuration")
	cmd.SetContext(withConfig(ctx, cfg))
	return nil
}

func runRoot(cmd *cobra.Command) int {
	ctx := cmd.Context()
	cfg := configFrom(ctx)

	switch {
	case flagSet(cmd, "test"):
		return runSample(ctx, cfg)
	case flagSet(cmd, "validate"):
		return runValidate(ctx, cfg)
	case flagSet(cmd, "agents-md"):
		return runAgentsMD(ctx, cfg)
	case flagSet(cmd, "diff"):
		return runDiff(ctx, cfg)
	default:
		return runConvert(ctx, cfg)
	}
}

func flagSet(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	return err == nil && value
}

func newConverter(cfg *config.Config) (*agents.Converter, error) {
	return agents.NewConverter(
		agents.WithDefaultTemperature(cfg.DefaultTemperature),
		agents.WithModels(cfg.Models),
	)
}

func main() {
	rootCmd := newRootCmd(viper.GetViper())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		presenter.Error(err, "")
		os.Exit(1)
	}
}
