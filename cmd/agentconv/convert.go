package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/jingkaihe/agentconv/pkg/batch"
	"github.com/jingkaihe/agentconv/pkg/config"
	"github.com/jingkaihe/agentconv/pkg/logger"
	"github.com/jingkaihe/agentconv/pkg/presenter"
)

func newDriver(cfg *config.Config) (*batch.Driver, error) {
	filter, err := cfg.Filter()
	if err != nil {
		return nil, err
	}
	converter, err := newConverter(cfg)
	if err != nil {
		return nil, err
	}
	return batch.NewDriver(cfg.InputDir, cfg.OutputDir, batch.WithFilter(filter), batch.WithConverter(converter))
}

// runConvert converts every agent, then regenerates the index. Skipped files
// do not change the exit code.
func runConvert(ctx context.Context, cfg *config.Config) int {
	driver, err := newDriver(cfg)
	if err != nil {
		presenter.Error(err, "Failed to initialize converter")
		return 1
	}

	result, err := driver.Run(ctx)
	if err != nil {
		if errors.Is(err, batch.ErrInputDirMissing) {
			logger.G(ctx).WithField("input_dir", cfg.InputDir).Error("Input directory not found")
			presenter.Error(err, "Input directory not found")
		} else {
			presenter.Error(err, "Conversion failed")
		}
		return 1
	}

	for _, f := range result.Files {
		if f.Skipped() {
			presenter.Error(f.Err, fmt.Sprintf("Skipped %s", f.Name))
			continue
		}
		presenter.Success(fmt.Sprintf("Converted %s", f.Name))
	}
	presenter.Summary(
		presenter.Count{Label: "converted", Value: result.Converted},
		presenter.Count{Label: "skipped", Value: result.Skipped},
	)
	if err := result.ErrorOrNil(); err != nil {
		logger.G(ctx).WithError(err).WithField("skipped", result.Skipped).Warn("Some agent files were not converted")
	}

	return runAgentsMD(ctx, cfg)
}

// runDiff prints what a conversion would change
func runDiff(ctx context.Context, cfg *config.Config) int {
	driver, err := newDriver(cfg)
	if err != nil {
		presenter.Error(err, "Failed to initialize converter")
		return 1
	}

	result, err := driver.Diff(ctx)
	if err != nil {
		presenter.Error(err, "Diff failed")
		return 1
	}

	for _, f := range result.Files {
		switch {
		case f.Skipped():
			presenter.Error(f.Err, fmt.Sprintf("Skipped %s", f.Name))
		case f.Diff == "":
			presenter.Info(fmt.Sprintf("%s is up to date", f.Name))
		default:
			presenter.Text(f.Diff)
		}
	}
	presenter.Summary(
		presenter.Count{Label: "changed", Value: result.Converted},
		presenter.Count{Label: "unchanged", Value: result.Unchanged},
		presenter.Count{Label: "skipped", Value: result.Skipped},
	)
	if err := result.ErrorOrNil(); err != nil {
		logger.G(ctx).WithError(err).WithField("skipped", result.Skipped).Warn("Some agent files could not be diffed")
	}
	return 0
}
