package main

import (
	"context"
	"fmt"

	"github.com/jingkaihe/agentconv/pkg/config"
	"github.com/jingkaihe/agentconv/pkg/presenter"
	"github.com/jingkaihe/agentconv/pkg/summary"
)

func runAgentsMD(ctx context.Context, cfg *config.Config) int {
	filter, err := cfg.Filter()
	if err != nil {
		presenter.Error(err, "Invalid file patterns")
		return 1
	}

	generator := summary.NewGenerator(cfg.InputDir,
		summary.WithFilter(filter),
		summary.WithAgentDir(cfg.OutputDir),
	)

	count, err := generator.Write(ctx, cfg.SummaryPath)
	if err != nil {
		presenter.Error(err, "Failed to generate agent index")
		return 1
	}

	presenter.Success(fmt.Sprintf("Generated %s with %d agents", cfg.SummaryPath, count))
	return 0
}
