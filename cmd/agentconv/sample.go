package main

import (
	"context"

	"github.com/jingkaihe/agentconv/pkg/agents"
	"github.com/jingkaihe/agentconv/pkg/config"
	"github.com/jingkaihe/agentconv/pkg/presenter"
	"github.com/jingkaihe/agentconv/pkg/validate"
)

// runSample converts the built-in sample agent and validates the result
func runSample(ctx context.Context, cfg *config.Config) int {
	converter, err := newConverter(cfg)
	if err != nil {
		presenter.Error(err, "Failed to initialize converter")
		return 1
	}

	presenter.Section("Input: " + agents.SampleFilename)
	presenter.Text(agents.SampleAgent)
	presenter.Separator()

	converted := converter.Convert(ctx, agents.SampleAgent, agents.SampleFilename)
	presenter.Section("Output")
	presenter.Text(converted)
	presenter.Separator()

	report := validate.Document(converted, agents.SampleFilename)
	if report.Valid() {
		presenter.Success("Sample agent is valid")
	} else {
		printReport(report)
	}
	return 0
}
