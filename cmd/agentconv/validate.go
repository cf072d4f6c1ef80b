package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/jingkaihe/agentconv/pkg/config"
	"github.com/jingkaihe/agentconv/pkg/presenter"
	"github.com/jingkaihe/agentconv/pkg/validate"
)

// runValidate checks every converted agent. The exit code is 1 iff at least
// one error was found; warnings never fail the run.
func runValidate(ctx context.Context, cfg *config.Config) int {
	filter, err := cfg.Filter()
	if err != nil {
		presenter.Error(err, "Invalid file patterns")
		return 1
	}

	report, err := validate.Dir(ctx, cfg.OutputDir, filter, nil)
	if err != nil {
		presenter.Error(err, fmt.Sprintf("Failed to validate %s", cfg.OutputDir))
		return 1
	}

	for _, file := range report.WithFindings() {
		presenter.Section(file.Name)
		printReport(file.Report)
	}

	presenter.Summary(
		presenter.Count{Label: "files", Value: report.Total()},
		presenter.Count{Label: "valid", Value: report.Valid},
		presenter.Count{Label: "errors", Value: report.Errors},
		presenter.Count{Label: "warnings", Value: report.Warnings},
	)

	if report.Errors > 0 {
		return 1
	}
	return 0
}

func printReport(r validate.Report) {
	for _, f := range r.Errors {
		presenter.Error(errors.New(f.Message), f.File)
	}
	for _, f := range r.Warnings {
		presenter.Warning(f.String())
	}
}
