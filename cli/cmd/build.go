package cmd

import (
	"context"
	"log/slog"
)

// Build renders every template under the input root.
type Build struct {
	Strict bool `help:"Exit with an error if any file fails to render"`
}

// Run executes the build command.
func (b *Build) Run(ctx context.Context) error {
	flags := siteFrom(ctx)

	report, err := flags.New().Build(ctx)
	if err != nil {
		return ErrBuild.Wrap(err)
	}

	if b.Strict && !report.OK() {
		failed := make([]string, len(report.Failed))
		for i, r := range report.Failed {
			failed[i] = r.Path
		}

		return ErrBuildFailed.With(
			slog.Int("count", len(report.Failed)),
			slog.Any("files", failed),
		)
	}

	return nil
}
