package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/sitegen/cli/cmd/repl"
	"github.com/ardnew/sitegen/lang"
	"github.com/ardnew/sitegen/log"
)

// Repl starts an interactive session over one environment.
type Repl struct {
	Load      []string `help:"Run script file(s) in the session environment first" short:"l" type:"existingfile"`
	NoHistory bool     `help:"Do not read or write the history file"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	env := lang.NewEnv(
		lang.WithRoot(siteFrom(ctx).Root),
		lang.WithProcessEnv(os.Environ()),
		lang.WithLogger(log.Default()),
	)

	for _, path := range r.Load {
		text, err := readSource(path)
		if err != nil {
			return err
		}

		if err := env.Exec(ctx, text, stdout(ctx)); err != nil {
			return ErrEval.Wrap(err).With(slog.String("file", path))
		}
	}

	return repl.Run(ctx, env, r.historyPath(ctx), log.Default())
}

// historyPath returns the history file, creating its directory, or "" when
// history is disabled or unavailable.
func (r *Repl) historyPath(ctx context.Context) string {
	if r.NoHistory {
		return ""
	}

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	path, ok := ktx.Model.Vars()[HistoryIdentifier]
	if !ok || path == "" {
		return ""
	}

	if err := os.MkdirAll(filepath.Dir(path), defaultDirMode); err != nil {
		log.WarnContext(ctx, "history disabled", slog.Any("error", err))

		return ""
	}

	return path
}
