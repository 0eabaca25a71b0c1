package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/sitegen/lang"
	"github.com/ardnew/sitegen/log"
)

// Eval runs a script in a fresh environment and prints its final value.
type Eval struct {
	Script []string `arg:"" help:"Statements to run, joined by spaces" optional:""`
	File   string   `help:"Read statements from a file or '-' for stdin" short:"f"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	body := strings.Join(e.Script, " ")

	if e.File != "" {
		text, err := readSource(e.File)
		if err != nil {
			return err
		}

		body = text + "\n" + body
	}

	env := lang.NewEnv(
		lang.WithRoot(siteFrom(ctx).Root),
		lang.WithProcessEnv(os.Environ()),
		lang.WithLogger(log.Default()),
	)

	w := stdout(ctx)

	v, err := env.Run(ctx, body, w)
	if err != nil {
		return ErrEval.Wrap(err).With(slog.String("command", "eval"))
	}

	if v != nil {
		_, err = fmt.Fprintln(w, lang.String(v))
	}

	return err
}
