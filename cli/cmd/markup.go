package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/sitegen/markup"
	"github.com/ardnew/sitegen/pkg"
)

// stdinSource names standard input as a command argument.
const stdinSource = "-"

// Markup converts markup text to HTML.
type Markup struct {
	File   string `arg:"" default:"-" help:"Markup file or '-' for stdin"`
	Inline bool   `help:"Apply inline rules only (no paragraphs or headings)" short:"i"`
}

// Run executes the markup command.
func (m *Markup) Run(ctx context.Context) error {
	text, err := readSource(m.File)
	if err != nil {
		return err
	}

	format := markup.Format
	if m.Inline {
		format = markup.FormatInline
	}

	_, err = io.WriteString(stdout(ctx), format(text))
	if err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}

// readSource returns the contents of path, or of stdin for "-".
func readSource(path string) (string, error) {
	if path == stdinSource {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", pkg.ErrReadStdin.Wrap(err)
		}

		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", pkg.ErrReadInput.Wrap(err).With(slog.String("file", path))
	}

	return string(b), nil
}
