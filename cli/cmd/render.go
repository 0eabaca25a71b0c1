package cmd

import (
	"context"
	"io"
	"log/slog"
)

// Render preprocesses one template and prints the result without the output
// template.
type Render struct {
	File string `arg:"" help:"Template to render" type:"existingfile"`
	Wrap bool   `help:"Substitute the result into the output template" short:"w"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) error {
	s := siteFrom(ctx).New()

	body, err := s.Render(ctx, r.File)
	if err != nil {
		return ErrRender.Wrap(err).With(slog.String("file", r.File))
	}

	if r.Wrap {
		layout, err := s.Template(ctx)
		if err != nil {
			return ErrRender.Wrap(err).With(slog.String("file", r.File))
		}

		body = s.Wrap(layout, body)
	}

	_, err = io.WriteString(stdout(ctx), body)

	return err
}
