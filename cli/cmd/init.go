package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/ardnew/sitegen/log"
	"github.com/ardnew/sitegen/pkg"
	"github.com/ardnew/sitegen/profile"
)

// defaultDirMode is the permission mode of created configuration
// directories.
const defaultDirMode os.FileMode = 0o700

// Init writes a configuration file holding the current global flag values.
type Init struct {
	Force  bool `help:"Overwrite an existing configuration file"                short:"f"`
	Global bool `help:"Write the user configuration instead of the project one" short:"g"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)

	id := ProjectIdentifier
	if i.Global {
		id = ConfigIdentifier
	}

	path, ok := ktx.Model.Vars()[id]
	if !ok {
		panic("internal error: configuration path undefined: " + id)
	}

	if _, err := os.Stat(path); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", path), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.Marshal(configValues(ktx))
	if err != nil {
		return pkg.ErrYAMLMarshal.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), defaultDirMode); err != nil {
		return ErrWriteConfig.Wrap(err).With(slog.String("file", path))
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return ErrWriteConfig.Wrap(err).With(slog.String("file", path))
	}

	log.InfoContext(ctx, "initialized configuration file",
		slog.String("path", path),
	)

	return nil
}

// configValues returns the global flags and their current values in
// declaration order. Help and profiling flags are omitted.
func configValues(ktx *kong.Context) yaml.MapSlice {
	ignore := []string{"help", "version", profile.Tag}

	var values yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if v := flagValue(ktx.FlagValue(flag)); v != nil {
			values = append(values, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return values
}

// flagValue converts a kong flag value to its YAML form, or nil if unset.
func flagValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}

		return v
	case bool, int, int64, uint, uint64, float64:
		return v
	case []string:
		if len(v) == 0 {
			return nil
		}

		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
