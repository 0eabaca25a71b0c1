package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelWarn), WithPretty(false))

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("shown warn")
	logger.Error("shown error")

	out := buf.String()
	for _, hidden := range []string{"hidden debug", "hidden info"} {
		if strings.Contains(out, hidden) {
			t.Errorf("expected %q to be filtered, got: %s", hidden, out)
		}
	}

	for _, shown := range []string{"shown warn", "shown error"} {
		if !strings.Contains(out, shown) {
			t.Errorf("expected %q in output, got: %s", shown, out)
		}
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON)).
		With(slog.String("file", "index.gen.html"))

	logger.Info("rendered", slog.Int("bytes", 42))

	out := buf.String()
	if !strings.Contains(out, `"file":"index.gen.html"`) {
		t.Errorf("expected persistent attribute, got: %s", out)
	}

	if !strings.Contains(out, `"bytes":42`) {
		t.Errorf("expected record attribute, got: %s", out)
	}
}

func TestLogger_Wrap_KeepsOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelError)).Wrap(WithLevel(LevelDebug))
	if logger.Level() != LevelDebug {
		t.Fatalf("expected level %v, got %v", LevelDebug, logger.Level())
	}

	logger.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected wrapped logger to write to original output")
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var logger Logger

	// Must not panic.
	logger.Info("nothing")
	logger.With(slog.String("k", "v")).Error("nothing")

	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level, got %v", logger.Level())
	}
}

func TestPrettyText_RendersAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithPretty(true),
		WithFormat(FormatText),
		WithTimeLayout("none"),
	).With(slog.String("site", "docs"))

	logger.Warn("cycle",
		slog.String("path", "a.gen.html"),
		slog.Any("error", errors.New("boom")),
		slog.Group("chain", slog.Int("depth", 2)),
	)

	out := buf.String()
	for _, want := range []string{"WAR", "cycle", "site", "docs", "path", "a.gen.html", "boom", "chain.depth"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got: %q", want, out)
		}
	}

	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single line, got: %q", out)
	}
}

func TestPackage_ConfigReplacesDefault(t *testing.T) {
	original := Default()
	defer func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	}()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithFormat(FormatJSON), WithLevel(LevelDebug))

	Debug("debug message", slog.String("key", "value"))

	out := buf.String()
	if !strings.Contains(out, "debug message") || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("expected default logger output, got: %s", out)
	}
}
