package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunBuild(t *testing.T) {
	base := t.TempDir()
	in, out := filepath.Join(base, "src"), filepath.Join(base, "out")

	for _, dir := range []string{in, out} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.WriteFile(
		filepath.Join(in, "index.gen.html"),
		[]byte("<py>n = 2</py>n=#`n`"),
		0o644,
	); err != nil {
		t.Fatal(err)
	}

	exit := func(code int) { t.Errorf("exit(%d) called", code) }

	err := Run(t.Context(), exit,
		"--log-level=error", "--root", in, "--out", out, "build", "--strict",
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}

	if string(b) != "n=2" {
		t.Errorf("index.html = %q, want %q", b, "n=2")
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if err := Run(t.Context(), func(int) {}, "--log-level=error", "frobnicate"); err == nil {
		t.Error("Run accepted an unknown command")
	}
}
