package profile

import "testing"

func TestProfiler_EmptyModeIsNoop(t *testing.T) {
	p := Profiler{}
	if p.Enabled() {
		t.Error("expected empty mode to be disabled")
	}

	// Must not panic.
	p.Start().Stop()
}

func TestProfiler_UnknownModeIsNoop(t *testing.T) {
	p := Profiler{Mode: "no-such-mode", Path: t.TempDir(), Quiet: true}
	if p.Enabled() {
		t.Error("expected unknown mode to be disabled")
	}

	p.Start().Stop()
}
