package profile

// Stopper stops a running profiler. Stop is always safe to call.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	// Mode selects what is profiled; see [Modes]. Empty disables profiling.
	Mode string
	// Path is the output directory. Empty uses the library default.
	Path string
	// Quiet suppresses the library's own start/stop messages.
	Quiet bool
}

// Start begins profiling and returns a [Stopper] for it.
// It returns a no-op when Mode is empty or unsupported, or when the binary
// was built without the pprof tag.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether Start would begin a real profiling session.
func (p Profiler) Enabled() bool {
	if p.Mode == "" {
		return false
	}

	for _, m := range Modes() {
		if m == p.Mode {
			return true
		}
	}

	return false
}

type ignore struct{}

func (ignore) Stop() {}
