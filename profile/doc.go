// Package profile provides optional runtime profiling for sitegen.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof -o sitegen .
//	sitegen --pprof-mode=cpu --pprof-dir=/tmp/profiles build
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
// Profiles are written to the configured directory with names matching the
// mode (cpu.pprof, mem.pprof, ...) and can be inspected with
// `go tool pprof -http=: /tmp/profiles/cpu.pprof`.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
