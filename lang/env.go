package lang

import (
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/sitegen/log"
)

// Env is the evaluation environment shared by every script executed while
// rendering one top-level file.
//
// An Env is not safe for concurrent use; each top-level file gets its own.
type Env struct {
	vars       map[string]any
	root       string
	processEnv map[string]string
	logger     log.Logger

	// out receives print and write output of the running script.
	out io.Writer
}

// Option configures an [Env].
type Option func(*Env)

// WithRoot sets the directory that relative paths given to file builtins
// resolve against. The default is the process working directory.
func WithRoot(dir string) Option {
	return func(e *Env) {
		if dir != "" {
			e.root = dir
		}
	}
}

// WithProcessEnv sets the "KEY=VALUE" list served by the env builtin.
// A nil list uses [os.Environ].
func WithProcessEnv(environ []string) Option {
	return func(e *Env) {
		e.processEnv = buildProcessEnvMap(environ)
	}
}

// WithVars adds predefined variables, shadowing builtins of the same name.
func WithVars(vars map[string]any) Option {
	return func(e *Env) {
		maps.Copy(e.vars, vars)
	}
}

// WithLogger sets the logger used to trace statement execution.
func WithLogger(logger log.Logger) Option {
	return func(e *Env) {
		e.logger = logger
	}
}

// NewEnv returns a fresh environment holding only the builtins, modified by
// opts.
func NewEnv(opts ...Option) *Env {
	e := &Env{
		root:   getCwd(),
		logger: log.Default(),
		out:    io.Discard,
	}

	e.vars = e.builtins()

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if e.processEnv == nil {
		e.processEnv = buildProcessEnvMap(nil)
	}

	return e
}

// Root returns the directory relative paths resolve against.
func (e *Env) Root() string { return e.root }

// Get returns the value bound to name.
func (e *Env) Get(name string) (any, bool) {
	v, ok := e.vars[name]

	return v, ok
}

// Set binds name to value.
func (e *Env) Set(name string, value any) {
	e.vars[name] = value
}

// Keys returns the sorted names bound in the environment, builtins
// included.
func (e *Env) Keys() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

// Lookup returns the keys of the map found at the dot-separated path, or
// nil if path does not name a map. An empty path returns [Env.Keys].
func (e *Env) Lookup(path string) []string {
	if path == "" {
		return e.Keys()
	}

	if path == "env" {
		return slices.Sorted(maps.Keys(e.processEnv))
	}

	var current any = e.vars

	for seg := range strings.SplitSeq(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		if current, ok = m[seg]; !ok {
			return nil
		}
	}

	if m, ok := current.(map[string]any); ok {
		return slices.Sorted(maps.Keys(m))
	}

	return nil
}

// resolve returns path joined to the environment root unless it is already
// absolute.
func (e *Env) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(e.root, path)
}

// buildProcessEnvMap converts a "KEY=VALUE" string slice to a map.
// If envList is nil, os.Environ() is used.
func buildProcessEnvMap(envList []string) map[string]string {
	if envList == nil {
		envList = os.Environ()
	}

	result := make(map[string]string, len(envList))

	for _, entry := range envList {
		if key, value, ok := strings.Cut(entry, "="); ok {
			result[key] = value
		}
	}

	return result
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}
