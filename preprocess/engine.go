package preprocess

import (
	"context"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lithammer/dedent"

	"github.com/ardnew/sitegen/directive"
	"github.com/ardnew/sitegen/lang"
	"github.com/ardnew/sitegen/log"
	"github.com/ardnew/sitegen/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrRead    = pkg.NewError("failed to read template")
	ErrInclude = pkg.NewError("include failed")
)

// Engine resolves template directives. An Engine holds no per-file state
// and is safe for concurrent use with distinct environments.
type Engine struct {
	root    string
	matcher *directive.Matcher
	logger  log.Logger
}

// Option configures an [Engine].
type Option func(*Engine)

// WithRoot sets the directory that "/"-prefixed paths resolve against.
// The default is the process working directory.
func WithRoot(dir string) Option {
	return func(e *Engine) {
		if dir != "" {
			e.root = dir
		}
	}
}

// WithRenderableExt sets the extension of files preprocessed before they
// are included.
func WithRenderableExt(ext string) Option {
	return func(e *Engine) {
		e.matcher = directive.New(directive.WithRenderableExt(ext))
	}
}

// WithLogger sets the logger receiving cycle and script diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		root:    ".",
		matcher: directive.New(),
		logger:  log.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	e.root = absPath(e.root)

	return e
}

// Root returns the absolute directory "/"-prefixed paths resolve against.
func (e *Engine) Root() string { return e.root }

// Matcher returns the directive matcher used by the engine.
func (e *Engine) Matcher() *directive.Matcher { return e.matcher }

// File reads the template at path and preprocesses it with a chain holding
// only that file. A nil env is replaced by a fresh environment rooted at
// the engine root.
func (e *Engine) File(ctx context.Context, path string, env *lang.Env) (string, error) {
	path = absPath(path)

	b, err := os.ReadFile(path)
	if err != nil {
		return "", ErrRead.Wrap(err).With(slog.String("path", path))
	}

	return e.Preprocess(ctx, string(b), filepath.Dir(path), Chain{path}, env)
}

// Preprocess resolves every directive in text. Relative paths resolve
// against dir, and chain lists the files whose rendering led here.
//
// Script and cycle failures are reported inline and logged; the returned
// error is non-nil only when an included file cannot be read or ctx is
// done.
func (e *Engine) Preprocess(
	ctx context.Context,
	text, dir string,
	chain Chain,
	env *lang.Env,
) (string, error) {
	if env == nil {
		env = lang.NewEnv(lang.WithRoot(e.root), lang.WithLogger(e.logger))
	}

	dir = absPath(dir)
	done := make(map[string]bool)

	for _, m := range e.matcher.Scan(text) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if done[m.Source] {
			continue
		}

		done[m.Source] = true

		e.logger.TraceContext(ctx, "directive",
			slog.String("kind", m.Kind.String()),
			slog.String("arg", m.Arg),
			slog.String("file", chain.Current()),
		)

		var (
			value string
			keep  bool
			err   error
		)

		if m.Kind.IsCode() {
			value, err = e.execute(ctx, m, dir, chain, env)
		} else {
			value, keep, err = e.render(ctx, m, dir, chain, env)
		}

		if err != nil {
			return "", err
		}

		if !keep {
			text = strings.ReplaceAll(text, m.Source, value)
		}
	}

	return e.splice(ctx, text, dir, chain)
}

// render resolves a rendered include. keep is true when the directive must
// stay in place because it would close a cycle.
func (e *Engine) render(
	ctx context.Context,
	m directive.Match,
	dir string,
	chain Chain,
	env *lang.Env,
) (value string, keep bool, err error) {
	path := e.resolve(m.Arg, dir)

	if chain.Contains(path) {
		e.logger.WarnContext(ctx, "cyclic include",
			slog.String("path", path),
			slog.Any("chain", chain),
		)

		return "", true, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", false, ErrInclude.Wrap(err).With(
			slog.String("path", path),
			slog.String("file", chain.Current()),
		)
	}

	value, err = e.Preprocess(ctx, string(b), filepath.Dir(path), chain.With(path), env)

	return value, false, err
}

// execute runs a code directive and returns its output, or a diagnostic if
// the script fails.
func (e *Engine) execute(
	ctx context.Context,
	m directive.Match,
	dir string,
	chain Chain,
	env *lang.Env,
) (string, error) {
	var (
		out    strings.Builder
		source string
		err    error
	)

	switch m.Kind {
	case directive.CodeSnippet:
		source = m.Arg
		err = env.Snippet(ctx, source, &out)

	case directive.CodeInclude:
		path := e.resolve(m.Arg, dir)

		b, rerr := os.ReadFile(path)
		if rerr != nil {
			return "", ErrInclude.Wrap(rerr).With(
				slog.String("path", path),
				slog.String("file", chain.Current()),
			)
		}

		source = string(b)
		err = env.Exec(ctx, source, &out)

	default:
		source = strings.TrimSpace(dedent.Dedent(m.Arg))
		err = env.Exec(ctx, source, &out)
	}

	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return "", cerr
		}

		e.logger.WarnContext(ctx, "script failed",
			slog.String("kind", m.Kind.String()),
			slog.String("file", chain.Current()),
			slog.Any("error", err),
		)

		return diagnostic(err, source), nil
	}

	return out.String(), nil
}

// splice replaces raw includes with the verbatim text of their files.
// Includes of renderable files left by the first pass are cycles and stay.
func (e *Engine) splice(ctx context.Context, text, dir string, chain Chain) (string, error) {
	done := make(map[string]bool)

	for _, m := range e.matcher.ScanIncludes(text) {
		if m.Kind == directive.RenderedInclude || done[m.Source] {
			continue
		}

		done[m.Source] = true

		path := e.resolve(m.Arg, dir)

		b, err := os.ReadFile(path)
		if err != nil {
			return "", ErrInclude.Wrap(err).With(
				slog.String("path", path),
				slog.String("file", chain.Current()),
			)
		}

		e.logger.TraceContext(ctx, "include", slog.String("path", path))

		text = strings.ReplaceAll(text, m.Source, string(b))
	}

	return text, nil
}

// resolve maps a directive path to an absolute file path.
func (e *Engine) resolve(path, dir string) string {
	if strings.HasPrefix(path, "/") {
		return filepath.Join(e.root, filepath.FromSlash(path))
	}

	return filepath.Join(dir, filepath.FromSlash(path))
}

// diagnostic is the inline replacement for a failed script.
func diagnostic(err error, source string) string {
	var sb strings.Builder

	sb.WriteString(`<pre class="sitegen-error">`)
	sb.WriteString(html.EscapeString(err.Error()))
	sb.WriteByte('\n')

	for line := range strings.Lines(source) {
		sb.WriteString("  > ")
		sb.WriteString(html.EscapeString(strings.TrimRight(line, "\n")))
		sb.WriteByte('\n')
	}

	sb.WriteString("</pre>")

	return sb.String()
}

func absPath(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	return p
}
