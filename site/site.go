package site

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/ardnew/sitegen/directive"
	"github.com/ardnew/sitegen/lang"
	"github.com/ardnew/sitegen/log"
	"github.com/ardnew/sitegen/pkg"
	"github.com/ardnew/sitegen/preprocess"
)

// Defaults.
const (
	DefaultInputRoot     = "."
	DefaultOutputRoot    = ".."
	DefaultRenderableExt = directive.DefaultRenderableExt
	DefaultOutputExt     = ".html"
	DefaultTemplate      = ".doctemplate.html"
	DefaultPlaceholder   = "$doc"
)

// Predefined errors (sentinel values).
var (
	ErrWalk     = pkg.NewError("failed to scan input tree")
	ErrTemplate = pkg.NewError("failed to read output template")
	ErrWrite    = pkg.NewError("failed to write output")
)

// Site renders the templates under an input root.
type Site struct {
	inputRoot   string
	outputRoot  string
	renderExt   string
	outputExt   string
	template    string
	placeholder string
	jobs        int
	processEnv  []string
	logger      log.Logger

	engine *preprocess.Engine
}

// Option configures a [Site].
type Option func(*Site)

// WithInputRoot sets the directory searched for templates. It is also the
// directory "/"-prefixed include paths resolve against.
func WithInputRoot(dir string) Option {
	return func(s *Site) {
		if dir != "" {
			s.inputRoot = dir
		}
	}
}

// WithOutputRoot sets the directory output files are written under.
func WithOutputRoot(dir string) Option {
	return func(s *Site) {
		if dir != "" {
			s.outputRoot = dir
		}
	}
}

// WithRenderableExt sets the extension of template files.
func WithRenderableExt(ext string) Option {
	return func(s *Site) {
		if ext != "" {
			s.renderExt = ext
		}
	}
}

// WithOutputExt sets the extension replacing the renderable extension in
// output paths.
func WithOutputExt(ext string) Option {
	return func(s *Site) {
		s.outputExt = ext
	}
}

// WithTemplate sets the path of the output template. A relative path is
// taken relative to the input root.
func WithTemplate(path string) Option {
	return func(s *Site) {
		if path != "" {
			s.template = path
		}
	}
}

// WithPlaceholder sets the token of the output template replaced by each
// rendered body.
func WithPlaceholder(token string) Option {
	return func(s *Site) {
		if token != "" {
			s.placeholder = token
		}
	}
}

// WithJobs sets how many files are rendered concurrently. Values below one
// select one job per CPU.
func WithJobs(n int) Option {
	return func(s *Site) {
		if n < 1 {
			n = runtime.NumCPU()
		}

		s.jobs = n
	}
}

// WithProcessEnv sets the "KEY=VALUE" list served to scripts by env().
func WithProcessEnv(environ []string) Option {
	return func(s *Site) {
		s.processEnv = environ
	}
}

// WithLogger sets the logger for progress and diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(s *Site) {
		s.logger = logger
	}
}

// New returns a Site configured by opts.
func New(opts ...Option) *Site {
	s := &Site{
		inputRoot:   DefaultInputRoot,
		outputRoot:  DefaultOutputRoot,
		renderExt:   DefaultRenderableExt,
		outputExt:   DefaultOutputExt,
		template:    DefaultTemplate,
		placeholder: DefaultPlaceholder,
		jobs:        1,
		logger:      log.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.inputRoot = absPath(s.inputRoot)
	s.outputRoot = absPath(s.outputRoot)

	if !filepath.IsAbs(s.template) {
		s.template = filepath.Join(s.inputRoot, s.template)
	}

	s.engine = preprocess.New(
		preprocess.WithRoot(s.inputRoot),
		preprocess.WithRenderableExt(s.renderExt),
		preprocess.WithLogger(s.logger),
	)

	return s
}

// InputRoot returns the absolute input root.
func (s *Site) InputRoot() string { return s.inputRoot }

// OutputRoot returns the absolute output root.
func (s *Site) OutputRoot() string { return s.outputRoot }

// Result is the outcome of rendering one file.
type Result struct {
	Path    string
	Output  string
	Elapsed time.Duration
	Err     error
}

// LogValue implements slog.LogValuer.
func (r Result) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("path", r.Path),
		slog.String("output", r.Output),
		slog.Duration("elapsed", r.Elapsed),
	}

	if r.Err != nil {
		attrs = append(attrs, slog.Any("error", r.Err))
	}

	return slog.GroupValue(attrs...)
}

// Report lists the files of a build in discovery order.
type Report struct {
	Rendered []Result
	Failed   []Result
}

// OK reports whether every file was rendered.
func (r Report) OK() bool { return len(r.Failed) == 0 }

// Build renders every template under the input root.
//
// Per-file failures are collected in the report. The error is non-nil only
// if the input tree cannot be walked, an existing output template cannot be
// read, or ctx is done.
func (s *Site) Build(ctx context.Context) (Report, error) {
	start := time.Now()

	layout, err := s.Template(ctx)
	if err != nil {
		return Report{}, err
	}

	files, err := s.Files()
	if err != nil {
		return Report{}, err
	}

	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = s.renderFile(gctx, path, layout)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	var report Report

	for _, r := range results {
		if r.Err != nil {
			report.Failed = append(report.Failed, r)
		} else {
			report.Rendered = append(report.Rendered, r)
		}
	}

	s.logger.InfoContext(ctx, "build finished",
		slog.Int("rendered", len(report.Rendered)),
		slog.Int("failed", len(report.Failed)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return report, nil
}

// Files returns the templates under the input root in lexical order.
func (s *Site) Files() ([]string, error) {
	var files []string

	err := filepath.WalkDir(s.inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path != s.inputRoot && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.IsDir() && strings.HasSuffix(d.Name(), s.renderExt) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, ErrWalk.Wrap(err).With(slog.String("root", s.inputRoot))
	}

	return files, nil
}

// Render preprocesses the template at path with a fresh environment and
// returns the body without the output template.
func (s *Site) Render(ctx context.Context, path string) (string, error) {
	return s.engine.File(ctx, path, s.newEnv())
}

// OutputPath returns the output file path of the template at path.
func (s *Site) OutputPath(path string) string {
	rel, err := filepath.Rel(s.inputRoot, absPath(path))
	if err != nil {
		rel = filepath.Base(path)
	}

	return filepath.Join(s.outputRoot, strings.TrimSuffix(rel, s.renderExt)+s.outputExt)
}

// Wrap substitutes body for every placeholder in layout.
func (s *Site) Wrap(layout, body string) string {
	return strings.ReplaceAll(layout, s.placeholder, body)
}

func (s *Site) newEnv() *lang.Env {
	return lang.NewEnv(
		lang.WithRoot(s.inputRoot),
		lang.WithProcessEnv(s.processEnv),
		lang.WithLogger(s.logger),
	)
}

// Template returns the output template, or the bare placeholder if the
// template file does not exist.
func (s *Site) Template(ctx context.Context) (string, error) {
	b, err := os.ReadFile(s.template)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.InfoContext(ctx, "no output template, writing bare documents",
			slog.String("template", s.template),
		)

		return s.placeholder, nil
	}

	if err != nil {
		return "", ErrTemplate.Wrap(err).With(slog.String("template", s.template))
	}

	s.logger.InfoContext(ctx, "using output template", slog.String("template", s.template))

	return string(b), nil
}

func (s *Site) renderFile(ctx context.Context, path, layout string) Result {
	start := time.Now()
	r := Result{Path: path, Output: s.OutputPath(path)}

	body, err := s.Render(ctx, path)
	if err == nil {
		err = atomic.WriteFile(r.Output, strings.NewReader(s.Wrap(layout, body)))
		if err != nil {
			err = ErrWrite.Wrap(err).With(slog.String("output", r.Output))
		}
	}

	r.Elapsed = time.Since(start)
	r.Err = err

	if err != nil {
		s.logger.ErrorContext(ctx, "render failed", slog.Any("result", r))
	} else {
		s.logger.InfoContext(ctx, "rendered", slog.Any("result", r))
	}

	return r
}

func absPath(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	return p
}
