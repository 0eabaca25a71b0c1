package directive

import (
	"regexp"
	"strings"
)

// Kind identifies the form of a directive.
type Kind int

const (
	Include Kind = iota
	RenderedInclude
	CodeBlock
	CodeSnippet
	CodeInclude
)

func (k Kind) String() string {
	switch k {
	case Include:
		return "include"
	case RenderedInclude:
		return "rendered-include"
	case CodeBlock:
		return "code-block"
	case CodeSnippet:
		return "code-snippet"
	case CodeInclude:
		return "code-include"
	default:
		return "unknown"
	}
}

// IsCode reports whether directives of kind k execute script.
func (k Kind) IsCode() bool {
	return k == CodeBlock || k == CodeSnippet || k == CodeInclude
}

// Match is one directive occurrence.
type Match struct {
	Kind Kind
	// Source is the exact directive text, used for replacement.
	Source string
	// Arg is the path for include forms, the undedented body of a code
	// block, or the expression of a snippet.
	Arg string
	// Start and End are the byte offsets of Source in the scanned text.
	Start, End int
}

// DefaultRenderableExt is the extension of files that are preprocessed
// before being included.
const DefaultRenderableExt = ".gen.html"

const (
	includePattern     = `<include\s+src\s*=\s*"([^"]+?)"\s*/>`
	codeIncludePattern = `<py\s+src\s*=\s*"([^"]+?)"\s*/>`
	codeBlockPattern   = `<(?:py|pre\s+py|code\s+py)>([\s\S]+?)</(?:py|pre|code)>`
	snippetPattern     = "(?://)?#`([^`\\n]+)`"
)

// Matcher scans text for directives.
type Matcher struct {
	ext      string
	combined *regexp.Regexp
	include  *regexp.Regexp
}

// Option configures a [Matcher].
type Option func(*Matcher)

// WithRenderableExt sets the extension that makes an include a rendered
// include.
func WithRenderableExt(ext string) Option {
	return func(m *Matcher) {
		if ext != "" {
			m.ext = ext
		}
	}
}

// New returns a Matcher configured by opts.
func New(opts ...Option) *Matcher {
	m := &Matcher{ext: DefaultRenderableExt}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	rendered := `<include\s+src\s*=\s*"([^"]+?` + regexp.QuoteMeta(m.ext) + `)"\s*/>`

	m.combined = regexp.MustCompile(strings.Join([]string{
		codeIncludePattern,
		codeBlockPattern,
		snippetPattern,
		rendered,
	}, "|"))
	m.include = regexp.MustCompile(includePattern)

	return m
}

// RenderableExt returns the renderable extension.
func (m *Matcher) RenderableExt() string { return m.ext }

// IsRenderable reports whether path has the renderable extension.
func (m *Matcher) IsRenderable(path string) bool {
	return strings.HasSuffix(path, m.ext)
}

// combinedKinds maps the capture groups of the combined pattern, in order,
// to the kind they identify.
var combinedKinds = [...]Kind{CodeInclude, CodeBlock, CodeSnippet, RenderedInclude}

// Scan returns the code includes, code blocks, code snippets and rendered
// includes in text, left to right and non-overlapping.
func (m *Matcher) Scan(text string) []Match {
	var out []Match

	for _, loc := range m.combined.FindAllStringSubmatchIndex(text, -1) {
		for g, kind := range combinedKinds {
			lo, hi := loc[2+2*g], loc[3+2*g]
			if lo < 0 {
				continue
			}

			out = append(out, Match{
				Kind:   kind,
				Source: text[loc[0]:loc[1]],
				Arg:    text[lo:hi],
				Start:  loc[0],
				End:    loc[1],
			})

			break
		}
	}

	return out
}

// ScanIncludes returns every include directive in text. Includes of
// renderable files are reported as [RenderedInclude].
func (m *Matcher) ScanIncludes(text string) []Match {
	var out []Match

	for _, loc := range m.include.FindAllStringSubmatchIndex(text, -1) {
		path := text[loc[2]:loc[3]]

		kind := Include
		if m.IsRenderable(path) {
			kind = RenderedInclude
		}

		out = append(out, Match{
			Kind:   kind,
			Source: text[loc[0]:loc[1]],
			Arg:    path,
			Start:  loc[0],
			End:    loc[1],
		})
	}

	return out
}

var defaultMatcher = New()

// Scan calls [Matcher.Scan] on a Matcher with the default renderable
// extension.
func Scan(text string) []Match { return defaultMatcher.Scan(text) }

// ScanIncludes calls [Matcher.ScanIncludes] on a Matcher with the default
// renderable extension.
func ScanIncludes(text string) []Match { return defaultMatcher.ScanIncludes(text) }
