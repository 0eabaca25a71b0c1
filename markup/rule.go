package markup

import (
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
)

// Rule is one pattern/replacement pair of the formatter.
//
// Replacement refers to capture groups of its own pattern with $N.
type Rule struct {
	Name        string
	Pattern     string
	Replacement string

	// Regex marks Pattern as a regular expression rather than the
	// simplified notation accepted by [Compile].
	Regex bool
	// Block marks rules that build block-level elements.
	Block bool
}

// Expr returns the regular expression source of the rule.
func (r Rule) Expr() string {
	if r.Regex {
		return r.Pattern
	}

	return Compile(r.Pattern)
}

var rules = []Rule{
	{
		Name:        "paragraph",
		Pattern:     `(?:\n\s*|^\s*)([^!#<\s][\s\S]*?)(?=\n\n|\n*$)`,
		Replacement: "<p>$1</p>\n",
		Regex:       true,
		Block:       true,
	},
	{
		Name:        "subheading",
		Pattern:     "## ? ##",
		Replacement: "<h2>$1</h2>",
		Block:       true,
	},
	{
		Name:        "heading",
		Pattern:     "# ? #",
		Replacement: "<h1>$1</h1>",
		Block:       true,
	},
	{
		Name:        "italic",
		Pattern:     "__ ? __",
		Replacement: "<em>$1</em>",
	},
	{
		Name:        "bold",
		Pattern:     "** ? **",
		Replacement: "<strong>$1</strong>",
	},
	{
		Name:        "image-classed",
		Pattern:     "![ ? ] ( ? ) < ? >",
		Replacement: `<div class="img $3" alt="$1" style="background-image: url('$2');"></div>`,
	},
	{
		Name:        "image",
		Pattern:     "![ ? ] ( ? )",
		Replacement: `<div class="img" alt="$1" style="background-image: url('$2');"></div>`,
	},
	{
		Name:        "link-same-tab",
		Pattern:     "[ ? ] =( ? )",
		Replacement: `<a href="$2">$1</a>`,
	},
	{
		Name:        "link",
		Pattern:     "[ ? ] ( ? )",
		Replacement: `<a href="$2" target="_blank">$1</a>`,
	},
	{
		Name:        "linebreak",
		Pattern:     `\\`,
		Replacement: "<br/>",
	},
	{
		Name:        "nbsp",
		Pattern:     "<>",
		Replacement: "&nbsp;",
	},
}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)

	return out
}

type compiled struct {
	rule Rule
	re   *regexp2.Regexp
}

var compiledRules = sync.OnceValue(func() []compiled {
	out := make([]compiled, len(rules))
	for i, r := range rules {
		out[i] = compiled{rule: r, re: regexp2.MustCompile(r.Expr(), regexp2.None)}
	}

	return out
})

// metachars are escaped when they appear literally in the notation.
const metachars = `\.+*()|[]{}^$#`

// Compile translates the simplified rule notation into a regular expression:
//
//	"  " (two spaces)  one or more whitespace   \s+
//	" "  (one space)   zero or more whitespace  \s*
//	"?"                lazy capture             (.*?)
//
// Every other character matches itself; "[", "]", "(", ")" and "*" are
// therefore literals, not regular expression syntax.
func Compile(notation string) string {
	var sb strings.Builder

	sb.Grow(len(notation) * 2)

	for i := 0; i < len(notation); i++ {
		switch c := notation[i]; {
		case c == ' ' && i+1 < len(notation) && notation[i+1] == ' ':
			sb.WriteString(`\s+`)
			i++

		case c == ' ':
			sb.WriteString(`\s*`)

		case c == '?':
			sb.WriteString(`(.*?)`)

		case strings.IndexByte(metachars, c) >= 0:
			sb.WriteByte('\\')
			sb.WriteByte(c)

		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}
