package lang

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
)

// Exec runs every statement of body in order, writing print and write output
// to w. Execution stops at the first failing statement; output written by
// earlier statements stays in w.
func (e *Env) Exec(ctx context.Context, body string, w io.Writer) error {
	defer e.redirect(w)()

	for _, st := range split(body) {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := e.run(ctx, st); err != nil {
			return err
		}
	}

	return nil
}

// Run executes body like [Env.Exec] and returns the value of its final
// statement, or nil when that statement is an assignment.
func (e *Env) Run(ctx context.Context, body string, w io.Writer) (any, error) {
	defer e.redirect(w)()

	var last any

	for _, st := range split(body) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v, err := e.run(ctx, st)
		if err != nil {
			return nil, err
		}

		last = v
	}

	return last, nil
}

// Eval evaluates a single expression and returns its value.
func (e *Env) Eval(ctx context.Context, source string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return e.eval(strings.TrimSpace(source), 1)
}

// Snippet evaluates a single expression and writes its textual value to w
// with no trailing newline. Output printed by the expression itself precedes
// the value.
func (e *Env) Snippet(ctx context.Context, source string, w io.Writer) error {
	defer e.redirect(w)()

	v, err := e.Eval(ctx, source)
	if err != nil {
		return err
	}

	e.emit(String(v))

	return nil
}

// redirect points script output at w and returns a func restoring the
// previous writer.
func (e *Env) redirect(w io.Writer) func() {
	if w == nil {
		w = io.Discard
	}

	prev := e.out
	e.out = w

	return func() { e.out = prev }
}

// run executes one statement and returns its value. Assignments yield nil.
func (e *Env) run(ctx context.Context, st statement) (any, error) {
	if st.name != "" && st.source == "" {
		return nil, ErrStatement.With(
			slog.String("statement", st.name+" ="),
			slog.Int("line", st.line),
		)
	}

	v, err := e.eval(st.source, st.line)
	if err != nil {
		return nil, err
	}

	if st.name == "" {
		return v, nil
	}

	e.vars[st.name] = v
	e.logger.TraceContext(ctx, "assign",
		slog.String("name", st.name),
		slog.Int("line", st.line),
	)

	return nil, nil
}

func (e *Env) eval(source string, line int) (any, error) {
	program, err := expr.Compile(source, expr.Env(e.vars))
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(
			slog.String("statement", source),
			slog.Int("line", line),
		)
	}

	v, err := expr.Run(program, e.vars)
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).With(
			slog.String("statement", source),
			slog.Int("line", line),
		)
	}

	return v, nil
}

// statement is one unit of a script body.
type statement struct {
	line   int
	name   string // assignment target, empty for a bare expression
	source string
}

var assignment = regexp.MustCompile(`(?s)^([A-Za-z_][A-Za-z0-9_]*)\s*=(?:([^=].*))?$`)

func parseStatement(source string, line int) statement {
	if m := assignment.FindStringSubmatch(source); m != nil {
		return statement{
			line:   line,
			name:   m[1],
			source: strings.TrimSpace(m[2]),
		}
	}

	return statement{line: line, source: source}
}

// split breaks body into statements at newlines and semicolons outside
// brackets and string literals, dropping comments and blank statements.
func split(body string) []statement {
	var (
		out   []statement
		sb    strings.Builder
		depth int
		quote rune
		line  = 1
		start = 1
	)

	flush := func() {
		if s := strings.TrimSpace(sb.String()); s != "" {
			out = append(out, parseStatement(s, start))
		}

		sb.Reset()
	}

	put := func(r rune) {
		if strings.TrimSpace(sb.String()) == "" && r != ' ' && r != '\t' && r != '\n' {
			start = line
		}

		sb.WriteRune(r)
	}

	rs := []rune(body)

	for i := 0; i < len(rs); i++ {
		r := rs[i]

		switch {
		case quote != 0:
			sb.WriteRune(r)

			if r == '\\' && quote != '`' && i+1 < len(rs) {
				i++
				r = rs[i]
				sb.WriteRune(r)
			} else if r == quote {
				quote = 0
			}

		case r == '"' || r == '\'' || r == '`':
			quote = r
			put(r)

		case r == '/' && i+1 < len(rs) && rs[i+1] == '/':
			for i+1 < len(rs) && rs[i+1] != '\n' {
				i++
			}

		case r == '(' || r == '[' || r == '{':
			depth++
			put(r)

		case r == ')' || r == ']' || r == '}':
			if depth > 0 {
				depth--
			}

			put(r)

		case (r == '\n' || r == ';') && depth == 0:
			flush()

		default:
			put(r)
		}

		if r == '\n' {
			line++
		}
	}

	flush()

	return out
}
