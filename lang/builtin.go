package lang

import (
	"fmt"
	"html"
	"io"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/ardnew/mung"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/sitegen/markup"
)

// builtins returns the helpers installed in every new environment. Output
// helpers close over e so they write to whatever script is running.
func (e *Env) builtins() map[string]any {
	return map[string]any{
		// Output.
		"print": e.print,
		"write": e.write,

		// Text.
		"sprintf":  fmt.Sprintf,
		"html":     escapeHTML,
		"format":   markup.Format,
		"mdformat": markup.Format,
		"inline":   markup.FormatInline,
		"element":  element,
		"inject":   inject,
		"template": e.template,

		// Data files.
		"data":    e.data,
		"listing": e.listing,

		// Process.
		"env": e.env,
		"cwd": getCwd,

		"path": map[string]any{
			"abs":  pathAbs,
			"cat":  pathCat,
			"rel":  pathRel,
			"base": filepath.Base,
			"dir":  filepath.Dir,
			"ext":  filepath.Ext,
		},

		"file": map[string]any{
			"exists":    e.fileExists,
			"isDir":     e.fileIsDir,
			"isRegular": e.fileIsRegular,
			"read":      e.fileRead,
		},

		// Delimited string lists via mung.
		"list": map[string]any{
			"prefix":     listPrefix,
			"prefixDirs": e.listPrefixDirs,
		},
	}
}

// ---------------------------------------------------------------------------
// Output
// ---------------------------------------------------------------------------

func (e *Env) print(args ...any) any {
	e.emit(joinValues(args, " ") + "\n")

	return nil
}

func (e *Env) write(args ...any) any {
	e.emit(joinValues(args, ""))

	return nil
}

func (e *Env) emit(s string) {
	_, _ = io.WriteString(e.out, s)
}

func joinValues(args []any, sep string) string {
	part := make([]string, len(args))
	for i, a := range args {
		part[i] = String(a)
	}

	return strings.Join(part, sep)
}

// ---------------------------------------------------------------------------
// HTML helpers
// ---------------------------------------------------------------------------

func escapeHTML(v any) string {
	return html.EscapeString(String(v))
}

// voidTags are written as <tag ... /> when given no content.
var voidTags = []string{"br", "hr", "img", "input", "link", "meta"}

// element renders <tag attrs>content</tag>. The optional arguments are the
// content (any value, nil for none) and a map of attributes. A list value for
// an attribute is joined with spaces, and a leading underscore is dropped
// from attribute names so reserved words like _class can be written.
func element(tag string, args ...any) (string, error) {
	var (
		content any
		attrs   map[string]any
	)

	switch len(args) {
	case 0:
	case 1:
		content = args[0]
	case 2:
		content = args[0]

		m, ok := args[1].(map[string]any)
		if !ok && args[1] != nil {
			return "", fmt.Errorf("element attributes must be a map, got %T", args[1])
		}

		attrs = m
	default:
		return "", fmt.Errorf("element takes at most 3 arguments, got %d", len(args)+1)
	}

	var sb strings.Builder

	sb.WriteByte('<')
	sb.WriteString(tag)

	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		value := attrs[k]
		if list, ok := value.([]any); ok {
			value = joinValues(list, " ")
		}

		sb.WriteByte(' ')
		sb.WriteString(strings.TrimPrefix(k, "_"))
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(String(value)))
		sb.WriteByte('"')
	}

	if content == nil && slices.Contains(voidTags, strings.ToLower(tag)) {
		sb.WriteString(" />")

		return sb.String(), nil
	}

	sb.WriteByte('>')
	sb.WriteString(String(content))
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')

	return sb.String(), nil
}

// inject substitutes vars into text.
//
// Every "$key" becomes the value of key. A span "$$key body$$" is replaced
// by body repeated once per element of a list value (once for any other
// value), with "$key" in each copy replaced by that element. Longer keys are
// substituted first so "$title" never clobbers "$titlebar".
func inject(vars map[string]any, text string) string {
	keys := slices.SortedFunc(maps.Keys(vars), func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}

		return strings.Compare(a, b)
	})

	for _, k := range keys {
		v := vars[k]
		ref := "$" + k

		span := regexp.MustCompile(`\$\$` + regexp.QuoteMeta(k) + `([\s\S]*?)\$\$`)
		text = span.ReplaceAllStringFunc(text, func(m string) string {
			body := span.FindStringSubmatch(m)[1]

			items, ok := v.([]any)
			if !ok {
				items = []any{v}
			}

			var sb strings.Builder
			for _, item := range items {
				sb.WriteString(strings.ReplaceAll(body, ref, String(item)))
			}

			return sb.String()
		})

		text = strings.ReplaceAll(text, ref, String(v))
	}

	return text
}

func (e *Env) template(path string, vars map[string]any) (string, error) {
	text, err := e.fileRead(path)
	if err != nil {
		return "", err
	}

	return inject(vars, text), nil
}

// ---------------------------------------------------------------------------
// Data files
// ---------------------------------------------------------------------------

// listFile names the index of a listing directory.
const listFile = "list.yaml"

// data decodes the file at path: HCL attributes for a ".hcl" extension,
// YAML (and so JSON) otherwise.
func (e *Env) data(path string) (any, error) {
	b, err := os.ReadFile(e.resolve(path))
	if err != nil {
		return nil, ErrReadFile.Wrap(err)
	}

	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return decodeHCL(b, path)
	}

	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return v, nil
}

// listing decodes dir/list.yaml, a sequence of entry names, and returns the
// data of each entry's YAML file in that order. Every entry map also holds
// its own path without extension under "link".
func (e *Env) listing(dir string) ([]any, error) {
	b, err := os.ReadFile(e.resolve(filepath.Join(dir, listFile)))
	if err != nil {
		return nil, ErrReadFile.Wrap(err)
	}

	var names []string
	if err := yaml.Unmarshal(b, &names); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	result := make([]any, 0, len(names))

	for _, name := range names {
		link := filepath.ToSlash(filepath.Join(dir, name))

		v, err := e.data(link + ".yaml")
		if err != nil {
			return nil, err
		}

		entry, ok := v.(map[string]any)
		if !ok {
			entry = map[string]any{"value": v}
		}

		entry["link"] = link
		result = append(result, entry)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Process
// ---------------------------------------------------------------------------

func (e *Env) env(key string) string {
	return e.processEnv[key]
}

// ---------------------------------------------------------------------------
// Filesystem functions
// ---------------------------------------------------------------------------

func (e *Env) fileExists(path string) bool {
	_, err := os.Stat(e.resolve(path))

	return !os.IsNotExist(err)
}

func (e *Env) fileIsDir(path string) bool {
	info, err := os.Stat(e.resolve(path))
	if err != nil {
		return false
	}

	return info.IsDir()
}

func (e *Env) fileIsRegular(path string) bool {
	info, err := os.Stat(e.resolve(path))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

func (e *Env) fileRead(path string) (string, error) {
	b, err := os.ReadFile(e.resolve(path))
	if err != nil {
		return "", ErrReadFile.Wrap(err)
	}

	return string(b), nil
}

// ---------------------------------------------------------------------------
// Path manipulation functions
// ---------------------------------------------------------------------------

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathCat(elem ...string) string {
	return filepath.Join(elem...)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathCat(from, to)
	}

	return p
}

// ---------------------------------------------------------------------------
// Delimited string lists (mung)
// ---------------------------------------------------------------------------

func listPrefix(subject, delim string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(delim),
		mung.WithPrefixItems(prefix...),
	).String()
}

// listPrefixDirs is listPrefix keeping only items that are directories.
func (e *Env) listPrefixDirs(subject, delim string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(delim),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(e.fileIsDir),
	).String()
}
