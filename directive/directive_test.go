package directive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Match
	}{
		{
			name: "no directives",
			text: "<p>plain # text ` here</p>",
			want: nil,
		},
		{
			name: "snippet",
			text: "a #`1+1` b",
			want: []Match{{Kind: CodeSnippet, Source: "#`1+1`", Arg: "1+1", Start: 2, End: 8}},
		},
		{
			name: "comment snippet",
			text: "//#`x`",
			want: []Match{{Kind: CodeSnippet, Source: "//#`x`", Arg: "x", Start: 0, End: 6}},
		},
		{
			name: "py block",
			text: "<py>\n  print(1)\n</py>",
			want: []Match{{Kind: CodeBlock, Source: "<py>\n  print(1)\n</py>", Arg: "\n  print(1)\n", Start: 0, End: 21}},
		},
		{
			name: "pre py closes with pre",
			text: "<pre  py>x</pre>",
			want: []Match{{Kind: CodeBlock, Source: "<pre  py>x</pre>", Arg: "x", Start: 0, End: 16}},
		},
		{
			name: "code py mismatched close",
			text: "<code py>x</py>",
			want: []Match{{Kind: CodeBlock, Source: "<code py>x</py>", Arg: "x", Start: 0, End: 15}},
		},
		{
			name: "rendered include",
			text: `<include src="/nav.gen.html"/>`,
			want: []Match{{Kind: RenderedInclude, Source: `<include src="/nav.gen.html"/>`, Arg: "/nav.gen.html", Start: 0, End: 30}},
		},
		{
			name: "flexible whitespace",
			text: "<include   src =  \"a.gen.html\"   />",
			want: []Match{{Kind: RenderedInclude, Source: "<include   src =  \"a.gen.html\"   />", Arg: "a.gen.html", Start: 0, End: 35}},
		},
		{
			name: "code include",
			text: `<py src="lib.expr" />`,
			want: []Match{{Kind: CodeInclude, Source: `<py src="lib.expr" />`, Arg: "lib.expr", Start: 0, End: 21}},
		},
		{
			name: "raw include is not in the combined scan",
			text: `<include src="a.txt" />`,
			want: nil,
		},
		{
			name: "in order",
			text: "#`a`<py>b</py>#`c`",
			want: []Match{
				{Kind: CodeSnippet, Source: "#`a`", Arg: "a", Start: 0, End: 4},
				{Kind: CodeBlock, Source: "<py>b</py>", Arg: "b", Start: 4, End: 14},
				{Kind: CodeSnippet, Source: "#`c`", Arg: "c", Start: 14, End: 18},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Scan(tt.text)); diff != "" {
				t.Errorf("Scan(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestScanMalformed(t *testing.T) {
	for _, text := range []string{
		`<includesrc="a.gen.html" />`,
		`<include src=a.gen.html />`,
		`<include src="a.gen.html" >`,
		`<include src="a".gen.html" />`,
		`<prepy>x</pre>`,
		`<py>unterminated`,
		"#`multi\nline`",
		"#``",
	} {
		if got := Scan(text); len(got) != 0 {
			t.Errorf("Scan(%q) = %+v, want no matches", text, got)
		}

		if got := ScanIncludes(text); len(got) != 0 {
			t.Errorf("ScanIncludes(%q) = %+v, want no matches", text, got)
		}
	}
}

func TestScanIncludes(t *testing.T) {
	text := `<include src="head.html" /><include src="a.gen.html" />`

	want := []Match{
		{Kind: Include, Source: `<include src="head.html" />`, Arg: "head.html", Start: 0, End: 27},
		{Kind: RenderedInclude, Source: `<include src="a.gen.html" />`, Arg: "a.gen.html", Start: 27, End: 55},
	}

	if diff := cmp.Diff(want, ScanIncludes(text)); diff != "" {
		t.Errorf("ScanIncludes mismatch (-want +got):\n%s", diff)
	}
}

func TestWithRenderableExt(t *testing.T) {
	m := New(WithRenderableExt(".py.html"))

	if got := m.RenderableExt(); got != ".py.html" {
		t.Errorf("RenderableExt() = %q", got)
	}

	got := m.Scan(`<include src="a.py.html" /><include src="b.gen.html" />`)
	if len(got) != 1 || got[0].Arg != "a.py.html" {
		t.Errorf("Scan() = %+v, want only a.py.html", got)
	}

	if New(WithRenderableExt("")).RenderableExt() != DefaultRenderableExt {
		t.Error("empty extension not replaced by default")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
		code bool
	}{
		{Include, "include", false},
		{RenderedInclude, "rendered-include", false},
		{CodeBlock, "code-block", true},
		{CodeSnippet, "code-snippet", true},
		{CodeInclude, "code-include", true},
		{Kind(99), "unknown", false},
	}

	for _, tt := range tests {
		if tt.kind.String() != tt.name || tt.kind.IsCode() != tt.code {
			t.Errorf("%d: got (%s, %v), want (%s, %v)",
				tt.kind, tt.kind, tt.kind.IsCode(), tt.name, tt.code)
		}
	}
}
