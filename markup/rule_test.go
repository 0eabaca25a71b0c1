package markup

import (
	"slices"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		notation string
		want     string
	}{
		{"** ? **", `\*\*\s*(.*?)\s*\*\*`},
		{"# ? #", `\#\s*(.*?)\s*\#`},
		{"[ ? ] ( ? )", `\[\s*(.*?)\s*\]\s*\(\s*(.*?)\s*\)`},
		{"a  b", `a\s+b`},
		{"a   b", `a\s+\s*b`},
		{`\\`, `\\\\`},
		{"<>", "<>"},
		{"x.y", `x\.y`},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			if got := Compile(tt.notation); got != tt.want {
				t.Errorf("Compile(%q) = %q, want %q", tt.notation, got, tt.want)
			}
		})
	}
}

func TestRules(t *testing.T) {
	want := []string{
		"paragraph", "subheading", "heading", "italic", "bold",
		"image-classed", "image", "link-same-tab", "link", "linebreak", "nbsp",
	}

	rs := Rules()

	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}

	if !slices.Equal(names, want) {
		t.Errorf("rule order = %v, want %v", names, want)
	}

	rs[0].Name = "changed"
	if Rules()[0].Name != "paragraph" {
		t.Error("Rules() exposes the shared table")
	}

	for _, r := range Rules() {
		if r.Expr() == "" {
			t.Errorf("rule %q has empty expression", r.Name)
		}
	}
}
