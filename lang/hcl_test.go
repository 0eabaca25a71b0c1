package lang

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeHCL(t *testing.T) {
	src := `
title = "Home"
count = 3
ratio = 1.5
draft = false
tags  = ["a", "b"]
meta  = {
  author = "ann"
  year   = 2024
}
none  = null
`

	got, err := decodeHCL([]byte(src), "site.hcl")
	if err != nil {
		t.Fatalf("decodeHCL() error = %v", err)
	}

	want := map[string]any{
		"title": "Home",
		"count": 3,
		"ratio": 1.5,
		"draft": false,
		"tags":  []any{"a", "b"},
		"meta":  map[string]any{"author": "ann", "year": 2024},
		"none":  nil,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decodeHCL() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeHCLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `title = `},
		{"block", "page {\n  title = \"x\"\n}\n"},
		{"function", `n = max(1, 2)`},
		{"variable", `label = "${title}!"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeHCL([]byte(tt.src), "bad.hcl")
			if !errors.Is(err, ErrDecode) {
				t.Errorf("decodeHCL(%q) error = %v, want ErrDecode", tt.src, err)
			}
		})
	}
}
