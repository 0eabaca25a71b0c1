package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEvalRun(t *testing.T) {
	dir := t.TempDir()

	script := filepath.Join(dir, "defs.script")
	if err := os.WriteFile(script, []byte("base = 10\nprint(\"loaded\")"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "data.yaml"), []byte("name: sitegen\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		eval    Eval
		want    string
		wantErr bool
	}{
		{
			name: "expression",
			eval: Eval{Script: []string{"1 + 2"}},
			want: "3\n",
		},
		{
			name: "statements joined",
			eval: Eval{Script: []string{"x = 2;", "x * 3"}},
			want: "6\n",
		},
		{
			name: "assignment prints nothing",
			eval: Eval{Script: []string{"x = 2"}},
			want: "",
		},
		{
			name: "print output precedes value",
			eval: Eval{Script: []string{`print("hi"); upper("x")`}},
			want: "hi\nX\n",
		},
		{
			name: "paths resolve against root",
			eval: Eval{Script: []string{`data("data.yaml").name`}},
			want: "sitegen\n",
		},
		{
			name: "file then arguments",
			eval: Eval{File: script, Script: []string{"base + 1"}},
			want: "loaded\n11\n",
		},
		{
			name:    "compile error",
			eval:    Eval{Script: []string{"1 +"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, stdout := newTestContext(t, dir, dir, nil)

			err := tt.eval.Run(ctx)
			if tt.wantErr {
				if !errors.Is(err, ErrEval) {
					t.Errorf("error = %v, want ErrEval", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("Eval.Run: %v", err)
			}

			if stdout.String() != tt.want {
				t.Errorf("output = %q, want %q", stdout.String(), tt.want)
			}
		})
	}
}
