package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		global  bool
		exists  bool
		wantErr error
	}{
		{name: "create project config"},
		{name: "create user config", global: true},
		{name: "overwrite with force", force: true, exists: true},
		{name: "refuse without force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			project := filepath.Join(dir, ".sitegen.yaml")
			user := filepath.Join(dir, "config", "sitegen", "config.yaml")

			path := project
			if tt.global {
				path = user
			}

			if tt.exists {
				if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			ctx, _ := newTestContext(t, dir, dir, kong.Vars{
				ConfigIdentifier:  user,
				ProjectIdentifier: project,
			})

			err := (&Init{Force: tt.force, Global: tt.global}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}

				b, _ := os.ReadFile(path)
				if string(b) != "existing" {
					t.Errorf("existing file modified: %q", b)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run: %v", err)
			}

			b, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}

			var cfg map[string]any
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				t.Errorf("generated config is not valid YAML: %v\n%s", err, b)
			}
		})
	}
}

func TestInitWritesFlagValues(t *testing.T) {
	var cli struct {
		Root   string `default:"src"`
		Jobs   int    `default:"4"`
		Pretty bool   `default:"true"`
		Empty  string
		Secret string `default:"x" hidden:""`
	}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	b, err := yaml.Marshal(configValues(ktx))
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}

	if got["root"] != "src" || got["pretty"] != true {
		t.Errorf("config = %v", got)
	}

	if _, ok := got["jobs"]; !ok {
		t.Errorf("config missing jobs: %v", got)
	}

	for _, name := range []string{"help", "empty", "secret"} {
		if _, ok := got[name]; ok {
			t.Errorf("config contains %q: %v", name, got)
		}
	}
}
