package lang

import (
	"errors"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "a b", "a b"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"uint64", uint64(7), "7"},
		{"float", 2.50, "2.5"},
		{"whole float", 3.0, "3"},
		{"slice", []any{1, "a", nil}, "[1, a, ]"},
		{"strings", []string{"a", "b"}, "[a, b]"},
		{"map", map[string]any{"z": 1, "a": []any{2}}, "{a: [2], z: 1}"},
		{"error", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.in); got != tt.want {
				t.Errorf("String(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
