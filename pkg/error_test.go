package pkg

import (
	"errors"
	"io/fs"
	"log/slog"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"sentinel", NewError("boom"), "boom"},
		{"wrapped", NewError("boom").Wrap(fs.ErrNotExist), "boom: file does not exist"},
		{"cause only", (&Error{}).Wrap(fs.ErrNotExist), "file does not exist"},
		{"empty", &Error{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	base := NewError("include failed")
	err := base.Wrap(fs.ErrNotExist).With(slog.String("path", "a.html"))

	if !errors.Is(err, base) {
		t.Error("decorated error does not match its sentinel")
	}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("decorated error does not match its cause")
	}

	if errors.Is(err, NewError("other")) {
		t.Error("decorated error matches an unrelated sentinel")
	}

	if errors.Is(base, err) {
		t.Error("sentinel matches a decorated target")
	}
}

func TestErrorWithIsImmutable(t *testing.T) {
	base := NewError("x")
	a := base.With(slog.Int("a", 1))
	b := a.With(slog.Int("b", 2))

	if len(Attrs(base)) != 0 || len(Attrs(a)) != 1 || len(Attrs(b)) != 2 {
		t.Errorf("attrs: base=%v a=%v b=%v", Attrs(base), Attrs(a), Attrs(b))
	}

	if Attrs(errors.New("plain")) != nil {
		t.Error("Attrs of a plain error is not nil")
	}
}

func TestErrorLogValue(t *testing.T) {
	err := NewError("boom").Wrap(fs.ErrNotExist).With(slog.String("path", "p"))

	got := map[string]string{}
	for _, a := range err.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{"error": "boom", "cause": "file does not exist", "path": "p"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("LogValue %s = %q, want %q", k, got[k], v)
		}
	}
}
