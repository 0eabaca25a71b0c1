package preprocess

import (
	"log/slog"
	"slices"
	"strings"
)

// Chain is the ancestry of rendered includes leading to the text being
// preprocessed, outermost first. Paths are absolute and clean.
type Chain []string

// Contains reports whether path is already in the chain.
func (c Chain) Contains(path string) bool {
	return slices.Contains(c, path)
}

// With returns a new chain extended by path. The receiver is not modified.
func (c Chain) With(path string) Chain {
	return append(slices.Clip(c), path)
}

// Current returns the innermost path, or "" for an empty chain.
func (c Chain) Current() string {
	if len(c) == 0 {
		return ""
	}

	return c[len(c)-1]
}

func (c Chain) String() string {
	return strings.Join(c, " -> ")
}

// LogValue implements slog.LogValuer.
func (c Chain) LogValue() slog.Value {
	return slog.StringValue(c.String())
}
