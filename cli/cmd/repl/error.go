package repl

import "github.com/ardnew/sitegen/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds = pkg.NewError("index out of range")
	ErrLoad        = pkg.NewError("load script")
)
