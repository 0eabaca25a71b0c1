package lang

import "github.com/ardnew/sitegen/pkg"

// Predefined errors (sentinel values).
var (
	ErrCompile   = pkg.NewError("compile failed")
	ErrEvaluate  = pkg.NewError("evaluation failed")
	ErrStatement = pkg.NewError("invalid statement")
	ErrReadFile  = pkg.NewError("failed to read file")
	ErrDecode    = pkg.NewError("failed to decode data")
)
