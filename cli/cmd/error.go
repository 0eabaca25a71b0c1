package cmd

import "github.com/ardnew/sitegen/pkg"

// Predefined errors (sentinel values).
var (
	ErrBuild       = pkg.NewError("build failed")
	ErrBuildFailed = pkg.NewError("one or more files failed to render")
	ErrRender      = pkg.NewError("render failed")
	ErrEval        = pkg.NewError("evaluation failed")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
)
