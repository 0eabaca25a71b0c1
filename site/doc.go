// Package site renders a tree of templates into a tree of output files.
//
// Build walks the input root for files with the renderable extension,
// skipping every file and directory whose name begins with ".". Each file
// is preprocessed with its own [lang.Env] and inclusion chain, wrapped in
// the output template, and written to the output root under the same
// relative path with the output extension.
//
// The output template is <input root>/.doctemplate.html unless configured
// otherwise. Every occurrence of its placeholder ("$doc") is replaced by
// the rendered body. Without a template the body is written as is.
//
// A file that fails (unreadable include, missing output directory) is
// reported in the [Report] and the build moves on.
package site
