// Package preprocess resolves the directives of a template.
//
// An [Engine] scans the text once for code includes, code blocks, code
// snippets and rendered includes and resolves them in the order found:
//
//   - code runs against the shared [lang.Env] and its output replaces the
//     directive; a failing script is replaced by an inline diagnostic
//   - a rendered include is preprocessed recursively with the same Env and
//     an extended [Chain]; an include already in the chain is a cycle and is
//     left as literal text
//
// Every literal occurrence of a directive's text is replaced at once, so a
// directive repeated verbatim runs once. A second pass then splices raw
// includes verbatim. Raw-included text is not scanned again.
//
// A path beginning with "/" resolves against the engine root; any other
// path resolves against the directory of the file containing the directive.
package preprocess
