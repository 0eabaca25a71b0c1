// Package lang is the embedded script language of sitegen templates.
//
// Scripts are sequences of expr-lang expressions (https://expr-lang.org)
// evaluated against an [Env]. The sandbox exposes no host-language
// execution: the only capabilities are the expr-lang builtins plus the
// helpers installed by [NewEnv].
//
// # Statements
//
// A script body is split into statements at newlines and semicolons that
// appear outside brackets and string literals, so a multi-line call such as
//
//	print(join(map(items, {
//	  element("li", #)
//	}), ""))
//
// is a single statement. Each statement is either an assignment
//
//	title = "Home"
//
// which stores the value in the environment, or an expression evaluated for
// its side effects (usually output written by print or write). Text from
// "//" to the end of the line is a comment.
//
// Statements are compiled against the environment as it is when they run,
// so a name assigned by one statement is visible to every later statement
// and to every later script executed with the same [Env].
//
// # Builtins
//
//	print(args...)            write args separated by spaces, then a newline
//	write(args...)            write args with no separator or newline
//	sprintf(format, args...)  fmt.Sprintf
//	html(s)                   escape s for HTML text or attributes
//	format(s), mdformat(s)    convert markup to HTML
//	inline(s)                 convert inline markup only
//	element(tag, content?, attrs?)
//	inject(vars, text)        substitute $key and $$key ... $$ in text
//	template(path, vars)      inject vars into the file at path
//	data(path)                decode a YAML or JSON file
//	listing(dir)              decode every entry named in dir/list.yaml
//	env(key)                  process environment lookup
//	cwd()                     process working directory
//	path.abs, path.cat, path.rel, path.base, path.dir, path.ext
//	file.exists, file.isDir, file.isRegular, file.read
//	list.prefix(subject, delim, items...)
//	list.prefixDirs(subject, delim, items...)
//
// Relative file paths given to builtins resolve against the environment's
// root directory. Builtin names may be shadowed by assignment.
package lang
