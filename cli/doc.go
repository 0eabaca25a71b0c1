// Package cli contains the command line interface for sitegen.
//
// # Usage
//
//	sitegen [flags] [command]
//
// With no command, build renders every "*.gen.html" template under --root
// and writes "*.html" files to the mirrored path under --out:
//
//	cd site/src && sitegen              # writes ../index.html, ...
//	sitegen -r site/src -o public -j 4  # four files at a time
//	sitegen render blog/post.gen.html   # print one preprocessed body
//	echo '# Hi' | sitegen markup        # markup formatter on stdin
//	sitegen eval 'path.ext("a.tar.gz")'
//
// # Configuration
//
// Flag defaults are read, in order, from the user configuration
// (config.json, then config.yaml, in the user configuration directory) and
// from ".sitegen.yaml" in the working directory. Later files override
// earlier ones and command-line flags override all of them. YAML files are
// flat maps keyed by flag name:
//
//	root: src
//	out: public
//	jobs: 4
//	log-level: debug
//
// "sitegen init" writes the current flag values to .sitegen.yaml, or to
// the user configuration with --global.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: text or json
//   - --log-time-layout: a time package layout name or a literal layout
//   - --log-caller: include source locations
//   - --[no-]log-pretty: colorized text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o sitegen .
//	sitegen --pprof-mode=cpu --pprof-dir=/tmp/profiles
package cli
