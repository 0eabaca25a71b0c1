// Package log provides a concurrency-safe structured logger built on
// [log/slog].
//
// A [Logger] is an immutable value. Options given to [Make] or [Logger.Wrap]
// configure level, output format, timestamp layout, caller information and
// colourised console output:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithPretty(true))
//
//	logger.Info("rendered", slog.String("file", "index.gen.html"))
//
// The package also maintains a default logger used by the package-level
// functions ([Info], [Warn], ...). [Config] replaces it; the CLI calls
// [Config] while flags are parsed so early diagnostics already honour the
// requested level and format.
//
// Besides the slog levels, [LevelTrace] sits below debug for very chatty
// output such as per-directive evaluation.
package log
