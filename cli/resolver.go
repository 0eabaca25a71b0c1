package cli

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/sitegen/log"
)

// loadYAML is a [kong.ConfigurationLoader] for flat YAML files whose keys
// are flag names:
//
//	log-level: debug
//	root: site
//	jobs: 4
//	strict: true
//
// Keys may use underscores in place of hyphens. A file that fails to decode
// is logged and ignored so a broken config never blocks the CLI.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any

	if err := yaml.Unmarshal(data, &raw); err != nil {
		log.Warn("ignoring malformed configuration",
			slog.Any("error", err),
		)

		return config{}, nil
	}

	cfg := make(config, len(raw))
	for key, value := range raw {
		cfg[key] = flagValue(value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] over a decoded configuration file.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. A nil result leaves the flag to its
// default or to the next resolver.
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := r[name]; ok {
			return value, nil
		}
	}

	return nil, nil
}

// flagValue converts a decoded YAML value into a form kong's mappers accept.
// Kong parses numbers from strings only.
func flagValue(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = toString(flagValue(e))
		}

		return strings.Join(parts, ",")
	default:
		return v
	}
}

func toString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
