package lang

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// String returns the text a script sees when v is printed.
//
// Strings are written verbatim and nil as the empty string. Lists are
// written as "[a, b]" and maps as "{k: v}" with sorted keys.
func String(v any) string {
	switch val := v.(type) {
	case nil:
		return ""

	case string:
		return val

	case bool:
		return strconv.FormatBool(val)

	case int:
		return strconv.Itoa(val)

	case int64:
		return strconv.FormatInt(val, 10)

	case uint64:
		return strconv.FormatUint(val, 10)

	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)

	case []any:
		return formatSlice(val)

	case []string:
		return "[" + strings.Join(val, ", ") + "]"

	case map[string]any:
		return formatMap(val)

	case error:
		return val.Error()

	case fmt.Stringer:
		return val.String()

	default:
		return fmt.Sprint(val)
	}
}

func formatSlice(vals []any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = String(v)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func formatMap(m map[string]any) string {
	parts := make([]string, 0, len(m))

	for _, k := range slices.Sorted(maps.Keys(m)) {
		parts = append(parts, k+": "+String(m[k]))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
