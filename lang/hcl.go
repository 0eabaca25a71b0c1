package lang

import (
	"log/slog"
	"math/big"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// decodeHCL decodes the top-level attributes of an HCL file into a map.
// Attribute expressions are evaluated without variables or functions, so
// only literals, object and tuple constructors, templates and operators on
// literals are accepted. Blocks are rejected.
func decodeHCL(src []byte, filename string) (map[string]any, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, ErrDecode.Wrap(diags).With(slog.String("file", filename))
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, ErrDecode.Wrap(diags).With(slog.String("file", filename))
	}

	out := make(map[string]any, len(attrs))

	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, ErrDecode.Wrap(diags).With(
				slog.String("file", filename),
				slog.String("attribute", name),
			)
		}

		native, err := ctyToNative(v)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(
				slog.String("file", filename),
				slog.String("attribute", name),
			)
		}

		out[name] = native
	}

	return out, nil
}

// ctyToNative converts v to the values YAML decoding produces: string,
// int or float64, bool, []any and map[string]any. Null and unknown values
// become nil.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}

		f, _ := bf.Float64()

		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())

		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()

			n, err := ctyToNative(ev)
			if err != nil {
				return nil, err
			}

			out = append(out, n)
		}

		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())

		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()

			n, err := ctyToNative(ev)
			if err != nil {
				return nil, err
			}

			out[k.AsString()] = n
		}

		return out, nil

	default:
		return nil, ErrDecode.With(slog.String("type", ty.FriendlyName()))
	}
}
