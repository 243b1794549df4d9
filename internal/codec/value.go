package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/meigma/includes/internal/coerce"
)

// specialKey marks an object that spells a value plain JSON cannot.
const specialKey = "$js"

// specials maps the accepted spellings to their values.
var specials = map[string]func() any{
	"NaN":       func() any { return math.NaN() },
	"Infinity":  func() any { return math.Inf(1) },
	"-Infinity": func() any { return math.Inf(-1) },
	"-0":        func() any { return math.Copysign(0, -1) },
	"undefined": func() any { return coerce.Undefined },
}

// revive converts a freshly decoded document value into the value model:
// json.Number becomes int64 or float64, {"$js": ...} objects become their
// special values, and YAML maps with non-string keys get string keys.
func revive(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("number %q: %w", x.String(), err)
		}
		return f, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			r, err := revive(e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case map[string]any:
		return reviveMap(x)
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = e
		}
		return reviveMap(m)
	default:
		return v, nil
	}
}

func reviveMap(m map[string]any) (any, error) {
	if raw, ok := m[specialKey]; ok && len(m) == 1 {
		name, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s value must be a string, got %T", specialKey, raw)
		}
		mk, ok := specials[name]
		if !ok {
			return nil, fmt.Errorf("unknown %s value %q", specialKey, name)
		}
		return mk(), nil
	}

	out := make(map[string]any, len(m))
	for k, e := range m {
		r, err := revive(e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = r
	}
	return out, nil
}
