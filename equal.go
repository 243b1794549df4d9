package includes

import (
	"math"
	"reflect"
)

// SameValueZero reports whether a and b are equal under same-value-zero
// equality: a == b, or a and b are both NaN of the same floating-point type.
// Positive and negative zero are equal.
//
// The NaN exception applies only to float values themselves. Structs and
// arrays holding NaN fields compare with ==, so they are never equal. For
// interface element types the dynamic types must match, as with ==: a
// float64 NaN does not match a float32 NaN.
//
// As with ==, comparing interface values whose dynamic type is not
// comparable panics. Use Finder for loosely typed values.
func SameValueZero[E comparable](a, b E) bool {
	if a == b {
		return true
	}
	// Only values containing NaN are unequal to themselves.
	if a == a || b == b { //nolint:gocritic // NaN check
		return false
	}
	return isNaN(a) && isNaN(b) && reflect.TypeOf(a) == reflect.TypeOf(b)
}

func isNaN(v any) bool {
	switch x := v.(type) {
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())
	default:
		return false
	}
}
