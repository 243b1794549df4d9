package coerce

import "reflect"

// SameValueZero reports whether x and y are equal under same-value-zero
// equality. Numbers compare by value across Go numeric kinds and NaN equals
// NaN. Strings and bools compare by value. Slices, maps and funcs compare by
// identity. Other values are equal when their dynamic types match and == holds.
func SameValueZero(x, y any) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}

	nx, okx := asNum(x)
	ny, oky := asNum(y)
	if okx || oky {
		return okx && oky && nx.equal(ny)
	}

	ux, uy := IsUndefined(x), IsUndefined(y)
	if ux || uy {
		return ux && uy
	}

	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	switch vx.Kind() {
	case reflect.String:
		return vy.Kind() == reflect.String && vx.String() == vy.String()
	case reflect.Bool:
		return vy.Kind() == reflect.Bool && vx.Bool() == vy.Bool()
	case reflect.Slice:
		if vx.Type() != vy.Type() {
			return false
		}
		if vx.IsNil() || vy.IsNil() {
			return vx.IsNil() && vy.IsNil()
		}
		// Zero-sized backing arrays share one address, so they carry no identity.
		if vx.Cap() == 0 || vx.Type().Elem().Size() == 0 {
			return false
		}
		return vx.Pointer() == vy.Pointer() && vx.Len() == vy.Len()
	case reflect.Map, reflect.Func:
		return vx.Type() == vy.Type() && vx.Pointer() == vy.Pointer()
	}

	if vx.Type() != vy.Type() || !vx.Comparable() {
		return false
	}
	return vx.Equal(vy)
}
