package coerce

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

type numKind uint8

const (
	kindInt numKind = iota
	kindUint
	kindFloat
)

// num holds a number without losing integer precision.
type num struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

func (n num) float() float64 {
	switch n.kind {
	case kindInt:
		return float64(n.i)
	case kindUint:
		return float64(n.u)
	default:
		return n.f
	}
}

func (n num) equal(o num) bool {
	if n.kind == kindFloat || o.kind == kindFloat {
		a, b := n.float(), o.float()
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	}
	switch {
	case n.kind == kindInt && o.kind == kindInt:
		return n.i == o.i
	case n.kind == kindUint && o.kind == kindUint:
		return n.u == o.u
	case n.kind == kindInt:
		return n.i >= 0 && uint64(n.i) == o.u
	default:
		return o.i >= 0 && uint64(o.i) == n.u
	}
}

func asNum(v any) (num, bool) {
	switch x := v.(type) {
	case int:
		return num{kind: kindInt, i: int64(x)}, true
	case int64:
		return num{kind: kindInt, i: x}, true
	case float64:
		return num{kind: kindFloat, f: x}, true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return num{kind: kindInt, i: i}, true
		}
		f, err := x.Float64()
		if err != nil && !isRange(err) {
			return num{kind: kindFloat, f: math.NaN()}, true
		}
		return num{kind: kindFloat, f: f}, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return num{kind: kindInt, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return num{kind: kindUint, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return num{kind: kindFloat, f: rv.Float()}, true
	default:
		return num{}, false
	}
}

// IsNumber reports whether v is a Go number or a json.Number.
func IsNumber(v any) bool {
	_, ok := asNum(v)
	return ok
}

// Integer returns v as an int64 when v is a finite, integral number.
// Unsigned values above math.MaxInt64 saturate.
func Integer(v any) (int64, bool) {
	n, ok := asNum(v)
	if !ok {
		return 0, false
	}
	switch n.kind {
	case kindInt:
		return n.i, true
	case kindUint:
		if n.u > math.MaxInt64 {
			return math.MaxInt64, true
		}
		return int64(n.u), true
	}
	f := n.f
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64, true
	}
	if f <= math.MinInt64 {
		return math.MinInt64, true
	}
	return int64(f), true
}

// ToNumber converts v to a float64 the way a loosely typed runtime would.
// Values with no numeric reading convert to NaN.
func ToNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case UndefinedType:
		return math.NaN()
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		return StringToNumber(x)
	}
	if n, ok := asNum(v); ok {
		return n.float()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	case reflect.String:
		return StringToNumber(rv.String())
	case reflect.Pointer:
		if rv.IsNil() {
			return 0
		}
		return ToNumber(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		// A list converts through its joined string form: empty is "",
		// one element is that element's text, more contain a comma.
		switch rv.Len() {
		case 0:
			return 0
		case 1:
			return elementNumber(rv.Index(0).Interface())
		}
	}
	return math.NaN()
}

func elementNumber(v any) float64 {
	if v == nil || IsUndefined(v) {
		return 0
	}
	if IsNumber(v) {
		return ToNumber(v)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return StringToNumber(rv.String())
	case reflect.Slice, reflect.Array:
		return ToNumber(v)
	default:
		return math.NaN()
	}
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// StringToNumber parses s as a numeric literal. Surrounding whitespace is
// ignored and the empty string is 0. Decimal literals, Infinity and unsigned
// 0x, 0o and 0b integer literals are accepted; anything else is NaN.
func StringToNumber(s string) float64 {
	s = strings.TrimFunc(s, isSpace)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		if base := prefixBase(s[1]); base != 0 {
			return radixNumber(s[2:], base)
		}
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRange(err) {
		return math.NaN()
	}
	return f
}

func prefixBase(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	default:
		return 0
	}
}

func radixNumber(digits string, base int) float64 {
	if digits == "" || digits[0] == '+' || digits[0] == '-' || strings.Contains(digits, "_") {
		return math.NaN()
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func isRange(err error) bool {
	return errors.Is(err, strconv.ErrRange)
}

// Int32 truncates f toward zero and wraps it into the int32 range.
// NaN and infinities become 0.
func Int32(f float64) int32 {
	return int32(Uint32(f)) //nolint:gosec // wrapping is the point
}

// Uint32 truncates f toward zero and wraps it modulo 2^32.
// NaN and infinities become 0.
func Uint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(f), 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return uint32(m)
}
