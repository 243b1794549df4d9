// Package arraylike gives positional read access to loosely typed receivers:
// slices, arrays, strings, maps with a "length" key, and Sequence values.
package arraylike

import (
	"reflect"
	"strconv"

	"github.com/meigma/includes/internal/coerce"
)

// Sequence is an indexable collection of untyped elements.
type Sequence interface {
	Len() int
	At(i int) any
}

// View reads elements of an array-like receiver.
type View struct {
	// Length is the receiver's raw length value. It is a Go int for
	// slices, arrays, strings and Sequences, whatever the "length" key
	// holds for maps, and coerce.Undefined for receivers with no length.
	Length any

	at func(i int64) any
}

// At returns the element at position i, or coerce.Undefined when the
// receiver has no element there.
func (v View) At(i int64) any {
	if v.at == nil {
		return coerce.Undefined
	}
	return v.at(i)
}

// Absent reports whether v is a missing receiver: nil, coerce.Undefined or
// a nil pointer.
func Absent(v any) bool {
	if v == nil || coerce.IsUndefined(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Of returns the array-like view of v. ok is false when v is absent.
func Of(v any) (View, bool) {
	if Absent(v) {
		return View{}, false
	}

	switch x := v.(type) {
	case []any:
		return sliceView(x), true
	case string:
		return stringView(x), true
	case map[string]any:
		return mapView(x), true
	case Sequence:
		return sequenceView(x), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		switch rv.Elem().Kind() {
		case reflect.Slice, reflect.Array:
			rv = rv.Elem()
		}
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		return View{
			Length: n,
			at: func(i int64) any {
				if i < 0 || i >= int64(n) {
					return coerce.Undefined
				}
				return rv.Index(int(i)).Interface()
			},
		}, true
	case reflect.String:
		return stringView(rv.String()), true
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return reflectMapView(rv), true
		}
	}
	return View{Length: coerce.Undefined}, true
}

func sliceView(s []any) View {
	return View{
		Length: len(s),
		at: func(i int64) any {
			if i < 0 || i >= int64(len(s)) {
				return coerce.Undefined
			}
			return s[i]
		},
	}
}

func stringView(s string) View {
	runes := []rune(s)
	return View{
		Length: len(runes),
		at: func(i int64) any {
			if i < 0 || i >= int64(len(runes)) {
				return coerce.Undefined
			}
			return string(runes[i])
		},
	}
}

func mapView(m map[string]any) View {
	length, ok := m["length"]
	if !ok {
		length = coerce.Undefined
	}
	return View{
		Length: length,
		at: func(i int64) any {
			e, ok := m[strconv.FormatInt(i, 10)]
			if !ok {
				return coerce.Undefined
			}
			return e
		},
	}
}

func reflectMapView(rv reflect.Value) View {
	keyType := rv.Type().Key()
	lookup := func(key string) (any, bool) {
		e := rv.MapIndex(reflect.ValueOf(key).Convert(keyType))
		if !e.IsValid() {
			return nil, false
		}
		return e.Interface(), true
	}

	length, ok := lookup("length")
	if !ok {
		length = coerce.Undefined
	}
	return View{
		Length: length,
		at: func(i int64) any {
			e, ok := lookup(strconv.FormatInt(i, 10))
			if !ok {
				return coerce.Undefined
			}
			return e
		},
	}
}

func sequenceView(s Sequence) View {
	n := max(s.Len(), 0)
	return View{
		Length: n,
		at: func(i int64) any {
			if i < 0 || i >= int64(n) {
				return coerce.Undefined
			}
			return s.At(int(i))
		},
	}
}
