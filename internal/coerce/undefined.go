// Package coerce implements the loose value conversions and the
// same-value-zero comparison used by dynamic membership lookups.
//
// Values follow a small model: nil is the null value, Undefined is the
// missing value, and every Go numeric kind (plus json.Number) is a number.
package coerce

// UndefinedType is the type of Undefined.
type UndefinedType struct{}

// String returns "undefined".
func (UndefinedType) String() string {
	return "undefined"
}

// Undefined marks a missing value. It is distinct from nil.
var Undefined = UndefinedType{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(UndefinedType)
	return ok
}
