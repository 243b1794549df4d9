package includes

import (
	"github.com/meigma/includes/internal/codec"
	"github.com/meigma/includes/internal/coerce"
)

// --- Re-exports from coerce ---

// UndefinedType is the type of Undefined.
type UndefinedType = coerce.UndefinedType

// Undefined is the missing value. It is distinct from nil, which Finder
// treats as the null value. Holes in array-like maps read as Undefined.
var Undefined = coerce.Undefined

// --- Re-exports from codec ---

// Query is a single membership question: is Target in Sequence at or after
// FromIndex?
type Query = codec.Query

// Format identifies the encoding of a query document.
type Format = codec.Format

// Format constants.
const (
	FormatAuto = codec.FormatAuto
	FormatJSON = codec.FormatJSON
	FormatYAML = codec.FormatYAML
)

// ParseFormat parses "auto", "json" or "yaml".
func ParseFormat(name string) (Format, error) {
	return codec.ParseFormat(name)
}
