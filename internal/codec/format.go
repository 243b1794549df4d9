package codec

import (
	"bytes"
	"fmt"
)

// Format identifies the encoding of a query document.
type Format uint8

const (
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

// String returns the human-readable name of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name as accepted by String.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format %q", name)
	}
}

// Detect guesses the format of data: JSON when the first non-space byte
// opens an object or array, YAML otherwise.
func Detect(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}
