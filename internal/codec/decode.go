// Package codec decodes membership query documents.
//
// A document is a single query object, an array of query objects, or an
// object holding a "queries" array. Documents are JSON or YAML and may be
// zstd-compressed.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/meigma/includes/internal/coerce"
)

// ErrInvalidDocument is returned when a document is malformed.
var ErrInvalidDocument = errors.New("includes: invalid query document")

// Query is a single membership question.
type Query struct {
	// ID names the query in results. Decode assigns a random UUID when the
	// document leaves it empty.
	ID string

	// Sequence is the receiver. A query without one holds coerce.Undefined.
	Sequence any

	// Target is the value searched for. A query without one holds
	// coerce.Undefined.
	Target any

	// FromIndex is the start offset, or nil when absent.
	FromIndex any
}

// Query document field names.
const (
	fieldID        = "id"
	fieldSequence  = "sequence"
	fieldTarget    = "target"
	fieldFromIndex = "fromIndex"
	fieldQueries   = "queries"
)

// Decode parses data as a query document in the given format and returns
// the format it was decoded as. FormatAuto detects the format, falling back
// to YAML when the data looks like JSON but does not parse as JSON.
func Decode(data []byte, format Format) ([]Query, Format, error) {
	var (
		doc any
		err error
	)
	switch format {
	case FormatJSON:
		doc, err = decodeJSON(data)
	case FormatYAML:
		doc, err = decodeYAML(data)
	case FormatAuto:
		format = Detect(data)
		if format == FormatJSON {
			doc, err = decodeJSON(data)
			if err != nil {
				if yamlDoc, yamlErr := decodeYAML(data); yamlErr == nil {
					doc, err, format = yamlDoc, nil, FormatYAML
				}
			}
		} else {
			doc, err = decodeYAML(data)
		}
	default:
		return nil, format, fmt.Errorf("%w: unsupported format %s", ErrInvalidDocument, format)
	}
	if err != nil {
		return nil, format, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	doc, err = revive(doc)
	if err != nil {
		return nil, format, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	queries, err := queriesFrom(doc)
	if err != nil {
		return nil, format, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return queries, format, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after document")
	}
	return doc, nil
}

func decodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc any
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("empty document")
	}
	var extra any
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, errors.New("multiple documents in stream")
	case !errors.Is(err, io.EOF):
		return nil, err
	}
	return doc, nil
}

func queriesFrom(doc any) ([]Query, error) {
	switch x := doc.(type) {
	case []any:
		return queryList(x)
	case map[string]any:
		if raw, ok := x[fieldQueries]; ok {
			if len(x) != 1 {
				return nil, fmt.Errorf("%q must be the only top-level field", fieldQueries)
			}
			list, ok := raw.([]any)
			if !ok {
				return nil, fmt.Errorf("%q must be a list, got %T", fieldQueries, raw)
			}
			return queryList(list)
		}
		q, err := queryFrom(x)
		if err != nil {
			return nil, err
		}
		return []Query{q}, nil
	default:
		return nil, fmt.Errorf("document must be an object or a list, got %T", doc)
	}
}

func queryList(list []any) ([]Query, error) {
	queries := make([]Query, 0, len(list))
	for i, raw := range list {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("query %d: must be an object, got %T", i, raw)
		}
		q, err := queryFrom(m)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

func queryFrom(m map[string]any) (Query, error) {
	q := Query{
		Sequence: coerce.Undefined,
		Target:   coerce.Undefined,
	}
	for k, v := range m {
		switch k {
		case fieldID:
			id, ok := v.(string)
			if !ok {
				return Query{}, fmt.Errorf("%q must be a string, got %T", fieldID, v)
			}
			q.ID = id
		case fieldSequence:
			q.Sequence = v
		case fieldTarget:
			q.Target = v
		case fieldFromIndex:
			q.FromIndex = v
		default:
			return Query{}, fmt.Errorf("unknown field %q", k)
		}
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return q, nil
}
