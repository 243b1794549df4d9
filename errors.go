package includes

import (
	"errors"

	"github.com/meigma/includes/internal/codec"
)

var (
	// ErrInvalidReceiver is returned when the sequence is absent: nil,
	// Undefined or a nil pointer.
	ErrInvalidReceiver = errors.New("includes: receiver is null or not defined")

	// ErrInvalidLength is returned in strict mode when a receiver's length
	// is not a non-negative integral number.
	ErrInvalidLength = errors.New("includes: invalid length")

	// ErrInvalidStartIndex is returned in strict mode when the start index
	// is present but not an integral number.
	ErrInvalidStartIndex = errors.New("includes: invalid start index")

	// ErrDigestMismatch is returned when a document does not match its
	// expected digest.
	ErrDigestMismatch = errors.New("includes: digest mismatch")
)

// Errors re-exported from codec.
var (
	// ErrInvalidDocument is returned when a query document is malformed.
	ErrInvalidDocument = codec.ErrInvalidDocument

	// ErrDocumentTooLarge is returned when a document exceeds the size limit.
	ErrDocumentTooLarge = codec.ErrTooLarge

	// ErrDecompression is returned when a compressed document cannot be decoded.
	ErrDecompression = codec.ErrDecompression
)
