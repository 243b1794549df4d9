package includes

import (
	_ "crypto/sha256" // register digest algorithms
	_ "crypto/sha512"
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/includes/internal/codec"
)

// Default limits for Load.
const (
	DefaultMaxDocumentBytes int64  = 64 << 20 // 64 MB
	DefaultMaxDecoderMemory uint64 = 64 << 20 // 64 MB
)

var decoders = codec.NewDecompressPool(DefaultMaxDecoderMemory)

// Document is a loaded query document.
type Document struct {
	// Queries holds the decoded queries in document order.
	Queries []Query

	// Digest is the digest of the raw input, before decompression.
	Digest digest.Digest

	// Format is the format the document was decoded as.
	Format Format

	// Compressed reports whether the input was zstd-compressed.
	Compressed bool
}

// Load reads and decodes a query document from r.
//
// The input may be zstd-compressed. Its digest is computed over the raw
// bytes and, when LoadWithDigest is given, verified before decoding.
func Load(r io.Reader, opts ...LoadOption) (*Document, error) {
	cfg := loadConfig{
		maxBytes: DefaultMaxDocumentBytes,
		format:   FormatAuto,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	raw, err := readLimited(r, cfg.maxBytes)
	if err != nil {
		return nil, err
	}

	algorithm := digest.Canonical
	if cfg.expected != "" {
		if err := cfg.expected.Validate(); err != nil {
			return nil, fmt.Errorf("includes: expected digest: %w", err)
		}
		algorithm = cfg.expected.Algorithm()
	}
	dgst := algorithm.FromBytes(raw)
	if cfg.expected != "" && dgst != cfg.expected {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrDigestMismatch, dgst, cfg.expected)
	}

	data, compressed, err := decoders.Decompress(raw, cfg.maxBytes)
	if err != nil {
		return nil, err
	}

	queries, format, err := codec.Decode(data, cfg.format)
	if err != nil {
		return nil, err
	}

	return &Document{
		Queries:    queries,
		Digest:     dgst,
		Format:     format,
		Compressed: compressed,
	}, nil
}

// Decode decodes an uncompressed query document.
func Decode(data []byte, format Format) ([]Query, error) {
	queries, _, err := codec.Decode(data, format)
	return queries, err
}

// Digest reads r to the end and returns the canonical digest of its bytes.
func Digest(r io.Reader) (digest.Digest, error) {
	return digest.Canonical.FromReader(r)
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	raw, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > maxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrDocumentTooLarge, maxBytes)
	}
	return raw, nil
}
