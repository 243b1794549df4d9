package includes

import "github.com/opencontainers/go-digest"

type loadConfig struct {
	maxBytes int64
	format   Format
	expected digest.Digest
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

// LoadWithFormat decodes the document as format instead of detecting it.
func LoadWithFormat(format Format) LoadOption {
	return func(c *loadConfig) {
		c.format = format
	}
}

// LoadWithDigest verifies the raw input against d before decoding.
// A mismatch fails with ErrDigestMismatch.
func LoadWithDigest(d digest.Digest) LoadOption {
	return func(c *loadConfig) {
		c.expected = d
	}
}

// LoadWithMaxBytes limits the raw and the decompressed document size.
// Zero or negative disables the limit. Default: DefaultMaxDocumentBytes.
func LoadWithMaxBytes(n int64) LoadOption {
	return func(c *loadConfig) {
		c.maxBytes = n
	}
}
