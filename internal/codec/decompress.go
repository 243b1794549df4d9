package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	// ErrDecompression is returned when a compressed document cannot be decoded.
	ErrDecompression = errors.New("includes: decompression failed")

	// ErrTooLarge is returned when a document exceeds the configured size.
	ErrTooLarge = errors.New("includes: document too large")
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsZstd reports whether data starts with a zstd frame header.
func IsZstd(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// DecompressPool manages reusable zstd decoders to reduce allocation overhead.
type DecompressPool struct {
	pool             *sync.Pool
	maxDecoderMemory uint64
}

// NewDecompressPool creates a new pool for zstd decoders.
// If maxMemory is 0, no memory limit is applied to decoders.
func NewDecompressPool(maxMemory uint64) *DecompressPool {
	p := &DecompressPool{
		maxDecoderMemory: maxMemory,
	}
	p.pool = &sync.Pool{
		New: func() any {
			dec, err := p.newDecoder(nil)
			if err != nil {
				return nil
			}
			return dec
		},
	}
	return p
}

// Get returns a decoder configured to read from r.
// The caller must call the returned release function when done.
// If an error is returned, no release function needs to be called.
func (p *DecompressPool) Get(r io.Reader) (*zstd.Decoder, func(), error) {
	if p == nil || p.pool == nil {
		dec, err := p.newDecoder(r)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	}

	dec, ok := p.pool.Get().(*zstd.Decoder)
	if !ok {
		// Pool's New failed or held something else.
		newDec, err := p.newDecoder(r)
		if err != nil {
			return nil, nil, err
		}
		return newDec, newDec.Close, nil
	}

	if err := dec.Reset(r); err != nil {
		dec.Close()
		newDec, err := p.newDecoder(r)
		if err != nil {
			return nil, nil, err
		}
		return newDec, newDec.Close, nil
	}

	return dec, func() {
		_ = dec.Reset(nil) //nolint:errcheck // clearing state before pool return
		p.pool.Put(dec)
	}, nil
}

func (p *DecompressPool) newDecoder(r io.Reader) (*zstd.Decoder, error) {
	if p == nil || p.maxDecoderMemory == 0 {
		return zstd.NewReader(r)
	}
	return zstd.NewReader(r, zstd.WithDecoderMaxMemory(p.maxDecoderMemory))
}

// Decompress returns data unchanged when it is not zstd-compressed, and the
// decompressed content otherwise. The decompressed content may be at most
// maxBytes long; 0 means no limit.
func (p *DecompressPool) Decompress(data []byte, maxBytes int64) ([]byte, bool, error) {
	if !IsZstd(data) {
		return data, false, nil
	}

	dec, release, err := p.Get(bytes.NewReader(data))
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	defer release()

	var r io.Reader = dec
	if maxBytes > 0 {
		r = io.LimitReader(dec, maxBytes+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	if maxBytes > 0 && int64(len(out)) > maxBytes {
		return nil, true, fmt.Errorf("%w: decompressed size exceeds %d bytes", ErrTooLarge, maxBytes)
	}
	return out, true, nil
}
