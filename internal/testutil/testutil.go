// Package testutil generates sequences and query documents for tests and
// the profiler.
package testutil

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand" //nolint:gosec // reproducible data, not security
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Target selects where the searched value sits in a generated sequence.
type Target string

const (
	TargetFirst Target = "first"
	TargetLast  Target = "last"
	TargetMiss  Target = "miss"
	TargetNaN   Target = "nan"
)

// Floats returns n values in [0, 1) from a generator seeded with seed,
// followed by the value the target asks for. The returned needle is that
// value, or a value absent from the sequence for TargetMiss.
func Floats(n int, seed int64, target Target) (seq []float64, needle float64) {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible data
	seq = make([]float64, n, n+1)
	for i := range seq {
		seq[i] = rng.Float64()
	}

	switch target {
	case TargetFirst:
		if n == 0 {
			return append(seq, 0.5), 0.5
		}
		return seq, seq[0]
	case TargetNaN:
		return append(seq, math.NaN()), math.NaN()
	case TargetMiss:
		return seq, 2
	default:
		return append(seq, 2), 2
	}
}

// Anys copies s into a []any.
func Anys[E any](s []E) []any {
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = e
	}
	return out
}

// Document returns a JSON query document with count queries, each asking
// whether the last element of a generated sequence of length n is present.
func Document(count, n int, seed int64) ([]byte, error) {
	queries := make([]map[string]any, count)
	for i := range queries {
		seq, needle := Floats(n, seed+int64(i), TargetLast)
		queries[i] = map[string]any{
			"id":       fmt.Sprintf("q%05d", i),
			"sequence": seq,
			"target":   needle,
		}
	}
	return json.Marshal(map[string]any{"queries": queries})
}

// Compress returns data as a zstd frame.
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

// WriteFile writes data to name under dir and returns the full path.
func WriteFile(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
