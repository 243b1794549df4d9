package includes

import "github.com/meigma/includes/internal/arraylike"

// Sequence is an ordered collection with a length and zero-based
// positional access.
type Sequence[E any] interface {
	Len() int
	At(i int) E
}

// AnySequence is a Sequence of untyped elements. Finder accepts it as a
// receiver.
type AnySequence = arraylike.Sequence

// Slice adapts a Go slice to Sequence.
type Slice[E any] []E

// Len returns the number of elements.
func (s Slice[E]) Len() int { return len(s) }

// At returns the element at position i.
func (s Slice[E]) At(i int) E { return s[i] }

// IndexSeq returns the index of the first element of seq at or after the
// start offset from that is equal to v under same-value-zero equality, or
// -1 if there is none. It returns ErrInvalidReceiver when seq is nil or a
// nil pointer. A negative Len is treated as zero.
func IndexSeq[E comparable](seq Sequence[E], v E, from int) (int, error) {
	if arraylike.Absent(seq) {
		return -1, ErrInvalidReceiver
	}
	n := max(seq.Len(), 0)
	for i := Start(n, from); i < n; i++ {
		if SameValueZero(seq.At(i), v) {
			return i, nil
		}
	}
	return -1, nil
}

// ContainsSeq reports whether v is present in seq at or after the start
// offset from. It returns ErrInvalidReceiver when seq is nil or a nil
// pointer.
func ContainsSeq[E comparable](seq Sequence[E], v E, from int) (bool, error) {
	i, err := IndexSeq(seq, v, from)
	return i >= 0, err
}
