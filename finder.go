package includes

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/meigma/includes/internal/arraylike"
	"github.com/meigma/includes/internal/coerce"
)

// Finder answers membership questions about loosely typed receivers.
//
// A receiver may be a slice or array (or a pointer to one), a string
// (scanned rune by rune), a map with string keys carrying a "length" entry
// and decimal index entries, or an AnySequence. Any other non-nil value has
// no length and contains nothing.
//
// By default the receiver's length and the start index are coerced the way
// a loosely typed runtime would: truncated toward zero, wrapped to 32 bits,
// and 0 when they have no numeric reading. WithStrict turns those coercions
// into errors.
//
// A Finder is immutable and safe for concurrent use.
type Finder struct {
	strict bool
	logger *slog.Logger
}

var defaultFinder = &Finder{logger: slog.New(slog.DiscardHandler)}

// NewFinder creates a Finder with the given options.
func NewFinder(opts ...FinderOption) (*Finder, error) {
	f := &Finder{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	if f.logger == nil {
		f.logger = slog.New(slog.DiscardHandler)
	}
	return f, nil
}

// Includes reports whether target is present in receiver using a lenient
// default Finder. The optional fromIndex is the start offset; extra
// arguments are ignored.
func Includes(receiver, target any, fromIndex ...any) (bool, error) {
	var from any
	if len(fromIndex) > 0 {
		from = fromIndex[0]
	}
	return defaultFinder.Includes(receiver, target, from)
}

// Includes reports whether target is present in receiver at or after the
// start offset fromIndex. A nil or Undefined fromIndex means 0.
//
// It returns ErrInvalidReceiver when receiver is nil, Undefined or a nil
// pointer.
func (f *Finder) Includes(receiver, target, fromIndex any) (bool, error) {
	i, err := f.Index(receiver, target, fromIndex)
	return i >= 0, err
}

// Index is like Includes but returns the position of the first match, or
// -1 if there is none.
func (f *Finder) Index(receiver, target, fromIndex any) (int64, error) {
	view, ok := arraylike.Of(receiver)
	if !ok {
		return -1, ErrInvalidReceiver
	}

	n, err := f.length(view.Length)
	if err != nil {
		return -1, err
	}
	if n == 0 {
		return -1, nil
	}

	k, err := f.start(n, fromIndex)
	if err != nil {
		return -1, err
	}
	for ; k < n; k++ {
		if coerce.SameValueZero(view.At(k), target) {
			return k, nil
		}
	}
	return -1, nil
}

func (f *Finder) length(raw any) (int64, error) {
	if f.strict {
		n, ok := coerce.Integer(raw)
		if !ok || n < 0 || n > math.MaxUint32 {
			return 0, fmt.Errorf("%w: %v", ErrInvalidLength, raw)
		}
		return n, nil
	}

	n := int64(coerce.Uint32(coerce.ToNumber(raw)))
	if !coerce.IsNumber(raw) {
		f.logger.Debug("coerced non-numeric length",
			slog.Any("length", raw),
			slog.Int64("value", n))
	}
	return n, nil
}

func (f *Finder) start(n int64, raw any) (int64, error) {
	if raw == nil || coerce.IsUndefined(raw) {
		return 0, nil
	}

	var from int64
	if f.strict {
		v, ok := coerce.Integer(raw)
		if !ok {
			return 0, fmt.Errorf("%w: %v", ErrInvalidStartIndex, raw)
		}
		from = v
	} else {
		from = int64(coerce.Int32(coerce.ToNumber(raw)))
		if !coerce.IsNumber(raw) {
			f.logger.Debug("coerced non-numeric start index",
				slog.Any("fromIndex", raw),
				slog.Int64("value", from))
		}
	}

	if from >= 0 {
		return min(from, n), nil
	}
	return max(n+from, 0), nil
}
