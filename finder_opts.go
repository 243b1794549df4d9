package includes

import "log/slog"

// FinderOption configures a Finder.
type FinderOption func(*Finder) error

// WithStrict makes the Finder reject lengths and start indexes that are not
// integral numbers instead of coercing them. A strict Finder also does not
// wrap values to 32 bits.
func WithStrict(strict bool) FinderOption {
	return func(f *Finder) error {
		f.strict = strict
		return nil
	}
}

// WithLogger sets the logger for debug output about coerced arguments.
// By default, logging is disabled.
func WithLogger(logger *slog.Logger) FinderOption {
	return func(f *Finder) error {
		f.logger = logger
		return nil
	}
}
