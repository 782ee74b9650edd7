// Package simerr defines the fatal error kinds the core surfaces, per
// spec.md §7. All of them except MaxDepthExceeded are fatal; run returns
// the first one encountered. MaxDepthExceeded is reported out-of-band
// (see engine.TickResult) rather than as an error, since spec.md is
// explicit that it must not abort run.
package simerr

import "errors"

var (
	// ErrInvalidType reports an unrecognized numeric-type selector.
	ErrInvalidType = errors.New("simerr: invalid numeric type selector")
	// ErrInvalidGrid reports a non-rectangular grid, a missing header, or
	// bad counts in a grid description.
	ErrInvalidGrid = errors.New("simerr: invalid grid description")
	// ErrInvalidDelta reports a caller-supplied offset outside the
	// fixed four-element offset table.
	ErrInvalidDelta = errors.New("simerr: invalid delta")
	// ErrOutOfBounds reports a cell coordinate outside the grid extents.
	ErrOutOfBounds = errors.New("simerr: coordinate out of bounds")
	// ErrIO reports a checkpoint read or write failure.
	ErrIO = errors.New("simerr: checkpoint io error")
)
