// Package field implements the directional field: per-cell, length-4
// vectors of numeric values indexed by a neighbor offset drawn from the
// fixed offset table D, per spec.md §3-4.2.
package field

import (
	"fmt"

	"github.com/kay-kewl/fluid/internal/numeric"
	"github.com/kay-kewl/fluid/internal/simerr"
)

// Offset is one of the four neighbor deltas a direction resolves to.
type Offset struct{ DX, DY int }

// Offsets is the fixed offset table D from spec.md §3: north, south,
// west, east in that order (DX moves between rows, DY between columns). Direction indices into every directional field
// are positions in this table.
var Offsets = [4]Offset{
	{DX: -1, DY: 0},
	{DX: 1, DY: 0},
	{DX: 0, DY: -1},
	{DX: 0, DY: 1},
}

// South is the index of the south-facing offset (1, 0), the direction
// gravity acts along.
const South = 1

// IndexOf resolves (dx, dy) to its position in Offsets, failing with
// simerr.ErrInvalidDelta when the pair is not a member.
func IndexOf(dx, dy int) (int, error) {
	for i, o := range Offsets {
		if o.DX == dx && o.DY == dy {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: (%d,%d)", simerr.ErrInvalidDelta, dx, dy)
}

// Reverse returns the offset table index of the direction opposite i.
func Reverse(i int) int {
	o := Offsets[i]
	idx, _ := IndexOf(-o.DX, -o.DY)
	return idx
}

// Dynamic is the heap-allocated directional field: a flat, row-major
// slice of rows*cols length-4 vectors. spec.md §9 calls this the
// "dynamically sized" storage mode and says a reimplementation may keep
// just this one ("a clean reimplementation may pick one"); the
// "static"/fixed-size mode it also describes, and whose phase-C
// semantics it flags as an unresolved defect in the original, is not
// reproduced here (see DESIGN.md).
type Dynamic[T numeric.Number[T]] struct {
	rows, cols int
	data       [][4]T
	proto      T
}

// NewDynamic allocates a zero-filled directional field of the given
// extents. zero is the slot's conversion prototype, used so that every
// cell starts at the slot's own notion of zero rather than a bare Go
// zero value (material for fixed-point slots, whose Go zero value has a
// zero raw value but no bit width or fraction; NewDynamic is the one
// path every slot funnels through regardless of representation). The same value is
// retained and returned by Zero, so callers that only hold a *Dynamic[T]
// can still manufacture well-formed values of T.
func NewDynamic[T numeric.Number[T]](rows, cols int, zero T) *Dynamic[T] {
	d := &Dynamic[T]{rows: rows, cols: cols, proto: zero}
	d.data = make([][4]T, rows*cols)
	d.fill(zero)
	return d
}

// Zero returns the slot's conversion prototype, equivalent to
// FromFloat(0) but without needing an existing T value in hand.
func (d *Dynamic[T]) Zero() T { return d.proto }

func (d *Dynamic[T]) fill(zero T) {
	var vec [4]T
	for i := range vec {
		vec[i] = zero
	}
	for i := range d.data {
		d.data[i] = vec
	}
}

func (d *Dynamic[T]) Rows() int { return d.rows }
func (d *Dynamic[T]) Cols() int { return d.cols }

func (d *Dynamic[T]) inBounds(x, y int) bool {
	return x >= 0 && x < d.rows && y >= 0 && y < d.cols
}

func (d *Dynamic[T]) index(x, y int) int { return x*d.cols + y }

// Add resolves (dx, dy) to a direction, adds delta to the stored value,
// and returns a pointer to it so callers can keep mutating in place the
// way spec.md's "T&" return describes.
func (d *Dynamic[T]) Add(x, y, dx, dy int, delta T) (*T, error) {
	if !d.inBounds(x, y) {
		return nil, fmt.Errorf("%w: (%d,%d)", simerr.ErrOutOfBounds, x, y)
	}
	i, err := IndexOf(dx, dy)
	if err != nil {
		return nil, err
	}
	cell := &d.data[d.index(x, y)]
	cell[i] = cell[i].Add(delta)
	return &cell[i], nil
}

// Get resolves (dx, dy) to a direction and returns a pointer to the
// stored value.
func (d *Dynamic[T]) Get(x, y, dx, dy int) (*T, error) {
	if !d.inBounds(x, y) {
		return nil, fmt.Errorf("%w: (%d,%d)", simerr.ErrOutOfBounds, x, y)
	}
	i, err := IndexOf(dx, dy)
	if err != nil {
		return nil, err
	}
	return &d.data[d.index(x, y)][i], nil
}

// At is like Get but addresses a direction by its offset-table index
// directly, for hot paths that already resolved the index once.
func (d *Dynamic[T]) At(x, y, i int) *T {
	return &d.data[d.index(x, y)][i]
}

// GetArray returns a copy of the four directional values at (x, y).
func (d *Dynamic[T]) GetArray(x, y int) ([4]T, error) {
	if !d.inBounds(x, y) {
		var zero [4]T
		return zero, fmt.Errorf("%w: (%d,%d)", simerr.ErrOutOfBounds, x, y)
	}
	return d.data[d.index(x, y)], nil
}

// SetArray overwrites the four directional values at (x, y).
func (d *Dynamic[T]) SetArray(x, y int, arr [4]T) error {
	if !d.inBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", simerr.ErrOutOfBounds, x, y)
	}
	d.data[d.index(x, y)] = arr
	return nil
}

// Reset zeros every cell's vector back to the given slot zero value. It
// is idempotent: calling it twice in a row leaves the field identical to
// calling it once.
func (d *Dynamic[T]) Reset(zero T) {
	d.fill(zero)
}
