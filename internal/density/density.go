// Package density implements the per-character density table ρ that the
// engine consults when computing pressure exchange between a fluid cell
// and its neighbors, per spec.md §3 ("density is a property of the
// character occupying a cell, not of the cell itself").
package density

import "github.com/kay-kewl/fluid/internal/numeric"

// Default is the density assigned to any character with no explicit
// override, per spec.md §6.
const Default = 0.01

// Table is a 256-entry array keyed by the raw byte value of the
// character occupying a cell, generic over the pressure slot P so that
// densities participate in pressure arithmetic without a cast at every
// use site.
type Table[P numeric.Number[P]] struct {
	values [256]P
	set    [256]bool
	proto  P
}

// NewTable returns a table with every character defaulted to Default,
// expressed in P's own representation via proto.
func NewTable[P numeric.Number[P]](proto P) *Table[P] {
	t := &Table[P]{proto: proto}
	def := proto.FromFloat(Default)
	for i := range t.values {
		t.values[i] = def
	}
	return t
}

// Set overrides the density for the given character.
func (t *Table[P]) Set(ch byte, value P) {
	t.values[ch] = value
	t.set[ch] = true
}

// SetFloat overrides the density for the given character from a real
// number, converting through P's prototype.
func (t *Table[P]) SetFloat(ch byte, value float64) {
	t.Set(ch, t.proto.FromFloat(value))
}

// Get returns the density associated with ch, Default if never
// overridden.
func (t *Table[P]) Get(ch byte) P {
	return t.values[ch]
}

// IsOverridden reports whether ch has been given an explicit density by
// Set or SetFloat, even one equal to Default.
func (t *Table[P]) IsOverridden(ch byte) bool {
	return t.set[ch]
}

// Overrides returns the characters with explicit densities, in
// ascending byte order, for deterministic checkpoint serialization.
func (t *Table[P]) Overrides() []byte {
	var out []byte
	for i := 0; i < 256; i++ {
		if t.set[i] {
			out = append(out, byte(i))
		}
	}
	return out
}
