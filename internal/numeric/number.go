// Package numeric implements the parametric scalar layer the simulation
// is configured over: two floating-point widths and two Q-format
// fixed-point parametrizations, all closed under the same arithmetic
// contract so the engine can be written once and run under any of them.
package numeric

// Number is the shared contract every scalar kind satisfies: value
// semantics, total ordering, and conversion to and from a real number.
// T is the concrete implementing type itself (a self-bounded, or
// "curiously recurring", generic constraint) so that arithmetic methods
// return the same concrete type they were called on instead of a boxed
// interface value.
//
// FromFloat acts as the explicit numeric cast spec.md §4.1 requires at
// slot boundaries: it is called on an existing value of the target slot
// (so that a Fixed value's bit width/fraction carry over) to produce a
// new value of that slot's type from a real number, typically the
// result of another slot's Float64().
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	Abs() T
	// Cmp returns a negative number, zero, or a positive number as the
	// receiver is less than, equal to, or greater than other.
	Cmp(other T) int
	MulReal(float64) T
	DivReal(float64) T
	FromFloat(float64) T
	Float64() float64
	String() string
}

// IsZero reports whether v compares equal to the zero value of its own
// slot, using the slot's own FromFloat(0) rather than a Go zero value so
// that fixed-point widths are respected.
func IsZero[T Number[T]](v T) bool {
	return v.Cmp(v.FromFloat(0)) == 0
}

// Positive reports whether v is strictly greater than zero.
func Positive[T Number[T]](v T) bool {
	return v.Cmp(v.FromFloat(0)) > 0
}

// Min returns whichever of a, b compares lower.
func Min[T Number[T]](a, b T) T {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Convert casts a value from one slot to another by routing through the
// real-number domain, per spec.md §4.1: "Mixed operations with reals
// convert through double." proto supplies the destination slot's type
// (and, for fixed-point slots, its bit width/fraction).
func Convert[From Number[From], To Number[To]](v From, proto To) To {
	return proto.FromFloat(v.Float64())
}
