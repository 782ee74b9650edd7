package numeric

import "strconv"

// Float32 is the narrower of the two native floating-point slots.
type Float32 float32

func (f Float32) Add(o Float32) Float32 { return f + o }
func (f Float32) Sub(o Float32) Float32 { return f - o }
func (f Float32) Mul(o Float32) Float32 { return f * o }
func (f Float32) Div(o Float32) Float32 { return f / o }
func (f Float32) Neg() Float32          { return -f }

func (f Float32) Abs() Float32 {
	if f < 0 {
		return -f
	}
	return f
}

func (f Float32) Cmp(o Float32) int {
	switch {
	case f < o:
		return -1
	case f > o:
		return 1
	default:
		return 0
	}
}

func (f Float32) MulReal(r float64) Float32   { return Float32(float64(f) * r) }
func (f Float32) DivReal(r float64) Float32   { return Float32(float64(f) / r) }
func (f Float32) FromFloat(r float64) Float32 { return Float32(r) }
func (f Float32) Float64() float64            { return float64(f) }
func (f Float32) String() string              { return strconv.FormatFloat(float64(f), 'g', -1, 32) }

// Float64 is the wider native floating-point slot.
type Float64 float64

func (f Float64) Add(o Float64) Float64 { return f + o }
func (f Float64) Sub(o Float64) Float64 { return f - o }
func (f Float64) Mul(o Float64) Float64 { return f * o }
func (f Float64) Div(o Float64) Float64 { return f / o }
func (f Float64) Neg() Float64          { return -f }

func (f Float64) Abs() Float64 {
	if f < 0 {
		return -f
	}
	return f
}

func (f Float64) Cmp(o Float64) int {
	switch {
	case f < o:
		return -1
	case f > o:
		return 1
	default:
		return 0
	}
}

func (f Float64) MulReal(r float64) Float64   { return Float64(float64(f) * r) }
func (f Float64) DivReal(r float64) Float64   { return Float64(float64(f) / r) }
func (f Float64) FromFloat(r float64) Float64 { return Float64(r) }
func (f Float64) Float64() float64            { return float64(f) }
func (f Float64) String() string              { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
