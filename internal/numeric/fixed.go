package numeric

import "strconv"

// Fixed is a Q-format fixed-point scalar: a raw integer v interpreted as
// the real value v*2^-frac. bits and frac travel with every value of a
// slot (set once, at the slot's construction from a CLI selector such as
// "FIXED(32,16)") so that FromFloat on any existing value of the slot
// reproduces the right width without needing a separate type per (N,K).
//
// Div and conversions from a real truncate toward zero; Mul shifts the
// raw product right by frac, which rounds negative products toward
// negative infinity. Overflow of the backing int64 is not detected, matching spec.md §4.1 ("overflow is undefined... but must be
// consistent across all fixed-point operations of the same (N,K)").
type Fixed struct {
	raw  int64
	bits uint8
	frac uint8
}

// NewFixed returns the zero value of a Fixed slot with the given width
// and fraction, used as the slot's conversion prototype.
func NewFixed(bits, frac uint8) Fixed {
	return Fixed{bits: bits, frac: frac}
}

func (f Fixed) scale() int64 { return int64(1) << f.frac }

func (f Fixed) Add(o Fixed) Fixed { return Fixed{raw: f.raw + o.raw, bits: f.bits, frac: f.frac} }
func (f Fixed) Sub(o Fixed) Fixed { return Fixed{raw: f.raw - o.raw, bits: f.bits, frac: f.frac} }

func (f Fixed) Mul(o Fixed) Fixed {
	return Fixed{raw: (f.raw * o.raw) >> f.frac, bits: f.bits, frac: f.frac}
}

func (f Fixed) Div(o Fixed) Fixed {
	return Fixed{raw: (f.raw << f.frac) / o.raw, bits: f.bits, frac: f.frac}
}

func (f Fixed) Neg() Fixed { return Fixed{raw: -f.raw, bits: f.bits, frac: f.frac} }

func (f Fixed) Abs() Fixed {
	if f.raw < 0 {
		return f.Neg()
	}
	return f
}

func (f Fixed) Cmp(o Fixed) int {
	switch {
	case f.raw < o.raw:
		return -1
	case f.raw > o.raw:
		return 1
	default:
		return 0
	}
}

func (f Fixed) MulReal(r float64) Fixed {
	return Fixed{raw: int64(float64(f.raw) * r), bits: f.bits, frac: f.frac}
}

func (f Fixed) DivReal(r float64) Fixed {
	return Fixed{raw: int64(float64(f.raw) / r), bits: f.bits, frac: f.frac}
}

func (f Fixed) FromFloat(r float64) Fixed {
	return Fixed{raw: int64(r * float64(f.scale())), bits: f.bits, frac: f.frac}
}

func (f Fixed) Float64() float64 { return float64(f.raw) / float64(f.scale()) }

func (f Fixed) String() string { return strconv.FormatFloat(f.Float64(), 'g', -1, 64) }

// FastFixed is the same Q-format representation as Fixed but hints a
// narrower backing integer when the configured width fits in 32 bits,
// per spec.md §4.1 ("a 'standard' and a 'fast' variant distinguished
// only by backing integer width hints"). The narrower backing width
// changes the consistent-but-undefined overflow behavior relative to
// Fixed: each operation's result wraps at 32 bits instead of 64 (the raw
// product in Mul and the shifted dividend in Div are still formed in 64
// bits before the result is narrowed).
type FastFixed struct {
	raw  int64
	bits uint8
	frac uint8
}

// NewFastFixed returns the zero value of a FastFixed slot with the given
// width and fraction.
func NewFastFixed(bits, frac uint8) FastFixed {
	return FastFixed{bits: bits, frac: frac}
}

func (f FastFixed) scale() int64 { return int64(1) << f.frac }

func (f FastFixed) narrow(raw int64) int64 {
	if f.bits > 0 && f.bits <= 32 {
		return int64(int32(raw))
	}
	return raw
}

func (f FastFixed) Add(o FastFixed) FastFixed {
	return FastFixed{raw: f.narrow(f.raw + o.raw), bits: f.bits, frac: f.frac}
}

func (f FastFixed) Sub(o FastFixed) FastFixed {
	return FastFixed{raw: f.narrow(f.raw - o.raw), bits: f.bits, frac: f.frac}
}

func (f FastFixed) Mul(o FastFixed) FastFixed {
	return FastFixed{raw: f.narrow((f.raw * o.raw) >> f.frac), bits: f.bits, frac: f.frac}
}

func (f FastFixed) Div(o FastFixed) FastFixed {
	return FastFixed{raw: f.narrow((f.raw << f.frac) / o.raw), bits: f.bits, frac: f.frac}
}

func (f FastFixed) Neg() FastFixed { return FastFixed{raw: f.narrow(-f.raw), bits: f.bits, frac: f.frac} }

func (f FastFixed) Abs() FastFixed {
	if f.raw < 0 {
		return f.Neg()
	}
	return f
}

func (f FastFixed) Cmp(o FastFixed) int {
	switch {
	case f.raw < o.raw:
		return -1
	case f.raw > o.raw:
		return 1
	default:
		return 0
	}
}

func (f FastFixed) MulReal(r float64) FastFixed {
	return FastFixed{raw: f.narrow(int64(float64(f.raw) * r)), bits: f.bits, frac: f.frac}
}

func (f FastFixed) DivReal(r float64) FastFixed {
	return FastFixed{raw: f.narrow(int64(float64(f.raw) / r)), bits: f.bits, frac: f.frac}
}

func (f FastFixed) FromFloat(r float64) FastFixed {
	return FastFixed{raw: f.narrow(int64(r * float64(f.scale()))), bits: f.bits, frac: f.frac}
}

func (f FastFixed) Float64() float64 { return float64(f.raw) / float64(f.scale()) }

func (f FastFixed) String() string { return strconv.FormatFloat(f.Float64(), 'g', -1, 64) }
