package rng

import "testing"

func TestDeterministicForSameSeed(t *testing.T) {
	a := New(DefaultSeed)
	b := New(DefaultSeed)

	for i := 0; i < 32; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d diverged: %v != %v", i, x, y)
		}
	}
}

func TestFloat64InUnitInterval(t *testing.T) {
	r := New(1)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, want [0, 1)", v)
		}
	}
}
