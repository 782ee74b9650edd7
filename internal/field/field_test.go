package field

import (
	"errors"
	"testing"

	"github.com/kay-kewl/fluid/internal/numeric"
	"github.com/kay-kewl/fluid/internal/simerr"
)

func TestIndexOfOffsetGuard(t *testing.T) {
	if _, err := IndexOf(2, 0); !errors.Is(err, simerr.ErrInvalidDelta) {
		t.Fatalf("IndexOf(2,0) = %v, want ErrInvalidDelta", err)
	}
	for i, o := range Offsets {
		got, err := IndexOf(o.DX, o.DY)
		if err != nil {
			t.Fatalf("IndexOf(%d,%d): unexpected error: %v", o.DX, o.DY, err)
		}
		if got != i {
			t.Fatalf("IndexOf(%d,%d) = %d, want %d", o.DX, o.DY, got, i)
		}
	}
}

func TestReverseIsInvolution(t *testing.T) {
	for i := range Offsets {
		if Reverse(Reverse(i)) != i {
			t.Fatalf("Reverse(Reverse(%d)) != %d", i, i)
		}
	}
}

func TestDynamicAddAndGet(t *testing.T) {
	d := NewDynamic[numeric.Float64](3, 3, numeric.Float64(0))

	if _, err := d.Add(1, 1, -1, 0, numeric.Float64(2.5)); err != nil {
		t.Fatalf("Add: unexpected error: %v", err)
	}
	v, err := d.Get(1, 1, -1, 0)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if v.Float64() != 2.5 {
		t.Fatalf("Get = %v, want 2.5", v.Float64())
	}

	if _, err := d.Add(1, 1, 2, 0, numeric.Float64(1)); !errors.Is(err, simerr.ErrInvalidDelta) {
		t.Fatalf("Add(2,0) = %v, want ErrInvalidDelta", err)
	}
	if _, err := d.Get(5, 5, -1, 0); !errors.Is(err, simerr.ErrOutOfBounds) {
		t.Fatalf("Get(5,5) = %v, want ErrOutOfBounds", err)
	}
}

func TestDynamicArrayRoundTrip(t *testing.T) {
	d := NewDynamic[numeric.Float64](2, 2, numeric.Float64(0))

	want := [4]numeric.Float64{1, 2, 3, 4}
	if err := d.SetArray(0, 1, want); err != nil {
		t.Fatalf("SetArray: unexpected error: %v", err)
	}
	got, err := d.GetArray(0, 1)
	if err != nil {
		t.Fatalf("GetArray: unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("GetArray = %v, want %v", got, want)
	}
}

func TestDynamicResetIsIdempotent(t *testing.T) {
	d := NewDynamic[numeric.Float64](2, 2, numeric.Float64(0))
	d.SetArray(0, 0, [4]numeric.Float64{1, 1, 1, 1})

	d.Reset(numeric.Float64(0))
	first, _ := d.GetArray(0, 0)

	d.Reset(numeric.Float64(0))
	second, _ := d.GetArray(0, 0)

	if first != second {
		t.Fatalf("Reset is not idempotent: %v != %v", first, second)
	}
	if first != [4]numeric.Float64{0, 0, 0, 0} {
		t.Fatalf("Reset did not clear field: %v", first)
	}
}
