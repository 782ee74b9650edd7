package checkpoint

import (
	"bytes"
	"testing"

	"github.com/kay-kewl/fluid/internal/grid"
	"github.com/kay-kewl/fluid/internal/numeric"
)

const tinyDrop = `3 2
0.25
.#
..
.#
. = 0.02
`

func TestSaveLoadRoundTrip(t *testing.T) {
	g, err := grid.ParseDescription[numeric.Float64, numeric.Float64, numeric.Float64](
		tinyDrop, numeric.Float64(0), numeric.Float64(0), numeric.Float64(0))
	if err != nil {
		t.Fatalf("ParseDescription: unexpected error: %v", err)
	}
	*g.P(1, 0) = numeric.Float64(3.5)
	*g.POld(1, 0) = numeric.Float64(1.5)
	g.Velocity.Add(1, 0, -1, 0, numeric.Float64(0.75))
	g.UT = 42

	var buf bytes.Buffer
	if err := Save(&buf, g); err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}

	loaded, err := Load[numeric.Float64, numeric.Float64, numeric.Float64](
		&buf, numeric.Float64(0), numeric.Float64(0), numeric.Float64(0))
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	if loaded.Rows != g.Rows || loaded.Cols != g.Cols {
		t.Fatalf("dims = %dx%d, want %dx%d", loaded.Rows, loaded.Cols, g.Rows, g.Cols)
	}
	if loaded.Gravity.Float64() != g.Gravity.Float64() {
		t.Fatalf("Gravity = %v, want %v", loaded.Gravity.Float64(), g.Gravity.Float64())
	}
	if loaded.UT != 42 {
		t.Fatalf("UT = %d, want 42", loaded.UT)
	}
	for x := 0; x < g.Rows; x++ {
		if string(loaded.Cells[x]) != string(g.Cells[x]) {
			t.Fatalf("row %d = %q, want %q", x, loaded.Cells[x], g.Cells[x])
		}
	}
	if loaded.P(1, 0).Float64() != 3.5 {
		t.Fatalf("P(1,0) = %v, want 3.5", loaded.P(1, 0).Float64())
	}
	if loaded.POld(1, 0).Float64() != 1.5 {
		t.Fatalf("POld(1,0) = %v, want 1.5", loaded.POld(1, 0).Float64())
	}
	v, err := loaded.Velocity.Get(1, 0, -1, 0)
	if err != nil {
		t.Fatalf("Velocity.Get: unexpected error: %v", err)
	}
	if v.Float64() != 0.75 {
		t.Fatalf("velocity(1,0,-1,0) = %v, want 0.75", v.Float64())
	}
	if got := loaded.Density.Get('.').Float64(); got != 0.02 {
		t.Fatalf("density('.') = %v, want 0.02", got)
	}
}

func TestLoadRejectsTruncatedStream(t *testing.T) {
	_, err := Load[numeric.Float64, numeric.Float64, numeric.Float64](
		bytes.NewBufferString("3 2\n0.1\n"), numeric.Float64(0), numeric.Float64(0), numeric.Float64(0))
	if err == nil {
		t.Fatalf("expected error for truncated checkpoint")
	}
}
