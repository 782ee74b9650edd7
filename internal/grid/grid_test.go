package grid

import (
	"testing"

	"github.com/kay-kewl/fluid/internal/numeric"
)

const tinyDrop = `3 3
0.1
#.#
#.#
###
`

func parseTiny(t *testing.T) *Grid[numeric.Float64, numeric.Float64, numeric.Float64] {
	t.Helper()
	g, err := ParseDescription[numeric.Float64, numeric.Float64, numeric.Float64](
		tinyDrop, numeric.Float64(0), numeric.Float64(0), numeric.Float64(0))
	if err != nil {
		t.Fatalf("ParseDescription: unexpected error: %v", err)
	}
	return g
}

func TestParseDescriptionLayout(t *testing.T) {
	g := parseTiny(t)

	if g.Rows != 3 || g.Cols != 3 {
		t.Fatalf("dims = %dx%d, want 3x3", g.Rows, g.Cols)
	}
	if g.Gravity.Float64() != 0.1 {
		t.Fatalf("Gravity = %v, want 0.1", g.Gravity.Float64())
	}
	if !g.IsWall(0, 0) || g.IsWall(0, 1) {
		t.Fatalf("unexpected wall layout at row 0: %q", g.Cells[0])
	}
	if !g.IsWall(2, 0) || !g.IsWall(2, 1) || !g.IsWall(2, 2) {
		t.Fatalf("row 2 should be all walls: %q", g.Cells[2])
	}
}

func TestDirsCountsOpenNeighbors(t *testing.T) {
	g := parseTiny(t)
	// (0,1) is open; its neighbors are (1,1) open (south) and nothing
	// else in bounds and non-wall ((0,0) and (0,2) are walls, there is
	// no row -1).
	got := g.Dirs[idx(g.Cols, 0, 1)]
	if got != 1 {
		t.Fatalf("Dirs[0][1] = %d, want 1", got)
	}
}

func TestDensityOverrideParsed(t *testing.T) {
	text := "2 2\n0\n..\n..\n. = 1000\n"
	g, err := ParseDescription[numeric.Float64, numeric.Float64, numeric.Float64](
		text, numeric.Float64(0), numeric.Float64(0), numeric.Float64(0))
	if err != nil {
		t.Fatalf("ParseDescription: unexpected error: %v", err)
	}
	if got := g.Density.Get('.').Float64(); got != 1000 {
		t.Fatalf("density('.') = %v, want 1000", got)
	}
}

func TestSwapExchangesCellPressureVelocity(t *testing.T) {
	g := parseTiny(t)
	*g.P(0, 1) = numeric.Float64(5)
	*g.P(1, 1) = numeric.Float64(2)
	g.Velocity.Add(0, 1, 1, 0, numeric.Float64(3))

	g.Swap(0, 1, 1, 1)

	if g.P(1, 1).Float64() != 5 {
		t.Fatalf("P(1,1) after swap = %v, want 5", g.P(1, 1).Float64())
	}
	if g.P(0, 1).Float64() != 2 {
		t.Fatalf("P(0,1) after swap = %v, want 2", g.P(0, 1).Float64())
	}
	v, _ := g.Velocity.Get(1, 1, 1, 0)
	if v.Float64() != 3 {
		t.Fatalf("velocity after swap = %v, want 3", v.Float64())
	}
}

func TestParseDescriptionRejectsMissingRows(t *testing.T) {
	_, err := ParseDescription[numeric.Float64, numeric.Float64, numeric.Float64](
		"3 3\n0\n#.#\n", numeric.Float64(0), numeric.Float64(0), numeric.Float64(0))
	if err == nil {
		t.Fatalf("expected error for truncated grid")
	}
}
