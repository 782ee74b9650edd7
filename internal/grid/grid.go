// Package grid holds the simulation's per-cell state: the character
// layout, the pressure fields, the velocity and velocity-flow
// directional fields, the last-use sweep markers, and the density
// table, plus the text grid-description format spec.md §6 defines.
package grid

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/kay-kewl/fluid/internal/density"
	"github.com/kay-kewl/fluid/internal/field"
	"github.com/kay-kewl/fluid/internal/numeric"
	"github.com/kay-kewl/fluid/internal/simerr"
)

// Wall is the character marking an impassable cell.
const Wall = '#'

// Grid is the engine's generic spatial state, parametrized over the
// three independently configurable numeric slots: pressure (P),
// velocity (V), and velocity-flow (VF). spec.md's design notes are
// explicit that these three slots must stay independent rather than
// collapse to one type, since a cell's pressure, its bulk velocity, and
// its per-tick flow accounting are conceptually distinct quantities
// that merely happen to share an interface.
type Grid[P numeric.Number[P], V numeric.Number[V], VF numeric.Number[VF]] struct {
	Rows, Cols int

	Cells       [][]byte
	Pressure    []P
	PressureOld []P

	Velocity     *field.Dynamic[V]
	VelocityFlow *field.Dynamic[VF]

	LastUse []int
	UT      int

	// Dirs[i] is the number of open (non-wall) neighbors of cell i,
	// precomputed once per run since the layout of walls never changes
	// mid-run.
	Dirs []int

	Gravity P
	Density *density.Table[P]

	pProto  P
	vProto  V
	vfProto VF
}

func idx(cols, x, y int) int { return x*cols + y }

// Idx returns the linear LastUse/Dirs index for (x, y).
func (g *Grid[P, V, VF]) Idx(x, y int) int { return idx(g.Cols, x, y) }

// At returns the character occupying (x, y).
func (g *Grid[P, V, VF]) At(x, y int) byte { return g.Cells[x][y] }

// IsWall reports whether (x, y) holds the wall character.
func (g *Grid[P, V, VF]) IsWall(x, y int) bool { return g.Cells[x][y] == Wall }

// InBounds reports whether (x, y) lies within the grid extents.
func (g *Grid[P, V, VF]) InBounds(x, y int) bool {
	return x >= 0 && x < g.Rows && y >= 0 && y < g.Cols
}

// P returns a pointer to the pressure at (x, y).
func (g *Grid[P, V, VF]) P(x, y int) *P { return &g.Pressure[idx(g.Cols, x, y)] }

// POld returns a pointer to the previous tick's pressure at (x, y).
func (g *Grid[P, V, VF]) POld(x, y int) *P { return &g.PressureOld[idx(g.Cols, x, y)] }

// SnapshotPressure copies Pressure into PressureOld, the per-tick
// old_p = p assignment spec.md's pressure phase depends on.
func (g *Grid[P, V, VF]) SnapshotPressure() {
	copy(g.PressureOld, g.Pressure)
}

// ResetVelocityFlow reallocates VelocityFlow to all zero, the
// velocity_flow = {} reset spec.md's flow phase performs every tick.
func (g *Grid[P, V, VF]) ResetVelocityFlow() {
	g.VelocityFlow = field.NewDynamic[VF](g.Rows, g.Cols, g.vfProto)
}

// RecomputeDirs recomputes Dirs from the current Cells layout. Callers
// that populate Cells after New (e.g. the checkpoint loader) must call
// this once the layout is in its final state.
func (g *Grid[P, V, VF]) RecomputeDirs() {
	g.computeDirs()
}

// computeDirs fills Dirs with the open-neighbor count of every non-wall
// cell, per spec.md §4.3.
func (g *Grid[P, V, VF]) computeDirs() {
	g.Dirs = make([]int, g.Rows*g.Cols)
	for x := 0; x < g.Rows; x++ {
		for y := 0; y < g.Cols; y++ {
			if g.IsWall(x, y) {
				continue
			}
			count := 0
			for _, o := range field.Offsets {
				nx, ny := x+o.DX, y+o.DY
				if g.InBounds(nx, ny) && !g.IsWall(nx, ny) {
					count++
				}
			}
			g.Dirs[idx(g.Cols, x, y)] = count
		}
	}
}

// Swap exchanges the character, pressure, and velocity vector between
// two cells, the three-way rotation primitive propagate_move performs
// on a confirmed particle move (spec.md §4.4 phase D).
func (g *Grid[P, V, VF]) Swap(ax, ay, bx, by int) {
	ai, bi := idx(g.Cols, ax, ay), idx(g.Cols, bx, by)
	g.Cells[ax][ay], g.Cells[bx][by] = g.Cells[bx][by], g.Cells[ax][ay]
	g.Pressure[ai], g.Pressure[bi] = g.Pressure[bi], g.Pressure[ai]

	av, _ := g.Velocity.GetArray(ax, ay)
	bv, _ := g.Velocity.GetArray(bx, by)
	g.Velocity.SetArray(ax, ay, bv)
	g.Velocity.SetArray(bx, by, av)
}

// New allocates an empty grid of the given extents, every pressure,
// velocity, and flow value at the slot's own zero.
func New[P numeric.Number[P], V numeric.Number[V], VF numeric.Number[VF]](rows, cols int, pProto P, vProto V, vfProto VF) *Grid[P, V, VF] {
	g := &Grid[P, V, VF]{
		Rows: rows, Cols: cols,
		pProto: pProto, vProto: vProto, vfProto: vfProto,
	}
	g.Cells = make([][]byte, rows)
	for i := range g.Cells {
		g.Cells[i] = make([]byte, cols)
		for j := range g.Cells[i] {
			g.Cells[i][j] = ' '
		}
	}
	zero := pProto.FromFloat(0)
	g.Pressure = make([]P, rows*cols)
	g.PressureOld = make([]P, rows*cols)
	for i := range g.Pressure {
		g.Pressure[i] = zero
		g.PressureOld[i] = zero
	}
	g.Velocity = field.NewDynamic[V](rows, cols, vProto.FromFloat(0))
	g.VelocityFlow = field.NewDynamic[VF](rows, cols, vfProto.FromFloat(0))
	g.LastUse = make([]int, rows*cols)
	g.Density = density.NewTable[P](pProto)
	g.Gravity = zero
	g.computeDirs()
	return g
}

// ParseDescription parses the text grid-description format spec.md §6
// defines: a "R C" header, a gravity line, R rows of field characters,
// then zero or more "<char> = <value>" density override lines.
func ParseDescription[P numeric.Number[P], V numeric.Number[V], VF numeric.Number[VF]](text string, pProto P, vProto V, vfProto VF) (*Grid[P, V, VF], error) {
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: expected header and gravity line", simerr.ErrInvalidGrid)
	}

	var rows, cols int
	if _, err := fmt.Sscan(lines[0], &rows, &cols); err != nil {
		return nil, fmt.Errorf("%w: bad header %q: %v", simerr.ErrInvalidGrid, lines[0], err)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: rows and cols must be positive", simerr.ErrInvalidGrid)
	}

	gravity, err := strconv.ParseFloat(strings.TrimSpace(lines[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad gravity %q: %v", simerr.ErrInvalidGrid, lines[1], err)
	}

	if len(lines) < 2+rows {
		return nil, fmt.Errorf("%w: expected %d field rows, got %d", simerr.ErrInvalidGrid, rows, len(lines)-2)
	}

	g := New[P, V, VF](rows, cols, pProto, vProto, vfProto)
	g.Gravity = pProto.FromFloat(gravity)

	for x := 0; x < rows; x++ {
		row := lines[2+x]
		if len(row) < cols {
			return nil, fmt.Errorf("%w: row %d shorter than %d columns", simerr.ErrInvalidGrid, x, cols)
		}
		for y := 0; y < cols; y++ {
			g.Cells[x][y] = row[y]
		}
	}
	g.computeDirs()

	for _, line := range lines[2+rows:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		ch, value, ok := parseDensityLine(line)
		if !ok {
			continue
		}
		g.Density.SetFloat(ch, value)
	}

	return g, nil
}

// parseDensityLine parses a single "<char> = <value>" override line.
func parseDensityLine(line string) (byte, float64, bool) {
	sc := bufio.NewScanner(strings.NewReader(line))
	sc.Split(bufio.ScanWords)
	var tok [3]string
	for i := 0; i < 3; i++ {
		if !sc.Scan() {
			return 0, 0, false
		}
		tok[i] = sc.Text()
	}
	if len(tok[0]) != 1 || tok[1] != "=" {
		return 0, 0, false
	}
	value, err := strconv.ParseFloat(tok[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return tok[0][0], value, true
}
