// Package checkpoint implements the textual save/load stream format
// spec.md §6 defines for resuming a run: header, gravity, field layout,
// pressure pairs, velocity vectors, the UT sweep counter, and density
// overrides.
//
// original_source/include/simulator.h's save_state only ever writes the
// header, gravity, field layout, and density overrides — it never
// persists pressure, velocity, or UT, even though load_state expects to
// read all of them back. Loading one of its own checkpoints back in
// would therefore desynchronize immediately. Save and Load here are
// made symmetric: Save writes everything Load reads.
package checkpoint

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kay-kewl/fluid/internal/field"
	"github.com/kay-kewl/fluid/internal/grid"
	"github.com/kay-kewl/fluid/internal/numeric"
	"github.com/kay-kewl/fluid/internal/simerr"
)

// Save writes g's full state to w.
func Save[P numeric.Number[P], V numeric.Number[V], VF numeric.Number[VF]](w io.Writer, g *grid.Grid[P, V, VF]) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%d %d\n", g.Rows, g.Cols); err != nil {
		return fmt.Errorf("%w: %v", simerr.ErrIO, err)
	}
	if _, err := fmt.Fprintf(bw, "%s\n", g.Gravity.String()); err != nil {
		return fmt.Errorf("%w: %v", simerr.ErrIO, err)
	}

	for x := 0; x < g.Rows; x++ {
		if _, err := fmt.Fprintf(bw, "%s\n", g.Cells[x]); err != nil {
			return fmt.Errorf("%w: %v", simerr.ErrIO, err)
		}
	}

	for x := 0; x < g.Rows; x++ {
		for y := 0; y < g.Cols; y++ {
			if _, err := fmt.Fprintf(bw, "%s %s\n", (*g.P(x, y)).String(), (*g.POld(x, y)).String()); err != nil {
				return fmt.Errorf("%w: %v", simerr.ErrIO, err)
			}
		}
	}

	for x := 0; x < g.Rows; x++ {
		for y := 0; y < g.Cols; y++ {
			for _, o := range field.Offsets {
				v, err := g.Velocity.Get(x, y, o.DX, o.DY)
				if err != nil {
					return fmt.Errorf("%w: %v", simerr.ErrIO, err)
				}
				if _, err := fmt.Fprintf(bw, "%s\n", (*v).String()); err != nil {
					return fmt.Errorf("%w: %v", simerr.ErrIO, err)
				}
			}
		}
	}

	if _, err := fmt.Fprintf(bw, "%d\n", g.UT); err != nil {
		return fmt.Errorf("%w: %v", simerr.ErrIO, err)
	}

	for _, ch := range g.Density.Overrides() {
		if _, err := fmt.Fprintf(bw, "%c = %s\n", ch, g.Density.Get(ch).String()); err != nil {
			return fmt.Errorf("%w: %v", simerr.ErrIO, err)
		}
	}

	return bw.Flush()
}

// Load reads a checkpoint written by Save and rebuilds a Grid over the
// given slot prototypes.
func Load[P numeric.Number[P], V numeric.Number[V], VF numeric.Number[VF]](r io.Reader, pProto P, vProto V, vfProto VF) (*grid.Grid[P, V, VF], error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("%w: %v", simerr.ErrIO, err)
			}
			return "", fmt.Errorf("%w: unexpected end of checkpoint", simerr.ErrIO)
		}
		return sc.Text(), nil
	}

	header, err := line()
	if err != nil {
		return nil, err
	}
	var rows, cols int
	if _, err := fmt.Sscan(header, &rows, &cols); err != nil {
		return nil, fmt.Errorf("%w: bad header %q: %v", simerr.ErrInvalidGrid, header, err)
	}

	gravityLine, err := line()
	if err != nil {
		return nil, err
	}
	gravity, err := strconv.ParseFloat(strings.TrimSpace(gravityLine), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad gravity %q: %v", simerr.ErrInvalidGrid, gravityLine, err)
	}

	g := grid.New[P, V, VF](rows, cols, pProto, vProto, vfProto)
	g.Gravity = pProto.FromFloat(gravity)

	for x := 0; x < rows; x++ {
		row, err := line()
		if err != nil {
			return nil, err
		}
		if len(row) < cols {
			return nil, fmt.Errorf("%w: row %d shorter than %d columns", simerr.ErrInvalidGrid, x, cols)
		}
		for y := 0; y < cols; y++ {
			g.Cells[x][y] = row[y]
		}
	}
	g.RecomputeDirs()

	for x := 0; x < rows; x++ {
		for y := 0; y < cols; y++ {
			l, err := line()
			if err != nil {
				return nil, err
			}
			fields := strings.Fields(l)
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: expected pressure pair at (%d,%d), got %q", simerr.ErrInvalidGrid, x, y, l)
			}
			pv, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad pressure at (%d,%d): %v", simerr.ErrInvalidGrid, x, y, err)
			}
			pov, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad old pressure at (%d,%d): %v", simerr.ErrInvalidGrid, x, y, err)
			}
			*g.P(x, y) = pProto.FromFloat(pv)
			*g.POld(x, y) = pProto.FromFloat(pov)
		}
	}

	for x := 0; x < rows; x++ {
		for y := 0; y < cols; y++ {
			for _, o := range field.Offsets {
				l, err := line()
				if err != nil {
					return nil, err
				}
				vv, err := strconv.ParseFloat(strings.TrimSpace(l), 64)
				if err != nil {
					return nil, fmt.Errorf("%w: bad velocity at (%d,%d): %v", simerr.ErrInvalidGrid, x, y, err)
				}
				if _, err := g.Velocity.Add(x, y, o.DX, o.DY, vProto.FromFloat(vv)); err != nil {
					return nil, fmt.Errorf("%w: %v", simerr.ErrInvalidGrid, err)
				}
			}
		}
	}

	utLine, err := line()
	if err != nil {
		return nil, err
	}
	ut, err := strconv.Atoi(strings.TrimSpace(utLine))
	if err != nil {
		return nil, fmt.Errorf("%w: bad UT %q: %v", simerr.ErrInvalidGrid, utLine, err)
	}
	g.UT = ut

	for sc.Scan() {
		l := sc.Text()
		if strings.TrimSpace(l) == "" {
			continue
		}
		fields := strings.Fields(l)
		if len(fields) != 3 || fields[1] != "=" {
			continue
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		g.Density.SetFloat(fields[0][0], value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", simerr.ErrIO, err)
	}

	return g, nil
}
