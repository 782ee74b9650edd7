// Package engine implements the per-tick simulation algorithm: gravity,
// pressure-driven acceleration, bounded flow propagation, and
// probabilistic particle movement, per spec.md §4.4.
package engine

import (
	"github.com/kay-kewl/fluid/internal/field"
	"github.com/kay-kewl/fluid/internal/grid"
	"github.com/kay-kewl/fluid/internal/numeric"
	"github.com/kay-kewl/fluid/pkg/rng"
)

// DefaultMaxDepth bounds propagateMove's recursion, per spec.md §4.4 and
// §7: exceeding it aborts that cell's move attempt but must not abort
// the run.
const DefaultMaxDepth = 1000

// TickResult reports what a single Tick did, for callers (run summaries,
// cmd/paramsweep's ranking pass) that need more than the mutated grid.
type TickResult struct {
	// PressureDelta is the net change to total pressure this tick,
	// accumulated the way spec.md's total_delta_p bookkeeping does.
	PressureDelta float64
	// Moved reports whether any cell's random draw fell below its move
	// probability this tick, so that a move was attempted; it is set
	// whether or not that attempt found a target (the original's "prop"
	// flag gating its per-tick snapshot print).
	Moved bool
	// MaxDepthExceeded reports whether any movement attempt this tick
	// hit DefaultMaxDepth. Per spec.md §7 this is not a fatal
	// condition: the attempt is simply abandoned.
	MaxDepthExceeded bool
}

// Engine runs the tick algorithm over a Grid generic in the same three
// numeric slots.
type Engine[P numeric.Number[P], V numeric.Number[V], VF numeric.Number[VF]] struct {
	Grid     *grid.Grid[P, V, VF]
	RNG      *rng.RNG
	MaxDepth int

	maxDepthExceeded bool
}

// New builds an Engine over g, drawing its random decisions from r.
func New[P numeric.Number[P], V numeric.Number[V], VF numeric.Number[VF]](g *grid.Grid[P, V, VF], r *rng.RNG) *Engine[P, V, VF] {
	return &Engine[P, V, VF]{Grid: g, RNG: r, MaxDepth: DefaultMaxDepth}
}

// Tick advances the simulation by one step: gravity, pressure exchange,
// bounded flow propagation to convergence, then probabilistic movement.
func (e *Engine[P, V, VF]) Tick() TickResult {
	g := e.Grid
	e.maxDepthExceeded = false

	e.applyGravity()

	totalDeltaP := e.applyPressure()

	g.ResetVelocityFlow()
	for {
		g.UT += 2
		propagated := false
		for x := 0; x < g.Rows; x++ {
			for y := 0; y < g.Cols; y++ {
				if g.IsWall(x, y) || g.LastUse[g.Idx(x, y)] == g.UT {
					continue
				}
				t, _, _, _ := e.propagateFlow(x, y, g.Velocity.Zero().FromFloat(1))
				if numeric.Positive(t) {
					propagated = true
				}
			}
		}
		if !propagated {
			break
		}
	}

	totalDeltaP = totalDeltaP + e.settleFlowIntoPressure()

	g.UT += 2
	moved := false
	for x := 0; x < g.Rows; x++ {
		for y := 0; y < g.Cols; y++ {
			if g.IsWall(x, y) || g.LastUse[g.Idx(x, y)] == g.UT {
				continue
			}
			draw := e.RNG.Float64()
			prob := e.moveProb(x, y)
			if draw < prob.Float64() {
				moved = true
				e.propagateMove(x, y, true, 0)
			} else {
				e.propagateStop(x, y, true)
			}
		}
	}

	return TickResult{PressureDelta: totalDeltaP, Moved: moved, MaxDepthExceeded: e.maxDepthExceeded}
}

// Run advances the simulation steps times, invoking checkpoint after
// every checkpointInterval ticks (if checkpointInterval > 0 and
// checkpoint is non-nil), and returns the final tick's result.
func (e *Engine[P, V, VF]) Run(steps, checkpointInterval int, checkpoint func(step int) error) (TickResult, error) {
	var last TickResult
	for step := 1; step <= steps; step++ {
		last = e.Tick()
		if checkpointInterval > 0 && checkpoint != nil && step%checkpointInterval == 0 {
			if err := checkpoint(step); err != nil {
				return last, err
			}
		}
	}
	return last, nil
}

func (e *Engine[P, V, VF]) applyGravity() {
	g := e.Grid
	for x := 0; x < g.Rows; x++ {
		for y := 0; y < g.Cols; y++ {
			if g.IsWall(x, y) {
				continue
			}
			nx, ny := x+field.Offsets[field.South].DX, y+field.Offsets[field.South].DY
			if !g.InBounds(nx, ny) || g.IsWall(nx, ny) {
				continue
			}
			gv := numeric.Convert[P, V](g.Gravity, g.Velocity.Zero())
			g.Velocity.Add(x, y, field.Offsets[field.South].DX, field.Offsets[field.South].DY, gv)
		}
	}
}

func (e *Engine[P, V, VF]) applyPressure() float64 {
	g := e.Grid
	g.SnapshotPressure()
	totalDeltaP := 0.0

	for x := 0; x < g.Rows; x++ {
		for y := 0; y < g.Cols; y++ {
			if g.IsWall(x, y) {
				continue
			}
			for _, o := range field.Offsets {
				nx, ny := x+o.DX, y+o.DY
				if !g.InBounds(nx, ny) || g.IsWall(nx, ny) {
					continue
				}
				oldSelf := *g.POld(x, y)
				oldNeighbor := *g.POld(nx, ny)
				if oldNeighbor.Cmp(oldSelf) >= 0 {
					continue
				}
				deltaP := oldSelf.Sub(oldNeighbor)
				force := deltaP

				contrPtr, _ := g.Velocity.Get(nx, ny, -o.DX, -o.DY)
				contr := *contrPtr
				densNeighbor := g.Density.Get(g.At(nx, ny))

				contrForce := numeric.Convert[V, P](contr, force).Mul(densNeighbor)
				if contrForce.Cmp(force) >= 0 {
					*contrPtr = (*contrPtr).Sub(numeric.Convert[P, V](force.Div(densNeighbor), contr))
					continue
				}
				force = force.Sub(contrForce)
				*contrPtr = contr.FromFloat(0)

				densSelf := g.Density.Get(g.At(x, y))
				add := numeric.Convert[P, V](force.Div(densSelf), contr)
				g.Velocity.Add(x, y, o.DX, o.DY, add)

				dirs := float64(g.Dirs[g.Idx(x, y)])
				share := force.DivReal(dirs)
				*g.P(x, y) = (*g.P(x, y)).Sub(share)
				totalDeltaP -= share.Float64()
			}
		}
	}
	return totalDeltaP
}

func (e *Engine[P, V, VF]) settleFlowIntoPressure() float64 {
	g := e.Grid
	totalDeltaP := 0.0

	for x := 0; x < g.Rows; x++ {
		for y := 0; y < g.Cols; y++ {
			if g.IsWall(x, y) {
				continue
			}
			for _, o := range field.Offsets {
				nx, ny := x+o.DX, y+o.DY
				if !g.InBounds(nx, ny) {
					continue
				}
				oldVPtr, _ := g.Velocity.Get(x, y, o.DX, o.DY)
				oldV := *oldVPtr
				if !numeric.Positive(oldV) {
					continue
				}
				flowPtr, _ := g.VelocityFlow.Get(x, y, o.DX, o.DY)
				newV := numeric.Convert[VF, V](*flowPtr, oldV)
				*oldVPtr = newV

				pSelf := g.Density.Get(g.At(x, y))
				forceV := oldV.Sub(newV)
				force := numeric.Convert[V, P](forceV, pSelf).Mul(pSelf)
				if g.At(x, y) == '.' {
					force = force.MulReal(0.8)
				}

				if g.IsWall(nx, ny) {
					dirs := float64(g.Dirs[g.Idx(x, y)])
					share := force.DivReal(dirs)
					*g.P(x, y) = (*g.P(x, y)).Add(share)
					totalDeltaP += share.Float64()
				} else {
					dirs := float64(g.Dirs[g.Idx(nx, ny)])
					share := force.DivReal(dirs)
					*g.P(nx, ny) = (*g.P(nx, ny)).Add(share)
					totalDeltaP += share.Float64()
				}
			}
		}
	}
	return totalDeltaP
}

// propagateFlow is the bounded flow propagation primitive, grounded on
// original_source/include/simulator.h's propagate_flow: it pushes up to
// lim units of capacity from (x, y) toward a neighbor with spare
// velocity capacity, recursing into neighbors not yet processed in the
// current sweep and committing directly to a neighbor that is already on
// the in-flight recursion path.
func (e *Engine[P, V, VF]) propagateFlow(x, y int, lim V) (flowed V, propagated bool, endX, endY int) {
	g := e.Grid
	g.LastUse[g.Idx(x, y)] = g.UT - 1

	zero := lim.FromFloat(0)
	if !g.InBounds(x, y) || g.IsWall(x, y) {
		return zero, false, 0, 0
	}

	ret := zero
	for _, o := range field.Offsets {
		nx, ny := x+o.DX, y+o.DY
		if !g.InBounds(nx, ny) || g.IsWall(nx, ny) {
			continue
		}
		if g.LastUse[g.Idx(nx, ny)] >= g.UT {
			continue
		}

		capPtr, _ := g.Velocity.Get(x, y, o.DX, o.DY)
		flowPtr, _ := g.VelocityFlow.Get(x, y, o.DX, o.DY)
		flowedSoFar := numeric.Convert[VF, V](*flowPtr, lim)
		if flowedSoFar.Cmp(*capPtr) == 0 {
			continue
		}

		vp := numeric.Min(lim, (*capPtr).Sub(flowedSoFar))
		if g.LastUse[g.Idx(nx, ny)] == g.UT-1 {
			g.VelocityFlow.Add(x, y, o.DX, o.DY, numeric.Convert[V, VF](vp, *flowPtr))
			g.LastUse[g.Idx(x, y)] = g.UT
			return vp, true, nx, ny
		}

		t, prop, ex, ey := e.propagateFlow(nx, ny, vp)
		ret = ret.Add(t)
		if prop {
			g.VelocityFlow.Add(x, y, o.DX, o.DY, numeric.Convert[V, VF](t, *flowPtr))
			g.LastUse[g.Idx(x, y)] = g.UT
			return t, prop && !(ex == x && ey == y), ex, ey
		}
	}
	g.LastUse[g.Idx(x, y)] = g.UT
	return ret, false, 0, 0
}

// propagateStop marks a cell, and transitively its stalled neighbors, as
// not moving this sweep.
func (e *Engine[P, V, VF]) propagateStop(x, y int, force bool) {
	g := e.Grid
	if !force {
		stop := true
		for _, o := range field.Offsets {
			nx, ny := x+o.DX, y+o.DY
			if !g.InBounds(nx, ny) || g.IsWall(nx, ny) {
				continue
			}
			if g.LastUse[g.Idx(nx, ny)] >= g.UT-1 {
				continue
			}
			v, _ := g.Velocity.Get(x, y, o.DX, o.DY)
			if numeric.Positive(*v) {
				stop = false
				break
			}
		}
		if !stop {
			return
		}
	}

	g.LastUse[g.Idx(x, y)] = g.UT
	for _, o := range field.Offsets {
		nx, ny := x+o.DX, y+o.DY
		if !g.InBounds(nx, ny) {
			continue
		}
		if g.IsWall(nx, ny) || g.LastUse[g.Idx(nx, ny)] == g.UT {
			continue
		}
		v, _ := g.Velocity.Get(x, y, o.DX, o.DY)
		if numeric.Positive(*v) {
			continue
		}
		e.propagateStop(nx, ny, false)
	}
}

// moveProb sums the non-negative outgoing velocity components of (x, y),
// the total weight propagateMove's direction draw is normalized against.
func (e *Engine[P, V, VF]) moveProb(x, y int) V {
	g := e.Grid
	sum := g.Velocity.Zero()
	for _, o := range field.Offsets {
		nx, ny := x+o.DX, y+o.DY
		if !g.InBounds(nx, ny) || g.IsWall(nx, ny) || g.LastUse[g.Idx(nx, ny)] == g.UT {
			continue
		}
		v, _ := g.Velocity.Get(x, y, o.DX, o.DY)
		if (*v).Cmp(sum.FromFloat(0)) >= 0 {
			sum = sum.Add(*v)
		}
	}
	return sum
}

// propagateMove attempts to move the particle at (x, y) along a
// velocity-weighted random direction, recursively displacing whatever
// occupies the target cell first. Grounded on
// original_source/include/simulator.h's propagate_move; the original's
// three-step ParticleParams::swap_with dance (swap into a temporary,
// swap the temporary into the target, swap the temporary back) nets to
// a single exchange of (x, y) and the target cell, so it is implemented
// here as one grid.Swap.
func (e *Engine[P, V, VF]) propagateMove(x, y int, isFirst bool, depth int) bool {
	g := e.Grid
	offset := 0
	if isFirst {
		offset = 1
	}
	g.LastUse[g.Idx(x, y)] = g.UT - offset

	if depth > e.MaxDepth {
		e.maxDepthExceeded = true
		return false
	}

	ret := false
	targetX, targetY := -1, -1
	zero := g.Velocity.Zero().FromFloat(0)

	for {
		var thresholds [4]V
		for i := range thresholds {
			thresholds[i] = zero
		}
		sum := zero

		for i, o := range field.Offsets {
			nx, ny := x+o.DX, y+o.DY
			if !g.InBounds(nx, ny) || g.IsWall(nx, ny) || g.LastUse[g.Idx(nx, ny)] == g.UT {
				continue
			}
			v, _ := g.Velocity.Get(x, y, o.DX, o.DY)
			if (*v).Cmp(zero) < 0 {
				thresholds[i] = sum
				continue
			}
			sum = sum.Add(*v)
			thresholds[i] = sum
		}

		if numeric.IsZero(sum) {
			break
		}

		r := sum.MulReal(e.RNG.Float64())
		dir := 0
		for i, th := range thresholds {
			if th.Cmp(r) > 0 {
				dir = i
				break
			}
		}

		o := field.Offsets[dir]
		targetX, targetY = x+o.DX, y+o.DY
		if !g.InBounds(targetX, targetY) {
			continue
		}

		ret = g.LastUse[g.Idx(targetX, targetY)] == g.UT-1 || e.propagateMove(targetX, targetY, false, depth+1)
		if ret {
			break
		}
	}

	g.LastUse[g.Idx(x, y)] = g.UT
	for _, o := range field.Offsets {
		nx, ny := x+o.DX, y+o.DY
		if !g.InBounds(nx, ny) || g.IsWall(nx, ny) || g.LastUse[g.Idx(nx, ny)] >= g.UT-1 {
			continue
		}
		v, _ := g.Velocity.Get(x, y, o.DX, o.DY)
		if (*v).Cmp(zero) < 0 {
			e.propagateStop(nx, ny, false)
		}
	}

	if ret && !isFirst {
		g.Swap(x, y, targetX, targetY)
	}
	return ret
}
