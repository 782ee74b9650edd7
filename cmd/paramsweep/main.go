// Command paramsweep runs a fixed scenario across a grid of numeric-type
// selector combinations and gravity values, ranking each run by how
// much its tracked pressure drifted from zero by the end — a cheap
// signal for which numeric representations keep the simulation stable
// over a long run. Grounded on
// _examples/Mikko-Finell-mad-ca/cmd/lava-sweep's worker-pool sweep
// pattern, adapted from a lava-spread parameter search to a
// numeric-representation search.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/kay-kewl/fluid/internal/engine"
	"github.com/kay-kewl/fluid/internal/grid"
	"github.com/kay-kewl/fluid/internal/numeric"
	"github.com/kay-kewl/fluid/pkg/rng"
)

const scenario = `5 5
0.1
#####
#...#
#.#.#
#...#
#####
`

type paramSet struct {
	pType   string
	vType   string
	vfType  string
	gravity float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("p=%s v=%s vf=%s g=%.3f", p.pType, p.vType, p.vfType, p.gravity)
}

type sweepResult struct {
	params           paramSet
	finalDrift       float64
	maxDepthExceeded bool
}

func main() {
	steps := flag.Int("steps", 200, "ticks to simulate per combination")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	typeOptions := []string{"FLOAT", "DOUBLE", "FIXED(32,16)", "FAST_FIXED(32,16)"}
	gravityOptions := []float64{0.05, 0.1, 0.2}

	var sets []paramSet
	for _, p := range typeOptions {
		for _, v := range typeOptions {
			for _, vf := range typeOptions {
				for _, g := range gravityOptions {
					sets = append(sets, paramSet{pType: p, vType: v, vfType: vf, gravity: g})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d combinations (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runCombination(params, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	var all []sweepResult
	for res := range results {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].finalDrift < all[j].finalDrift })

	fmt.Println("\nMost stable 10 combinations (lowest |pressure drift|):")
	for i := 0; i < len(all) && i < 10; i++ {
		res := all[i]
		note := ""
		if res.maxDepthExceeded {
			note = " (hit max recursion depth)"
		}
		fmt.Printf("%2d) drift=%.6f %s%s\n", i+1, res.finalDrift, res.params, note)
	}
}

func runCombination(params paramSet, steps int) sweepResult {
	pProto, err := numeric.ParseSelector(params.pType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return sweepResult{params: params, finalDrift: math.Inf(1)}
	}
	vProto, err := numeric.ParseSelector(params.vType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return sweepResult{params: params, finalDrift: math.Inf(1)}
	}
	vfProto, err := numeric.ParseSelector(params.vfType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return sweepResult{params: params, finalDrift: math.Inf(1)}
	}

	g, err := grid.ParseDescription[numeric.Boxed, numeric.Boxed, numeric.Boxed](scenario, pProto, vProto, vfProto)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return sweepResult{params: params, finalDrift: math.Inf(1)}
	}
	g.Gravity = pProto.FromFloat(params.gravity)
	*g.P(1, 1) = pProto.FromFloat(100)

	eng := engine.New[numeric.Boxed, numeric.Boxed, numeric.Boxed](g, rng.New(rng.DefaultSeed))

	total := 0.0
	maxDepthExceeded := false
	for i := 0; i < steps; i++ {
		res := eng.Tick()
		total += res.PressureDelta
		if res.MaxDepthExceeded {
			maxDepthExceeded = true
		}
	}

	return sweepResult{params: params, finalDrift: math.Abs(total), maxDepthExceeded: maxDepthExceeded}
}
