// Command fluidsim runs the cellular fluid simulator over a text grid
// description, per spec.md §6.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/kay-kewl/fluid/internal/checkpoint"
	"github.com/kay-kewl/fluid/internal/console"
	"github.com/kay-kewl/fluid/internal/engine"
	"github.com/kay-kewl/fluid/internal/grid"
	"github.com/kay-kewl/fluid/internal/numeric"
	"github.com/kay-kewl/fluid/pkg/rng"
)

type config struct {
	file            string
	pType           string
	vType           string
	vfType          string
	steps           int
	checkpointEvery int
	checkpointFile  string
	seed            int64
	color           bool
}

func defaultConfig() config {
	return config{
		file:            "data/default.txt",
		pType:           "FIXED(32,16)",
		vType:           "FIXED(32,16)",
		vfType:          "FIXED(32,16)",
		steps:           10000,
		checkpointEvery: 1,
		checkpointFile:  "checkpoint.txt",
		seed:            rng.DefaultSeed,
	}
}

// parseArgs mirrors original_source/src/main.cpp's manual argv loop:
// unrecognized flags, and flags missing their value, are silently
// ignored rather than rejected, per spec.md §6's "legacy behavior" note.
func parseArgs(args []string) config {
	cfg := defaultConfig()
	for i := 0; i < len(args); i++ {
		arg := args[i]
		hasNext := i+1 < len(args)
		switch {
		case arg == "--p-type" && hasNext:
			cfg.pType = args[i+1]
			i++
		case arg == "--v-type" && hasNext:
			cfg.vType = args[i+1]
			i++
		case arg == "--v-flow-type" && hasNext:
			cfg.vfType = args[i+1]
			i++
		case arg == "--file" && hasNext:
			cfg.file = args[i+1]
			i++
		case arg == "--steps" && hasNext:
			if n, err := strconv.Atoi(args[i+1]); err == nil {
				cfg.steps = n
			}
			i++
		case arg == "--checkpoint" && hasNext:
			if n, err := strconv.Atoi(args[i+1]); err == nil {
				cfg.checkpointEvery = n
			}
			i++
		case arg == "--checkpoint-file" && hasNext:
			cfg.checkpointFile = args[i+1]
			i++
		case arg == "--seed" && hasNext:
			if n, err := strconv.ParseInt(args[i+1], 10, 64); err == nil {
				cfg.seed = n
			}
			i++
		case arg == "--color":
			cfg.color = true
		}
	}
	return cfg
}

func main() {
	cfg := parseArgs(os.Args[1:])

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	start := time.Now()

	data, err := os.ReadFile(cfg.file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", cfg.file, err)
	}

	pProto, err := numeric.ParseSelector(cfg.pType)
	if err != nil {
		return err
	}
	vProto, err := numeric.ParseSelector(cfg.vType)
	if err != nil {
		return err
	}
	vfProto, err := numeric.ParseSelector(cfg.vfType)
	if err != nil {
		return err
	}

	g, err := grid.ParseDescription[numeric.Boxed, numeric.Boxed, numeric.Boxed](string(data), pProto, vProto, vfProto)
	if err != nil {
		return err
	}

	log.Printf("=== Current Simulator State ===")
	log.Printf("Dimensions: %dx%d", g.Rows, g.Cols)
	log.Printf("Gravity: %s", g.Gravity.String())
	log.Printf("p-type=%s v-type=%s v-flow-type=%s seed=%d", cfg.pType, cfg.vType, cfg.vfType, cfg.seed)
	for x := 0; x < g.Rows; x++ {
		log.Printf("%s", g.Cells[x])
	}
	for _, ch := range g.Density.Overrides() {
		log.Printf("density %q: %s", ch, g.Density.Get(ch).String())
	}
	log.Printf("===============================")

	eng := engine.New[numeric.Boxed, numeric.Boxed, numeric.Boxed](g, rng.New(cfg.seed))

	saveCheckpoint := func(step int) error {
		f, err := os.Create(cfg.checkpointFile)
		if err != nil {
			return err
		}
		defer f.Close()
		log.Printf("checkpoint at step %d -> %s", step, cfg.checkpointFile)
		return checkpoint.Save(f, g)
	}

	result, err := eng.Run(cfg.steps, cfg.checkpointEvery, saveCheckpoint)
	if err != nil {
		return err
	}

	if cfg.color {
		if err := console.WriteHeatmap(os.Stdout, g); err != nil {
			return err
		}
	}

	if result.MaxDepthExceeded {
		log.Printf("warning: max recursion depth reached during the final tick")
	}
	log.Printf("Simulation took %s", time.Since(start))
	return nil
}
