package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kay-kewl/fluid/internal/grid"
	"github.com/kay-kewl/fluid/internal/numeric"
)

func TestWriteHeatmapIncludesLayoutCharacters(t *testing.T) {
	g, err := grid.ParseDescription[numeric.Float64, numeric.Float64, numeric.Float64](
		"2 2\n0\n.#\n..\n", numeric.Float64(0), numeric.Float64(0), numeric.Float64(0))
	if err != nil {
		t.Fatalf("ParseDescription: unexpected error: %v", err)
	}
	*g.P(0, 0) = numeric.Float64(5)

	var buf bytes.Buffer
	if err := WriteHeatmap(&buf, g); err != nil {
		t.Fatalf("WriteHeatmap: unexpected error: %v", err)
	}

	out := buf.String()
	for _, ch := range []string{".", "#"} {
		if !strings.Contains(out, ch) {
			t.Fatalf("output missing character %q:\n%s", ch, out)
		}
	}
	if !strings.Contains(out, reset) {
		t.Fatalf("output missing ANSI reset sequence")
	}
}

func TestWriteHeatmapHandlesAllZeroPressure(t *testing.T) {
	g, err := grid.ParseDescription[numeric.Float64, numeric.Float64, numeric.Float64](
		"1 2\n0\n..\n", numeric.Float64(0), numeric.Float64(0), numeric.Float64(0))
	if err != nil {
		t.Fatalf("ParseDescription: unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteHeatmap(&buf, g); err != nil {
		t.Fatalf("WriteHeatmap: unexpected error: %v", err)
	}
	if buf.String() != "..\n" {
		t.Fatalf("output = %q, want plain uncolored layout", buf.String())
	}
}
