package density

import "github.com/kay-kewl/fluid/internal/numeric"

import "testing"

func TestDefaultDensity(t *testing.T) {
	table := NewTable[numeric.Float64](numeric.Float64(0))
	if got := table.Get('.'); got.Float64() != Default {
		t.Fatalf("Get('.') = %v, want %v", got.Float64(), Default)
	}
	if table.IsOverridden('.') {
		t.Fatalf("expected '.' to not be overridden")
	}
}

func TestOverride(t *testing.T) {
	table := NewTable[numeric.Float64](numeric.Float64(0))
	table.SetFloat('#', 1000)
	table.SetFloat('+', 0.5)

	if got := table.Get('#').Float64(); got != 1000 {
		t.Fatalf("Get('#') = %v, want 1000", got)
	}
	if !table.IsOverridden('#') {
		t.Fatalf("expected '#' to be overridden")
	}

	overrides := table.Overrides()
	if len(overrides) != 2 {
		t.Fatalf("Overrides() = %v, want 2 entries", overrides)
	}
	if overrides[0] != '#' || overrides[1] != '+' {
		t.Fatalf("Overrides() = %v, want ['#', '+'] in byte order", overrides)
	}
}
