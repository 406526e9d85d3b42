package telemetry

import (
	"math"
	"testing"
)

func TestImpactDistribution(t *testing.T) {
	impacts := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, p50, p90 := impactDistribution(impacts)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if math.Abs(p50-0.5) > 0.01 {
		t.Errorf("p50 = %v, want ~0.5", p50)
	}
	if math.Abs(p90-0.9) > 0.01 {
		t.Errorf("p90 = %v, want ~0.9", p90)
	}
}

func TestImpactDistributionEmpty(t *testing.T) {
	mean, p50, p90 := impactDistribution(nil)
	if mean != 0 || p50 != 0 || p90 != 0 {
		t.Errorf("empty sample = (%v, %v, %v), want zeros", mean, p50, p90)
	}
}

func TestImpactDistributionUnsortedInput(t *testing.T) {
	// The caller appends in event order; distribution sorts internally.
	impacts := []float64{0.9, 0.1, 0.5}
	mean, p50, _ := impactDistribution(impacts)

	if math.Abs(mean-0.5) > 0.001 {
		t.Errorf("mean = %v, want 0.5", mean)
	}
	if math.Abs(p50-0.5) > 0.01 {
		t.Errorf("p50 = %v, want 0.5", p50)
	}
	// Input order must be preserved for the caller.
	if impacts[0] != 0.9 {
		t.Error("input slice was mutated")
	}
}
