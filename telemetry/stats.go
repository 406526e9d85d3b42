package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RoundStats holds aggregated statistics for a finished round.
type RoundStats struct {
	Round       int     `csv:"round"`
	DurationSec float64 `csv:"duration_sec"`
	Winner      int16   `csv:"winner"` // -1 for a draw
	FinalRadius float64 `csv:"final_radius"`

	// Events during round
	Collisions   int `csv:"collisions"`
	Eliminations int `csv:"eliminations"`
	Pickups      int `csv:"pickups"`
	Dashes       int `csv:"dashes"`

	// Collision impact distribution
	ImpactMean float64 `csv:"impact_mean"`
	ImpactP50  float64 `csv:"impact_p50"`
	ImpactP90  float64 `csv:"impact_p90"`
}

// impactDistribution computes mean, median, and 90th percentile of the
// recorded impact magnitudes. Returns zeros for an empty sample.
func impactDistribution(impacts []float64) (mean, p50, p90 float64) {
	if len(impacts) == 0 {
		return 0, 0, 0
	}

	mean = stat.Mean(impacts, nil)

	sorted := make([]float64, len(impacts))
	copy(sorted, impacts)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}
