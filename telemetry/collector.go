package telemetry

import "github.com/mkrall/crowdctl/systems"

// Collector accumulates events within a round and produces RoundStats.
type Collector struct {
	round        int
	impactWindow int

	// Event counters for the current round
	collisions   int
	eliminations int
	pickups      map[systems.PowerUpType]int
	dashes       int

	// Collision impact magnitudes for distribution stats
	impacts []float64
}

// NewCollector creates a new stats collector. impactWindow bounds the
// number of impact samples retained per round; 0 means unbounded.
func NewCollector(impactWindow int) *Collector {
	return &Collector{
		round:        1,
		impactWindow: impactWindow,
		pickups:      make(map[systems.PowerUpType]int),
		impacts:      make([]float64, 0, 256),
	}
}

// RecordCollision records a combatant collision and its impact magnitude.
func (c *Collector) RecordCollision(impact float32) {
	c.collisions++
	if c.impactWindow > 0 && len(c.impacts) >= c.impactWindow {
		return
	}
	c.impacts = append(c.impacts, float64(impact))
}

// RecordElimination records a combatant falling off the platform.
func (c *Collector) RecordElimination() {
	c.eliminations++
}

// RecordPickup records a power-up collection.
func (c *Collector) RecordPickup(t systems.PowerUpType) {
	c.pickups[t]++
}

// RecordDash records a dash activation.
func (c *Collector) RecordDash() {
	c.dashes++
}

// Flush produces a RoundStats for the finished round and resets counters.
// winner is -1 for a drawn round.
func (c *Collector) Flush(durationMs float32, winner int16, finalRadius float32) RoundStats {
	var totalPickups int
	for _, n := range c.pickups {
		totalPickups += n
	}

	stats := RoundStats{
		Round:        c.round,
		DurationSec:  float64(durationMs) / 1000,
		Winner:       winner,
		FinalRadius:  float64(finalRadius),
		Collisions:   c.collisions,
		Eliminations: c.eliminations,
		Pickups:      totalPickups,
		Dashes:       c.dashes,
	}
	stats.ImpactMean, stats.ImpactP50, stats.ImpactP90 = impactDistribution(c.impacts)

	c.round++
	c.collisions = 0
	c.eliminations = 0
	c.dashes = 0
	c.pickups = make(map[systems.PowerUpType]int)
	c.impacts = c.impacts[:0]

	return stats
}
