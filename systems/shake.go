package systems

import (
	"math"
	"math/rand"

	"github.com/mkrall/crowdctl/config"
)

// Shake is the trauma-based screen shake and hit-stop collaborator. The
// simulation only depends on its dt-scaling contract: Update returns the
// per-frame delta the simulation must consume, drastically reduced during a
// hit-stop window. The offset output is presentation-only.
type Shake struct {
	Trauma float32 // 0..1, decays over time

	time        float32
	hitstopLeft float32
	rng         *rand.Rand
}

// NewShake creates an idle shake state.
func NewShake(rng *rand.Rand) *Shake {
	return &Shake{rng: rng}
}

// AddTrauma accumulates shake intensity, clamped to 1.
func (s *Shake) AddTrauma(amount float32) {
	s.Trauma += amount
	if s.Trauma > 1 {
		s.Trauma = 1
	}
}

// Hitstop starts a freeze-frame window of the given duration in ms.
func (s *Shake) Hitstop(durMs float32) {
	s.hitstopLeft = durMs
}

// Update advances the shake state and returns the simulation delta for this
// frame: dt scaled down while a hit-stop is active, dt unchanged otherwise.
func (s *Shake) Update(dtMs float32) float32 {
	cfg := config.Cfg().Shake

	if s.hitstopLeft > 0 {
		s.hitstopLeft -= dtMs
		return dtMs * float32(cfg.HitstopScale)
	}

	s.Trauma -= float32(cfg.TraumaDecay) * dtMs / 1000
	if s.Trauma < 0 {
		s.Trauma = 0
	}
	s.time += dtMs

	return dtMs
}

// Offset returns the current shake offset in pixels. Falloff is trauma
// squared for a smoother tail.
func (s *Shake) Offset() (float32, float32) {
	if s.Trauma <= 0 {
		return 0, 0
	}

	cfg := config.Cfg().Shake
	shake := s.Trauma * s.Trauma
	maxOffset := float32(cfg.MaxOffset)
	t := float64(s.time) * cfg.Frequency / 1000

	x := float32(math.Sin(t*2.1)+math.Sin(t*3.7)) * maxOffset * shake
	y := float32(math.Cos(t*1.9)+math.Cos(t*4.3)) * maxOffset * shake

	x += (s.rng.Float32()*2 - 1) * maxOffset * shake * 0.3
	y += (s.rng.Float32()*2 - 1) * maxOffset * shake * 0.3

	return x, y
}

// Reset clears all shake state. Idempotent.
func (s *Shake) Reset() {
	s.Trauma = 0
	s.time = 0
	s.hitstopLeft = 0
}
