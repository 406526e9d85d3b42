package systems

import (
	"math"
	"math/rand"

	"github.com/mkrall/crowdctl/components"
	"github.com/mkrall/crowdctl/config"
)

// Particle is a pooled, reusable decorative particle. Allocation is a
// linear scan for the first inactive slot; freeing clears the active flag.
type Particle struct {
	X, Y     float32
	VX, VY   float32
	Color    components.Color
	Age      float32 // ms
	Lifetime float32 // ms
	Radius   float32
	Gravity  float32
	Rotation float32
	RotSpeed float32
	Active   bool
}

// Pool is a fixed-capacity particle pool. The number of simultaneously
// active particles never exceeds the pool size; emission requests beyond
// capacity are silently dropped. Visual degradation under load beats
// crashing.
type Pool struct {
	particles []Particle
	rng       *rand.Rand
}

// NewPool creates a pool with the given capacity.
func NewPool(size int, rng *rand.Rand) *Pool {
	return &Pool{
		particles: make([]Particle, size),
		rng:       rng,
	}
}

// EmitOpts tunes a single emission burst.
type EmitOpts struct {
	Count    int
	Speed    float32 // units per second, jittered 0.5x-1.5x
	Lifetime float32 // ms
	Gravity  float32
	Spread   float32 // degrees; 360 = omnidirectional
	// Direction in degrees; only used when Directed is true.
	Direction float32
	Directed  bool
}

// Emit spawns up to opts.Count particles at (x, y).
func (p *Pool) Emit(x, y float32, color components.Color, opts EmitOpts) {
	if opts.Lifetime == 0 {
		opts.Lifetime = 1000
	}
	if opts.Spread == 0 {
		opts.Spread = 360
	}

	for i := 0; i < opts.Count; i++ {
		slot := p.findInactive()
		if slot == nil {
			break // pool exhausted, drop the rest
		}

		var angle float32
		if opts.Directed {
			angle = opts.Direction + (p.rng.Float32()-0.5)*opts.Spread
		} else {
			angle = p.rng.Float32() * 360
		}

		mag := opts.Speed * (0.5 + p.rng.Float32())
		rad := float64(angle) * math.Pi / 180

		*slot = Particle{
			X:        x,
			Y:        y,
			VX:       float32(math.Cos(rad)) * mag,
			VY:       float32(math.Sin(rad)) * mag,
			Color:    color,
			Lifetime: opts.Lifetime,
			Radius:   2 + p.rng.Float32()*3,
			Gravity:  opts.Gravity,
			Rotation: p.rng.Float32() * 360,
			RotSpeed: (p.rng.Float32() - 0.5) * 720,
			Active:   true,
		}
	}
}

// EmitExplosion spawns an elimination burst.
func (p *Pool) EmitExplosion(x, y float32, color components.Color, intensity int) {
	p.Emit(x, y, color, EmitOpts{Count: intensity, Speed: 200, Lifetime: 800, Gravity: 100})
}

// EmitTrail spawns particles behind a moving entity, opposite its velocity.
func (p *Pool) EmitTrail(x, y float32, color components.Color, velX, velY float32) {
	angle := float32(math.Atan2(float64(-velY), float64(-velX)) * 180 / math.Pi)
	p.Emit(x, y, color, EmitOpts{Count: 2, Speed: 50, Lifetime: 500, Spread: 30, Direction: angle, Directed: true})
}

// EmitSparkle spawns a pickup sparkle drifting upward.
func (p *Pool) EmitSparkle(x, y float32, color components.Color) {
	p.Emit(x, y, color, EmitOpts{Count: 5, Speed: 150, Lifetime: 600, Gravity: -50})
}

// Update integrates all active particles; expired or far off-screen
// particles return to the pool.
func (p *Pool) Update(dtMs float32) {
	cfg := config.Cfg()
	dtSec := dtMs / 1000
	limX := cfg.Derived.ScreenW32 + 50
	limY := cfg.Derived.ScreenH32 + 50

	for i := range p.particles {
		pt := &p.particles[i]
		if !pt.Active {
			continue
		}

		pt.Age += dtMs
		if pt.Age >= pt.Lifetime {
			pt.Active = false
			continue
		}

		pt.X += pt.VX * dtSec
		pt.Y += pt.VY * dtSec
		pt.VY += pt.Gravity * dtSec
		pt.VX *= 0.98
		pt.VY *= 0.98
		pt.Rotation += pt.RotSpeed * dtSec

		if pt.X < -50 || pt.X > limX || pt.Y < -50 || pt.Y > limY {
			pt.Active = false
		}
	}
}

// Each calls fn for every active particle.
func (p *Pool) Each(fn func(*Particle)) {
	for i := range p.particles {
		if p.particles[i].Active {
			fn(&p.particles[i])
		}
	}
}

// ActiveCount returns the number of active particles.
func (p *Pool) ActiveCount() int {
	n := 0
	for i := range p.particles {
		if p.particles[i].Active {
			n++
		}
	}
	return n
}

// Clear deactivates every particle. Idempotent.
func (p *Pool) Clear() {
	for i := range p.particles {
		p.particles[i].Active = false
	}
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return len(p.particles)
}

func (p *Pool) findInactive() *Particle {
	for i := range p.particles {
		if !p.particles[i].Active {
			return &p.particles[i]
		}
	}
	return nil
}
