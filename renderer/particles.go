package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkrall/crowdctl/systems"
)

// ParticleRenderer renders effect particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all active particles with an age-based fade.
func (r *ParticleRenderer) Draw(pool *systems.Pool, offX, offY float32) {
	pool.Each(func(p *systems.Particle) {
		lifeRatio := 1 - p.Age/p.Lifetime
		if lifeRatio < 0 {
			lifeRatio = 0
		}

		color := rl.Color{
			R: p.Color.R,
			G: p.Color.G,
			B: p.Color.B,
			A: uint8(lifeRatio * 220),
		}

		size := p.Radius * lifeRatio
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircle(int32(p.X+offX), int32(p.Y+offY), size, color)
	})
}
