package systems

import (
	"math"
	"math/rand"

	"github.com/mkrall/crowdctl/components"
	"github.com/mkrall/crowdctl/config"
)

// Detect reports whether two circles overlap. Pure, no side effects.
func Detect(a components.Position, ar float32, b components.Position, br float32) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	minDist := ar + br
	return dx*dx+dy*dy < minDist*minDist
}

// Resolve separates two overlapping circles and applies impulses: a soft
// positional correction, an equal-mass restitution impulse, a gameplay push
// force along the normal, and a small tangential force for chaos. The
// resolution is symmetric, so pair processing order does not bias outcomes
// beyond floating-point rounding.
//
// timeMult is the frame's time-distortion multiplier (1 normally, smaller
// during a hit-stop) and scales only the gameplay forces.
func Resolve(aPos, bPos *components.Position, aVel, bVel *components.Velocity, ar, br, timeMult float32, rng *rand.Rand) {
	cfg := config.Cfg().Physics

	dx := bPos.X - aPos.X
	dy := bPos.Y - aPos.Y
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))

	// Coincident centers: pick a random normal so the pair still separates.
	if dist < 1e-4 {
		angle := rng.Float64() * 2 * math.Pi
		dx = float32(math.Cos(angle))
		dy = float32(math.Sin(angle))
		dist = 1e-4
	}

	nx := dx / dist
	ny := dy / dist

	// Soft positional correction; full correction jitters under repeated
	// multi-contact resolution.
	overlap := (ar + br) - dist
	correction := overlap * float32(cfg.Correction)

	aPos.X -= nx * correction
	aPos.Y -= ny * correction
	bPos.X += nx * correction
	bPos.Y += ny * correction

	relVelX := bVel.X - aVel.X
	relVelY := bVel.Y - aVel.Y
	velAlongNormal := relVelX*nx + relVelY*ny

	// Skip the impulse if the pair is already separating.
	if velAlongNormal > 0 {
		return
	}

	// Equal unit mass, split evenly.
	impulse := -(1 + float32(cfg.Restitution)) * velAlongNormal / 2

	aVel.X -= impulse * nx
	aVel.Y -= impulse * ny
	bVel.X += impulse * nx
	bVel.Y += impulse * ny

	// Gameplay push: not derived from dynamics, tuned for shove feel.
	push := float32(cfg.PushForce) * timeMult
	aVel.X -= nx * push
	aVel.Y -= ny * push
	bVel.X += nx * push
	bVel.Y += ny * push

	// Tangential kick with opposite signs keeps collisions dynamic.
	tangent := float32(cfg.TangentForce) * timeMult
	aVel.X += -ny * tangent
	aVel.Y += nx * tangent
	bVel.X -= -ny * tangent
	bVel.Y -= nx * tangent
}

// Impact returns a normalized [0,1] impact magnitude for a contact, used by
// presentation collaborators (shake, audio, particles).
func Impact(aVel, bVel components.Velocity) float32 {
	speedA := float32(math.Sqrt(float64(aVel.X*aVel.X + aVel.Y*aVel.Y)))
	speedB := float32(math.Sqrt(float64(bVel.X*bVel.X + bVel.Y*bVel.Y)))
	impact := (speedA + speedB) / 1000
	if impact > 1 {
		return 1
	}
	return impact
}
