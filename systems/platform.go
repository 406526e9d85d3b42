package systems

import "github.com/mkrall/crowdctl/config"

// Platform is the shrinking circular arena boundary. The center is fixed
// for the match; the radius is non-increasing once the shrink phase begins
// and never drops below MinRadius. Shrink gating lives in the orchestrator,
// not here.
type Platform struct {
	CenterX, CenterY float32
	Radius           float32
	MinRadius        float32
}

// NewPlatform creates a platform at the configured center and start radius.
func NewPlatform() *Platform {
	cfg := config.Cfg()
	return &Platform{
		CenterX:   cfg.Derived.CenterX,
		CenterY:   cfg.Derived.CenterY,
		Radius:    float32(cfg.Arena.StartRadius),
		MinRadius: float32(cfg.Arena.MinRadius),
	}
}

// Update shrinks the platform by shrinkRate * dt, clamped at the floor.
// Large single steps clamp rather than overshoot.
func (p *Platform) Update(dtMs float32) {
	if p.Radius <= p.MinRadius {
		return
	}
	p.Radius -= float32(config.Cfg().Arena.ShrinkRate) * dtMs / 1000
	if p.Radius < p.MinRadius {
		p.Radius = p.MinRadius
	}
}

// Contains reports whether the point is on the platform.
func (p *Platform) Contains(x, y float32) bool {
	dx := x - p.CenterX
	dy := y - p.CenterY
	return dx*dx+dy*dy <= p.Radius*p.Radius
}

// Reset restores the start radius for a new round.
func (p *Platform) Reset() {
	p.Radius = float32(config.Cfg().Arena.StartRadius)
}
