// Package renderer draws the arena from game snapshots. It owns no
// simulation state; everything it needs arrives in a Snapshot each frame.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkrall/crowdctl/config"
	"github.com/mkrall/crowdctl/game"
	"github.com/mkrall/crowdctl/systems"
)

// Renderer draws the platform, combatants, and pickups.
type Renderer struct {
	// ShowChargePips controls the dash charge indicator under combatants.
	ShowChargePips bool
}

// NewRenderer creates a new arena renderer.
func NewRenderer() *Renderer {
	return &Renderer{ShowChargePips: true}
}

// Draw renders one frame. offX/offY is the camera shake offset.
func (r *Renderer) Draw(snap game.Snapshot, powerups []*systems.PowerUp, offX, offY float32) {
	r.drawPlatform(snap, offX, offY)
	r.drawPowerUps(powerups, offX, offY)
	r.drawCombatants(snap, offX, offY)
}

func (r *Renderer) drawPlatform(snap game.Snapshot, offX, offY float32) {
	cx := snap.PlatformX + offX
	cy := snap.PlatformY + offY

	rl.DrawCircle(int32(cx), int32(cy), snap.PlatformRadius, rl.Color{R: 45, G: 48, B: 58, A: 255})

	// Edge ring, tinted red while the platform is shrinking or about to
	edge := rl.Color{R: 120, G: 130, B: 150, A: 255}
	if snap.Shrinking {
		edge = rl.Color{R: 220, G: 70, B: 70, A: 255}
	} else if snap.ShrinkWarning {
		edge = rl.Color{R: 220, G: 160, B: 70, A: 255}
	}
	rl.DrawCircleLines(int32(cx), int32(cy), snap.PlatformRadius, edge)
	rl.DrawCircleLines(int32(cx), int32(cy), snap.PlatformRadius-1, edge)

	// Danger band just inside the edge while the platform closes in
	if snap.Shrinking {
		margin := float32(config.Cfg().Arena.DangerMargin)
		if snap.PlatformRadius > margin {
			band := rl.Color{R: 220, G: 70, B: 70, A: 40}
			rl.DrawRing(rl.Vector2{X: cx, Y: cy}, snap.PlatformRadius-margin, snap.PlatformRadius, 0, 360, 64, band)
		}
	}
}

func (r *Renderer) drawPowerUps(powerups []*systems.PowerUp, offX, offY float32) {
	for _, p := range powerups {
		if !p.Active {
			continue
		}

		// Fade and pulse during the last quarter of the lifetime
		alpha := float32(1)
		remaining := 1 - p.Age/p.Lifetime
		if remaining < 0.25 {
			pulse := float32(math.Sin(float64(p.Age) * 0.02))
			alpha = remaining/0.25*0.7 + 0.3 + 0.1*pulse
			if alpha > 1 {
				alpha = 1
			}
		}

		color := powerUpColor(p.Type)
		color.A = uint8(alpha * 255)
		x := p.X + offX
		y := p.Y + offY
		rl.DrawCircle(int32(x), int32(y), p.Radius, color)
		rl.DrawCircleLines(int32(x), int32(y), p.Radius, rl.Color{R: 255, G: 255, B: 255, A: color.A})
	}
}

func (r *Renderer) drawCombatants(snap game.Snapshot, offX, offY float32) {
	for _, c := range snap.Combatants {
		if !c.Alive {
			continue
		}

		x := c.X + offX
		y := c.Y + offY
		body := rl.Color{R: c.Color.R, G: c.Color.G, B: c.Color.B, A: 255}

		rl.DrawCircle(int32(x), int32(y), c.Radius, body)
		rl.DrawCircleLines(int32(x), int32(y), c.Radius, rl.White)

		if c.Shielded {
			rl.DrawCircleLines(int32(x), int32(y), c.Radius+5, rl.Color{R: 120, G: 200, B: 255, A: 200})
		}

		// Direction tick once actually moving
		speed := float32(math.Sqrt(float64(c.VX*c.VX + c.VY*c.VY)))
		if speed > 50 {
			tipX := x + c.VX/speed*c.Radius
			tipY := y + c.VY/speed*c.Radius
			rl.DrawCircle(int32(tipX), int32(tipY), 4, rl.White)
		}

		if r.ShowChargePips {
			r.drawChargePips(c, x, y)
		}
	}
}

// drawChargePips shows dash charges as dots under the combatant; the
// regenerating charge renders dim.
func (r *Renderer) drawChargePips(c game.CombatantSnap, x, y float32) {
	const pipSpacing = 10
	startX := x - float32(c.MaxCharges-1)*pipSpacing/2
	pipY := y + c.Radius + 8

	for i := 0; i < c.MaxCharges; i++ {
		color := rl.Color{R: 80, G: 80, B: 90, A: 200}
		if i < c.Charges {
			color = rl.Color{R: 255, G: 255, B: 255, A: 230}
		} else if i == c.Charges && c.Cooldown > 0 {
			color = rl.Color{R: 160, G: 160, B: 170, A: 160}
		}
		rl.DrawCircle(int32(startX+float32(i)*pipSpacing), int32(pipY), 3, color)
	}
}

func powerUpColor(t systems.PowerUpType) rl.Color {
	switch t {
	case systems.SpeedBoost:
		return rl.Color{R: 255, G: 220, B: 70, A: 255}
	case systems.Shield:
		return rl.Color{R: 120, G: 200, B: 255, A: 255}
	case systems.SizeUp:
		return rl.Color{R: 200, G: 120, B: 255, A: 255}
	case systems.SizeDown:
		return rl.Color{R: 120, G: 255, B: 160, A: 255}
	case systems.TripleDash:
		return rl.Color{R: 255, G: 140, B: 70, A: 255}
	}
	return rl.Color{R: 200, G: 200, B: 200, A: 255}
}
