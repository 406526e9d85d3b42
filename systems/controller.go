package systems

import (
	"math"

	"github.com/mkrall/crowdctl/components"
	"github.com/mkrall/crowdctl/config"
	"github.com/mkrall/crowdctl/input"
)

// StepCombatant advances one combatant's movement state machine by dtMs.
// While dashing, velocity blends 10% current / 90% toward the dash vector,
// producing a fast but slightly controllable burst. Otherwise movement
// intent is approached exponentially for momentum feel. Friction, the
// velocity ceiling, integration, and the bounds clamp apply in every state.
//
// dtMs may be externally scaled (hit-stop); the controller never assumes
// wall-clock time.
func StepCombatant(pos *components.Position, vel *components.Velocity, dash *components.Dash, acts input.Actions, dtMs float32) {
	cfg := config.Cfg()
	dtSec := dtMs / 1000

	stepDashTimers(dash, dtMs)

	if dash.Dashing {
		dash.Elapsed += dtMs
		if dash.Elapsed >= float32(cfg.Dash.Duration) {
			dash.Dashing = false
			dash.Elapsed = 0
		} else {
			speed := float32(cfg.Dash.Speed)
			vel.X = vel.X*0.1 + dash.DirX*speed*0.9
			vel.Y = vel.Y*0.1 + dash.DirY*speed*0.9
		}
	} else {
		moveX, moveY := acts.Intent()

		targetX := moveX * float32(cfg.Combatant.MaxSpeed)
		targetY := moveY * float32(cfg.Combatant.MaxSpeed)

		accel := float32(cfg.Combatant.Accel) * dtSec
		vel.X += (targetX - vel.X) * accel
		vel.Y += (targetY - vel.Y) * accel

		if acts.Dash && dash.Charges > 0 && !dash.Buffered {
			if moveX != 0 || moveY != 0 {
				StartDash(dash, moveX, moveY)
			} else {
				// Buffer the dash so a press slightly before a movement
				// input still fires.
				dash.Buffered = true
				dash.BufferLeft = float32(cfg.Dash.BufferWindow)
			}
		}

		if dash.Buffered && (moveX != 0 || moveY != 0) {
			StartDash(dash, moveX, moveY)
			dash.Buffered = false
			dash.BufferLeft = 0
		}
	}

	vel.X *= float32(cfg.Combatant.Friction)
	vel.Y *= float32(cfg.Combatant.Friction)

	clampSpeed(vel, float32(cfg.Combatant.MaxVelocity))

	pos.X += vel.X * dtSec
	pos.Y += vel.Y * dtSec

	// Elimination is the platform's job; this clamp only stops entities
	// escaping the simulated world entirely.
	buf := float32(cfg.Combatant.BoundsBuffer)
	pos.X = clamp(pos.X, -buf, cfg.Derived.ScreenW32+buf)
	pos.Y = clamp(pos.Y, -buf, cfg.Derived.ScreenH32+buf)
}

// stepDashTimers advances the cooldown and input-buffer timers.
func stepDashTimers(dash *components.Dash, dtMs float32) {
	if dash.Cooldown > 0 {
		dash.Cooldown -= dtMs
		if dash.Cooldown <= 0 && dash.Charges < dash.MaxCharges {
			dash.Charges++
			if dash.Charges < dash.MaxCharges {
				dash.Cooldown = float32(config.Cfg().Dash.Cooldown)
			} else {
				dash.Cooldown = 0
			}
		}
	}

	if dash.BufferLeft > 0 {
		dash.BufferLeft -= dtMs
		if dash.BufferLeft <= 0 {
			dash.Buffered = false
			dash.BufferLeft = 0
		}
	}
}

// StartDash consumes one charge and begins a dash in the given direction.
// No-op when no charge is available. Consuming the last charge starts the
// regeneration cooldown.
func StartDash(dash *components.Dash, dirX, dirY float32) {
	if dash.Charges <= 0 {
		return
	}

	dash.Dashing = true
	dash.Elapsed = 0
	dash.Charges--

	if dash.Charges == 0 {
		dash.Cooldown = float32(config.Cfg().Dash.Cooldown)
	}

	length := float32(math.Sqrt(float64(dirX*dirX + dirY*dirY)))
	if length > 0 {
		dash.DirX = dirX / length
		dash.DirY = dirY / length
	}
}

// Eliminate marks a combatant dead. Irreversible until an explicit Respawn.
func Eliminate(com *components.Combatant) {
	com.Alive = false
	com.Deaths++
}

// Respawn resets a combatant for round setup. Not used mid-round.
func Respawn(pos *components.Position, vel *components.Velocity, dash *components.Dash, com *components.Combatant, x, y float32) {
	pos.X = x
	pos.Y = y
	vel.X = 0
	vel.Y = 0
	com.Alive = true
	dash.Charges = dash.MaxCharges
	dash.Cooldown = 0
	dash.Dashing = false
	dash.Elapsed = 0
	dash.Buffered = false
	dash.BufferLeft = 0
}

func clampSpeed(vel *components.Velocity, max float32) {
	speed := float32(math.Sqrt(float64(vel.X*vel.X + vel.Y*vel.Y)))
	if speed > max {
		scale := max / speed
		vel.X *= scale
		vel.Y *= scale
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
