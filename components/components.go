// Package components defines ECS components for the arena simulation.
package components

import "github.com/mkrall/crowdctl/config"

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in units per second.
type Velocity struct {
	X, Y float32
}

// Body holds physical properties of an entity.
type Body struct {
	Radius float32
}

// Color is an RGB triple shared by combatants, particles, and pickups.
type Color struct {
	R, G, B uint8
}

// PaletteColor returns the configured color for a palette slot.
func PaletteColor(slot uint8) Color {
	p := config.Cfg().Palette
	if int(slot) >= len(p) {
		return Color{255, 255, 255}
	}
	return Color{p[slot][0], p[slot][1], p[slot][2]}
}

// Combatant holds identity and per-round score state.
type Combatant struct {
	ID     uint8
	Color  uint8 // palette slot
	Alive  bool
	Kills  int
	Deaths int
}

// Dash holds the dash state machine for one combatant.
// Charges regenerate one at a time: each cooldown expiry restores a single
// charge and restarts the timer while below MaxCharges.
type Dash struct {
	Charges    int
	MaxCharges int
	Cooldown   float32 // ms until the next charge regenerates, 0 when idle
	Dashing    bool
	Elapsed    float32 // ms spent in the current dash
	DirX, DirY float32 // unit direction of the current dash
	Buffered   bool    // dash input waiting for movement intent
	BufferLeft float32 // ms remaining in the buffer window
}
