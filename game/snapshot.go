package game

import (
	"github.com/mkrall/crowdctl/components"
	"github.com/mkrall/crowdctl/config"
)

// CombatantSnap is one combatant's renderable state.
type CombatantSnap struct {
	ID         uint8
	X, Y       float32
	VX, VY     float32
	Radius     float32
	Alive      bool
	Dashing    bool
	Shielded   bool
	Color      components.Color
	Charges    int
	MaxCharges int
	Cooldown   float32
}

// Snapshot is an immutable copy of the renderable match state. The renderer
// and HUD read it without touching the ECS world.
type Snapshot struct {
	Combatants []CombatantSnap

	PlatformX      float32
	PlatformY      float32
	PlatformRadius float32
	Shrinking      bool
	ShrinkWarning  bool

	Phase       Phase
	Countdown   int
	RoundTimeMs float32
	Round       int
	Winner      int16
	Scores      []int
	MatchOver   bool
}

// Snapshot captures the current renderable state.
func (g *Game) Snapshot() Snapshot {
	cfg := config.Cfg()

	snap := Snapshot{
		Combatants:     make([]CombatantSnap, 0, len(g.entities)),
		PlatformX:      g.platform.CenterX,
		PlatformY:      g.platform.CenterY,
		PlatformRadius: g.platform.Radius,
		Phase:          g.phase,
		Countdown:      g.countdown,
		RoundTimeMs:    g.roundTime,
		Round:          g.round,
		Winner:         g.winner,
		Scores:         append([]int(nil), g.scores...),
		MatchOver:      g.matchOver,
	}

	shrinkStart := float32(cfg.Arena.ShrinkStart)
	snap.Shrinking = g.phase == PhaseActive &&
		g.roundTime > shrinkStart &&
		g.platform.Radius > g.platform.MinRadius
	snap.ShrinkWarning = g.phase == PhaseActive &&
		!snap.Shrinking &&
		g.roundTime > shrinkStart-float32(cfg.Arena.ShrinkWarn)

	query := g.filter.Query()
	for query.Next() {
		pos, vel, body, com, dash := query.Get()

		snap.Combatants = append(snap.Combatants, CombatantSnap{
			ID:         com.ID,
			X:          pos.X,
			Y:          pos.Y,
			VX:         vel.X,
			VY:         vel.Y,
			Radius:     body.Radius,
			Alive:      com.Alive,
			Dashing:    dash.Dashing,
			Shielded:   g.shielded(com.ID),
			Color:      components.PaletteColor(com.Color),
			Charges:    dash.Charges,
			MaxCharges: dash.MaxCharges,
			Cooldown:   dash.Cooldown,
		})
	}

	return snap
}
