package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/mkrall/crowdctl/ai"
	"github.com/mkrall/crowdctl/components"
	"github.com/mkrall/crowdctl/config"
	"github.com/mkrall/crowdctl/input"
	"github.com/mkrall/crowdctl/systems"
	"github.com/mkrall/crowdctl/telemetry"
)

// Presentation feedback tuning.
const (
	eliminationTrauma    = 0.8
	eliminationFreezeMs  = 150
	collisionTraumaScale = 0.3
	heavyImpactThreshold = 0.6
	heavyImpactFreezeMs  = 40
)

// Update advances the match by rawDt milliseconds. Simulation systems run
// on hit-stop-scaled time; particles run on raw time so the world can
// freeze while feedback keeps moving.
func (g *Game) Update(rawDt float32) {
	dt := g.shake.Update(rawDt)

	switch g.phase {
	case PhaseCountdown:
		g.updateCountdown(rawDt)
		g.particles.Update(rawDt)
		return
	case PhaseGameOver:
		g.particles.Update(rawDt)
		return
	}

	g.roundTime += dt
	timeMult := float32(1)
	if rawDt > 0 {
		timeMult = dt / rawDt
	}

	// 1. Platform shrink after the grace period
	if g.roundTime > float32(config.Cfg().Arena.ShrinkStart) {
		g.platform.Update(dt)
	}

	// 2. Bot planning
	g.updatePlanners(dt)

	// 3. Pickup spawning and expiry
	g.powerups.Update(dt, g.platform)

	// 4. Effect aging
	g.tickEffects(dt)

	// 5. Movement, pickups, and containment
	g.rebuildGrid()
	g.stepCombatants(dt)

	// 6. Pairwise collisions
	g.resolveCollisions(timeMult)

	// 7. Round end detection
	g.checkRoundEnd()

	g.particles.Update(rawDt)
	g.recordFrame(rawDt)
}

// updateCountdown ticks the pre-round countdown on raw time.
func (g *Game) updateCountdown(rawDt float32) {
	g.countdownTimer -= rawDt
	if g.countdownTimer > 0 {
		return
	}

	g.countdown--
	if g.countdown <= 0 {
		g.phase = PhaseActive
		g.log.Info("round started", "round", g.round)
		return
	}
	g.countdownTimer += float32(config.Cfg().Round.CountdownInterval)
	g.events = append(g.events, telemetry.NewCountdownTickEvent(g.countdown))
}

// updatePlanners feeds each bot planner its view of the arena.
func (g *Game) updatePlanners(dt float32) {
	for id, planner := range g.planners {
		e := g.entities[id]
		com := g.comMap.Get(e)
		if !com.Alive {
			continue
		}
		pos := g.posMap.Get(e)
		dash := g.dashMap.Get(e)

		g.viewBuf = g.viewBuf[:0]
		for _, oe := range g.entities {
			ocom := g.comMap.Get(oe)
			if ocom.ID == id || !ocom.Alive {
				continue
			}
			opos := g.posMap.Get(oe)
			ovel := g.velMap.Get(oe)
			g.viewBuf = append(g.viewBuf, ai.Opponent{
				ID:    ocom.ID,
				X:     opos.X,
				Y:     opos.Y,
				VX:    ovel.X,
				VY:    ovel.Y,
				Alive: true,
			})
		}

		planner.Update(dt, ai.View{
			SelfX:          pos.X,
			SelfY:          pos.Y,
			DashCharges:    dash.Charges,
			Opponents:      g.viewBuf,
			CenterX:        g.platform.CenterX,
			CenterY:        g.platform.CenterY,
			PlatformRadius: g.platform.Radius,
		})
	}
}

// rebuildGrid refreshes the spatial grid from living combatant positions.
func (g *Game) rebuildGrid() {
	g.grid.Clear()
	for _, e := range g.entities {
		if !g.comMap.Get(e).Alive {
			continue
		}
		pos := g.posMap.Get(e)
		g.grid.Insert(e, pos.X, pos.Y)
	}
}

// stepCombatants advances every living combatant: input, movement, pickup
// collection, and platform containment.
func (g *Game) stepCombatants(dt float32) {
	for id8 := range g.entities {
		id := uint8(id8)
		e := g.entities[id]
		com := g.comMap.Get(e)
		if !com.Alive {
			continue
		}

		pos := g.posMap.Get(e)
		vel := g.velMap.Get(e)
		dash := g.dashMap.Get(e)
		body := g.bodyMap.Get(e)
		color := components.PaletteColor(com.Color)

		var acts input.Actions
		if src, ok := g.controllers[id]; ok {
			acts = src.Actions()
		} else if planner, ok := g.planners[id]; ok {
			acts = planner.Actions()
		}

		chargesBefore := dash.Charges
		systems.StepCombatant(pos, vel, dash, acts, dt)
		if dash.Charges < chargesBefore {
			g.collector.RecordDash()
		}
		if dash.Dashing {
			g.particles.EmitTrail(pos.X, pos.Y, color, vel.X, vel.Y)
		}

		if t, ok := g.powerups.CheckPickup(pos.X, pos.Y, body.Radius); ok {
			g.applyEffect(id, dash, t)
			g.particles.EmitSparkle(pos.X, pos.Y, color)
			g.events = append(g.events, telemetry.NewPickupEvent(t))
			g.collector.RecordPickup(t)
		}

		if !g.platform.Contains(pos.X, pos.Y) {
			g.eliminate(com, pos, color)
		}
	}
}

// eliminate removes a combatant that left the platform.
func (g *Game) eliminate(com *components.Combatant, pos *components.Position, color components.Color) {
	systems.Eliminate(com)
	g.particles.EmitExplosion(pos.X, pos.Y, color, 30)
	g.shake.AddTrauma(eliminationTrauma)
	g.shake.Hitstop(eliminationFreezeMs)
	g.events = append(g.events, telemetry.NewEliminationEvent(com.ID, pos.X, pos.Y, color))
	g.collector.RecordElimination()
	g.log.Info("combatant eliminated", "id", com.ID, "round", g.round)
}

// resolveCollisions detects and resolves every overlapping living pair.
// The grid can report a pair from both sides, so pairs are deduplicated by
// ID order before resolution.
func (g *Game) resolveCollisions(timeMult float32) {
	seen := make(map[uint16]struct{}, 8)

	for _, e := range g.entities {
		com := g.comMap.Get(e)
		if !com.Alive {
			continue
		}
		pos := g.posMap.Get(e)

		g.neighborBuf = g.grid.Neighbors(g.neighborBuf[:0], pos.X, pos.Y)
		for _, oe := range g.neighborBuf {
			if oe == e {
				continue
			}
			ocom := g.comMap.Get(oe)
			if !ocom.Alive {
				continue
			}

			lo, hi := com.ID, ocom.ID
			if lo > hi {
				lo, hi = hi, lo
			}
			key := uint16(lo)<<8 | uint16(hi)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			g.resolvePair(e, oe, timeMult)
		}
	}
}

// resolvePair runs detection and response for one combatant pair.
func (g *Game) resolvePair(a, b ecs.Entity, timeMult float32) {
	aPos := g.posMap.Get(a)
	bPos := g.posMap.Get(b)
	aRadius := g.bodyMap.Get(a).Radius
	bRadius := g.bodyMap.Get(b).Radius

	if !systems.Detect(*aPos, aRadius, *bPos, bRadius) {
		return
	}

	aVel := g.velMap.Get(a)
	bVel := g.velMap.Get(b)

	// Impact magnitude reflects pre-resolution closing speed.
	impact := systems.Impact(*aVel, *bVel)
	midX := (aPos.X + bPos.X) / 2
	midY := (aPos.Y + bPos.Y) / 2

	systems.Resolve(aPos, bPos, aVel, bVel, aRadius, bRadius, timeMult, g.rng)

	g.particles.Emit(midX, midY, components.Color{R: 255, G: 255, B: 255}, systems.EmitOpts{
		Count:    3 + int(impact*10),
		Speed:    150,
		Lifetime: 400,
	})
	g.shake.AddTrauma(collisionTraumaScale * impact)
	if impact > heavyImpactThreshold {
		g.shake.Hitstop(heavyImpactFreezeMs)
	}

	g.events = append(g.events, telemetry.NewCollisionEvent(midX, midY, impact))
	g.collector.RecordCollision(impact)
}

// checkRoundEnd ends the round once at most one combatant remains.
func (g *Game) checkRoundEnd() {
	alive := 0
	winner := int16(-1)
	for _, e := range g.entities {
		com := g.comMap.Get(e)
		if com.Alive {
			alive++
			winner = int16(com.ID)
		}
	}
	if alive > 1 {
		return
	}
	if alive == 0 {
		winner = -1
	}
	g.endRound(winner)
}

// endRound settles scores and flushes round telemetry. winner is -1 for a
// draw (simultaneous elimination).
func (g *Game) endRound(winner int16) {
	cfg := config.Cfg()
	g.phase = PhaseGameOver
	g.winner = winner

	if winner >= 0 {
		g.scores[winner]++
		e := g.entities[winner]
		pos := g.posMap.Get(e)
		color := components.PaletteColor(g.comMap.Get(e).Color)
		g.particles.EmitExplosion(pos.X, pos.Y, color, 50)
		g.comMap.Get(e).Kills += g.collectorEliminations()

		if g.scores[winner] >= cfg.Round.RoundsToWin {
			g.matchOver = true
		}
	}

	g.events = append(g.events, telemetry.NewRoundWonEvent(winner))

	stats := g.collector.Flush(g.roundTime, winner, g.platform.Radius)
	if err := g.output.WriteRound(stats); err != nil {
		g.log.Error("writing round stats", "error", err)
	}

	g.log.Info("round over",
		"round", g.round,
		"winner", winner,
		"duration_sec", stats.DurationSec,
		"collisions", stats.Collisions,
		"match_over", g.matchOver)
}

// collectorEliminations is the elimination count of the round in progress.
func (g *Game) collectorEliminations() int {
	return len(g.entities) - g.aliveCount()
}

func (g *Game) aliveCount() int {
	alive := 0
	for _, e := range g.entities {
		if g.comMap.Get(e).Alive {
			alive++
		}
	}
	return alive
}

// applyEffect attaches a pickup's effect record to a combatant. Speed and
// triple-dash pickups grant dash charges on the spot; the other records
// are carried for their duration without touching the simulation.
func (g *Game) applyEffect(id uint8, dash *components.Dash, t systems.PowerUpType) {
	g.effects[id] = append(g.effects[id], systems.NewEffect(t))

	switch t {
	case systems.SpeedBoost:
		if dash.Charges < dash.MaxCharges {
			dash.Charges++
		}
	case systems.TripleDash:
		dash.Charges = dash.MaxCharges
	}
}

// tickEffects ages effect records and drops expired ones.
func (g *Game) tickEffects(dt float32) {
	for id, effs := range g.effects {
		kept := effs[:0]
		for i := range effs {
			if effs[i].Update(dt) {
				kept = append(kept, effs[i])
			}
		}
		if len(kept) == 0 {
			delete(g.effects, id)
		} else {
			g.effects[id] = kept
		}
	}
}

// shielded reports whether the combatant holds an active shield effect.
func (g *Game) shielded(id uint8) bool {
	for _, eff := range g.effects[id] {
		if eff.Active && eff.Shield {
			return true
		}
	}
	return false
}

// recordFrame captures one replay frame when recording is enabled.
func (g *Game) recordFrame(rawDt float32) {
	if g.recorder == nil {
		return
	}

	frame := telemetry.Frame{
		PlatformRadius: g.platform.Radius,
		RoundTimeMs:    g.roundTime,
		Combatants:     make([]telemetry.FrameCombatant, 0, len(g.entities)),
	}
	for _, e := range g.entities {
		pos := g.posMap.Get(e)
		vel := g.velMap.Get(e)
		com := g.comMap.Get(e)
		dash := g.dashMap.Get(e)
		frame.Combatants = append(frame.Combatants, telemetry.FrameCombatant{
			X:       pos.X,
			Y:       pos.Y,
			VX:      vel.X,
			VY:      vel.Y,
			Alive:   com.Alive,
			Dashing: dash.Dashing,
			Color:   com.Color,
		})
	}
	g.recorder.Record(rawDt, frame)
}
