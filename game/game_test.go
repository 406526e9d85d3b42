package game

import (
	"testing"

	"github.com/mkrall/crowdctl/input"
	"github.com/mkrall/crowdctl/systems"
	"github.com/mkrall/crowdctl/telemetry"
)

func newTestGame(t *testing.T, combatants int) *Game {
	t.Helper()
	g, err := NewGame(Options{Seed: 42, Combatants: combatants})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

// startRound runs the countdown so the round goes active.
func startRound(g *Game) {
	for g.Phase() == PhaseCountdown {
		g.Update(1000)
	}
	g.DrainEvents()
}

func hasEvent(events []telemetry.Event, typ telemetry.EventType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

func TestNewGameRejectsBadCounts(t *testing.T) {
	if _, err := NewGame(Options{Seed: 1, Combatants: 1}); err == nil {
		t.Error("expected error for a single combatant")
	}
	if _, err := NewGame(Options{Seed: 1, Combatants: 5}); err == nil {
		t.Error("expected error for more combatants than palette slots")
	}
}

func TestCountdownFlow(t *testing.T) {
	g := newTestGame(t, 2)

	if g.Phase() != PhaseCountdown {
		t.Fatalf("phase = %v at start, want countdown", g.Phase())
	}

	events := g.DrainEvents()
	if !hasEvent(events, telemetry.EventCountdownTick) {
		t.Error("no initial countdown tick event")
	}

	g.Update(1000)
	if g.Phase() != PhaseCountdown {
		t.Fatal("countdown finished too early")
	}
	if !hasEvent(g.DrainEvents(), telemetry.EventCountdownTick) {
		t.Error("no countdown tick event after one interval")
	}

	g.Update(1000)
	g.Update(1000)
	if g.Phase() != PhaseActive {
		t.Errorf("phase = %v after full countdown, want active", g.Phase())
	}
}

func TestSpawnPositionsOnRing(t *testing.T) {
	g := newTestGame(t, 4)

	snap := g.Snapshot()
	for _, c := range snap.Combatants {
		dx := c.X - snap.PlatformX
		dy := c.Y - snap.PlatformY
		distSq := dx*dx + dy*dy
		if distSq < 149*149 || distSq > 151*151 {
			t.Errorf("combatant %d spawned off the ring: (%v, %v)", c.ID, c.X, c.Y)
		}
		if !c.Alive {
			t.Errorf("combatant %d not alive at spawn", c.ID)
		}
	}
}

func TestEliminationOffPlatform(t *testing.T) {
	g := newTestGame(t, 2)
	startRound(g)

	// Push combatant 1 well off the platform.
	pos := g.posMap.Get(g.entities[1])
	pos.X = 10
	pos.Y = 10

	g.Update(16)

	if g.comMap.Get(g.entities[1]).Alive {
		t.Fatal("off-platform combatant still alive")
	}
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v with one combatant left, want game over", g.Phase())
	}

	events := g.DrainEvents()
	if !hasEvent(events, telemetry.EventElimination) {
		t.Error("no elimination event")
	}
	if !hasEvent(events, telemetry.EventRoundWon) {
		t.Error("no round-won event")
	}

	snap := g.Snapshot()
	if snap.Winner != 0 {
		t.Errorf("winner = %d, want 0", snap.Winner)
	}
	if snap.Scores[0] != 1 {
		t.Errorf("scores[0] = %d, want 1", snap.Scores[0])
	}
}

func TestSimultaneousEliminationIsDraw(t *testing.T) {
	g := newTestGame(t, 2)
	startRound(g)

	for _, e := range g.entities {
		pos := g.posMap.Get(e)
		pos.X = 10
		pos.Y = 10
	}

	g.Update(16)

	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", g.Phase())
	}
	snap := g.Snapshot()
	if snap.Winner != -1 {
		t.Errorf("winner = %d, want -1 for a draw", snap.Winner)
	}
	if snap.Scores[0] != 0 || snap.Scores[1] != 0 {
		t.Errorf("scores = %v, want no points for a draw", snap.Scores)
	}
}

func TestRestartRoundResetsArena(t *testing.T) {
	g := newTestGame(t, 2)
	startRound(g)

	pos := g.posMap.Get(g.entities[1])
	pos.X = 10
	pos.Y = 10
	g.Update(16)
	if g.Phase() != PhaseGameOver {
		t.Fatal("round did not end")
	}

	g.RestartRound()

	if g.Phase() != PhaseCountdown {
		t.Errorf("phase = %v after restart, want countdown", g.Phase())
	}
	snap := g.Snapshot()
	if snap.Round != 2 {
		t.Errorf("round = %d, want 2", snap.Round)
	}
	if snap.PlatformRadius != 300 {
		t.Errorf("platform radius = %v after restart, want 300", snap.PlatformRadius)
	}
	for _, c := range snap.Combatants {
		if !c.Alive {
			t.Errorf("combatant %d not revived on restart", c.ID)
		}
	}
}

func TestMatchOverAtRoundsToWin(t *testing.T) {
	g := newTestGame(t, 2)
	g.scores[0] = 2

	startRound(g)
	pos := g.posMap.Get(g.entities[1])
	pos.X = 10
	pos.Y = 10
	g.Update(16)

	if !g.MatchOver() {
		t.Fatal("match not over at three round wins")
	}

	// RestartRound is a no-op once the match is decided.
	g.RestartRound()
	if g.Phase() != PhaseGameOver {
		t.Error("restart proceeded after match end")
	}

	g.ResetMatch()
	snap := g.Snapshot()
	if snap.Scores[0] != 0 || snap.Round != 1 || g.MatchOver() {
		t.Errorf("match not fully reset: scores=%v round=%d", snap.Scores, snap.Round)
	}
}

func TestPickupAppliesAndExpires(t *testing.T) {
	g := newTestGame(t, 2)
	g.SetController(0, &input.Script{})
	startRound(g)

	// Plant a speed pickup directly under combatant 0.
	pos := g.posMap.Get(g.entities[0])
	g.powerups.Clear()
	g.powerups.Place(&systems.PowerUp{
		X: pos.X, Y: pos.Y,
		Type:     systems.SpeedBoost,
		Radius:   15,
		Lifetime: 15000,
		Active:   true,
	})

	dash := g.dashMap.Get(g.entities[0])
	before := dash.Charges

	g.Update(16)

	if !hasEvent(g.DrainEvents(), telemetry.EventPickup) {
		t.Fatal("no pickup event")
	}
	if dash.Charges != before+1 {
		t.Fatalf("charges = %d after speed pickup, want %d", dash.Charges, before+1)
	}

	// The effect record lapses after its duration.
	g.tickEffects(6000)
	if len(g.effects[0]) != 0 {
		t.Errorf("effect records = %d after expiry, want 0", len(g.effects[0]))
	}
}

func TestTripleDashRefillsCharges(t *testing.T) {
	g := newTestGame(t, 2)
	startRound(g)

	dash := g.dashMap.Get(g.entities[0])
	dash.Charges = 0

	g.applyEffect(0, dash, systems.TripleDash)

	if dash.Charges != dash.MaxCharges {
		t.Errorf("charges = %d after triple dash, want refill to %d", dash.Charges, dash.MaxCharges)
	}
	if dash.MaxCharges != 2 {
		t.Errorf("max charges = %d, want 2 (refill must not raise the cap)", dash.MaxCharges)
	}
}

func TestCollisionEmitsEvent(t *testing.T) {
	g := newTestGame(t, 2)
	startRound(g)

	// Overlap the pair at speed so the contact registers with impact.
	p0 := g.posMap.Get(g.entities[0])
	p1 := g.posMap.Get(g.entities[1])
	p0.X, p0.Y = 640, 360
	p1.X, p1.Y = 670, 360
	g.velMap.Get(g.entities[0]).X = 200
	g.velMap.Get(g.entities[1]).X = -200

	g.Update(16)

	events := g.DrainEvents()
	if !hasEvent(events, telemetry.EventCollision) {
		t.Fatal("no collision event")
	}
	for _, ev := range events {
		if ev.Type == telemetry.EventCollision && ev.Impact <= 0 {
			t.Errorf("impact = %v, want > 0", ev.Impact)
		}
	}
}
