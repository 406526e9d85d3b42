package ai

import (
	"math/rand"
	"testing"
)

func centeredView() View {
	return View{
		SelfX:          640,
		SelfY:          360,
		DashCharges:    1,
		CenterX:        640,
		CenterY:        360,
		PlatformRadius: 300,
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"easy", Easy},
		{"medium", Medium},
		{"hard", Hard},
		{"expert", Expert},
		{"EXPERT", Expert},
		{"", Medium},
		{"bogus", Medium},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseDifficulty(tt.in); got != tt.want {
				t.Errorf("ParseDifficulty(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSurvivalOverridesThreats(t *testing.T) {
	p := NewPlanner(0, Expert, rand.New(rand.NewSource(1)))

	// Near the edge with two close threats: edge danger wins.
	v := centeredView()
	v.SelfX = 640 + 290 // 10 units from the edge
	v.Opponents = []Opponent{
		{ID: 1, X: v.SelfX - 40, Y: 360, Alive: true},
		{ID: 2, X: v.SelfX + 20, Y: 400, Alive: true},
	}

	p.Update(100, v)
	if p.State() != Survival {
		t.Errorf("state = %v, want Survival", p.State())
	}
}

func TestStateByThreatCount(t *testing.T) {
	tests := []struct {
		name      string
		opponents []Opponent
		want      State
	}{
		{"no threats", []Opponent{{ID: 1, X: 100, Y: 100, Alive: true}}, Opportunistic},
		{"one threat", []Opponent{{ID: 1, X: 700, Y: 360, Alive: true}}, Aggressive},
		{"two threats", []Opponent{
			{ID: 1, X: 700, Y: 360, Alive: true},
			{ID: 2, X: 640, Y: 420, Alive: true},
		}, Defensive},
		{"dead ignored", []Opponent{
			{ID: 1, X: 700, Y: 360, Alive: false},
			{ID: 2, X: 640, Y: 420, Alive: true},
		}, Aggressive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlanner(0, Expert, rand.New(rand.NewSource(1)))
			v := centeredView()
			v.Opponents = tt.opponents

			p.Update(100, v)
			if p.State() != tt.want {
				t.Errorf("state = %v, want %v", p.State(), tt.want)
			}
		})
	}
}

func TestReactionTimeGatesDecisions(t *testing.T) {
	// Easy reacts every 500ms.
	p := NewPlanner(0, Easy, rand.New(rand.NewSource(1)))

	v := centeredView()
	v.SelfX = 640 + 290

	p.Update(100, v)
	if p.State() != Opportunistic {
		t.Fatalf("state = %v before reaction time elapsed, want Opportunistic", p.State())
	}

	p.Update(400, v)
	if p.State() != Survival {
		t.Errorf("state = %v after reaction time, want Survival", p.State())
	}
}

func TestSurvivalSteersTowardCenter(t *testing.T) {
	// Expert noise is near zero, so direction is deterministic enough.
	p := NewPlanner(0, Expert, rand.New(rand.NewSource(1)))

	v := centeredView()
	v.SelfX = 640 + 290

	p.Update(100, v)
	acts := p.Actions()

	if !acts.Left {
		t.Error("expected movement left toward center")
	}
	if acts.Right {
		t.Error("unexpected movement away from center")
	}
	if !acts.Dash {
		t.Error("expected dash with a charge and distance to cover")
	}
}

func TestSurvivalHoldsAtCenter(t *testing.T) {
	p := NewPlanner(0, Expert, rand.New(rand.NewSource(1)))
	p.state = Survival

	p.planSurvival(centeredView())
	acts := p.Actions()

	if acts.Up || acts.Down || acts.Left || acts.Right || acts.Dash {
		t.Errorf("expected idle at center, got %+v", acts)
	}
}

func TestAttackFallsBackWithoutTargets(t *testing.T) {
	p := NewPlanner(0, Expert, rand.New(rand.NewSource(1)))

	v := centeredView()
	v.Opponents = []Opponent{{ID: 1, X: 700, Y: 360, Alive: true}}
	p.Update(100, v)
	if p.State() != Aggressive {
		t.Fatalf("state = %v, want Aggressive", p.State())
	}

	// Target dies; the next decision drops aggression.
	v.Opponents[0].Alive = false
	p.Update(100, v)
	if p.State() != Opportunistic {
		t.Errorf("state = %v after target died, want Opportunistic", p.State())
	}
}

func TestAttackKeepsTargetWhileAlive(t *testing.T) {
	p := NewPlanner(0, Expert, rand.New(rand.NewSource(1)))
	p.state = Aggressive

	v := centeredView()
	v.Opponents = []Opponent{
		{ID: 1, X: 700, Y: 360, Alive: true},
		{ID: 2, X: 900, Y: 360, Alive: true},
	}
	p.planAttack(v)
	if p.targetID != 1 {
		t.Fatalf("targetID = %d, want nearest opponent 1", p.targetID)
	}

	// Another opponent moves closer; the chase stays on the cached target.
	v.Opponents[1].X = 650
	p.planAttack(v)
	if p.targetID != 1 {
		t.Errorf("targetID = %d after a nearer opponent appeared, want 1", p.targetID)
	}

	// Only once the target dies does selection move on.
	v.Opponents[0].Alive = false
	p.planAttack(v)
	if p.targetID != 2 {
		t.Errorf("targetID = %d after target died, want 2", p.targetID)
	}
}
