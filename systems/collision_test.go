package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mkrall/crowdctl/components"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   components.Position
		ar, br float32
		want   bool
	}{
		{"overlapping", components.Position{X: 0, Y: 0}, components.Position{X: 30, Y: 0}, 20, 20, true},
		{"touching exactly", components.Position{X: 0, Y: 0}, components.Position{X: 40, Y: 0}, 20, 20, false},
		{"separate", components.Position{X: 0, Y: 0}, components.Position{X: 100, Y: 0}, 20, 20, false},
		{"diagonal overlap", components.Position{X: 0, Y: 0}, components.Position{X: 20, Y: 20}, 20, 20, true},
		{"concentric", components.Position{X: 5, Y: 5}, components.Position{X: 5, Y: 5}, 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.a, tt.ar, tt.b, tt.br); got != tt.want {
				t.Errorf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveSeparatesOverlap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// Overlapping by 5 along the x axis, at rest.
	aPos := components.Position{X: 100, Y: 100}
	bPos := components.Position{X: 135, Y: 100}
	aVel := components.Velocity{}
	bVel := components.Velocity{}

	Resolve(&aPos, &bPos, &aVel, &bVel, 20, 20, 1, rng)

	// Positional correction: 5 * 0.6 = 3 on each side.
	if math.Abs(float64(aPos.X-97)) > 0.01 {
		t.Errorf("aPos.X = %v, want 97", aPos.X)
	}
	if math.Abs(float64(bPos.X-138)) > 0.01 {
		t.Errorf("bPos.X = %v, want 138", bPos.X)
	}

	// Push force drives the pair apart along the normal.
	if aVel.X >= 0 {
		t.Errorf("aVel.X = %v, want negative push", aVel.X)
	}
	if bVel.X <= 0 {
		t.Errorf("bVel.X = %v, want positive push", bVel.X)
	}

	// Tangential kick with opposite signs.
	if aVel.Y == 0 || bVel.Y == 0 {
		t.Error("expected nonzero tangential velocity on both bodies")
	}
	if (aVel.Y > 0) == (bVel.Y > 0) {
		t.Errorf("tangential kicks should oppose: aVel.Y=%v bVel.Y=%v", aVel.Y, bVel.Y)
	}
}

func TestResolveSkipsSeparatingPair(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	aPos := components.Position{X: 100, Y: 100}
	bPos := components.Position{X: 135, Y: 100}
	aVel := components.Velocity{X: -100}
	bVel := components.Velocity{X: 100}

	Resolve(&aPos, &bPos, &aVel, &bVel, 20, 20, 1, rng)

	// Correction still applies, but the impulses do not.
	if aVel.X != -100 || bVel.X != 100 {
		t.Errorf("separating pair got impulses: aVel=%v bVel=%v", aVel, bVel)
	}
	if aPos.X >= 100 || bPos.X <= 135 {
		t.Errorf("positional correction missing: aPos.X=%v bPos.X=%v", aPos.X, bPos.X)
	}
}

func TestResolveCoincidentCenters(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	aPos := components.Position{X: 100, Y: 100}
	bPos := components.Position{X: 100, Y: 100}
	aVel := components.Velocity{}
	bVel := components.Velocity{}

	Resolve(&aPos, &bPos, &aVel, &bVel, 20, 20, 1, rng)

	dx := bPos.X - aPos.X
	dy := bPos.Y - aPos.Y
	if dx == 0 && dy == 0 {
		t.Error("coincident pair did not separate")
	}
}

func TestResolveHitstopScalesForces(t *testing.T) {
	run := func(timeMult float32) float32 {
		rng := rand.New(rand.NewSource(1))
		aPos := components.Position{X: 100, Y: 100}
		bPos := components.Position{X: 135, Y: 100}
		aVel := components.Velocity{}
		bVel := components.Velocity{}
		Resolve(&aPos, &bPos, &aVel, &bVel, 20, 20, timeMult, rng)
		return bVel.X
	}

	full := run(1)
	frozen := run(0.1)
	if math.Abs(float64(frozen-full*0.1)) > 0.01 {
		t.Errorf("push at 0.1 time mult = %v, want %v", frozen, full*0.1)
	}
}

func TestImpact(t *testing.T) {
	tests := []struct {
		name string
		a, b components.Velocity
		want float32
	}{
		{"at rest", components.Velocity{}, components.Velocity{}, 0},
		{"moderate", components.Velocity{X: 300}, components.Velocity{X: -300}, 0.6},
		{"clamped", components.Velocity{X: 800}, components.Velocity{X: -800}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Impact(tt.a, tt.b)
			if math.Abs(float64(got-tt.want)) > 0.001 {
				t.Errorf("Impact = %v, want %v", got, tt.want)
			}
		})
	}
}
