package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestShakeHitstopScalesDt(t *testing.T) {
	s := NewShake(rand.New(rand.NewSource(1)))

	s.Hitstop(100)
	got := s.Update(16)
	if math.Abs(float64(got-1.6)) > 0.001 {
		t.Errorf("scaled dt = %v, want 1.6", got)
	}

	// Once the window lapses, dt passes through unchanged.
	s.Update(100)
	if got := s.Update(16); got != 16 {
		t.Errorf("dt after hitstop = %v, want 16", got)
	}
}

func TestShakeTraumaClampAndDecay(t *testing.T) {
	s := NewShake(rand.New(rand.NewSource(1)))

	s.AddTrauma(0.8)
	s.AddTrauma(0.8)
	if s.Trauma != 1 {
		t.Fatalf("trauma = %v, want clamped to 1", s.Trauma)
	}

	// 1.5/sec decay drains full trauma within a second.
	s.Update(1000)
	if s.Trauma != 0 {
		t.Errorf("trauma = %v after 1s, want 0", s.Trauma)
	}
}

func TestShakeOffsetZeroWhenCalm(t *testing.T) {
	s := NewShake(rand.New(rand.NewSource(1)))

	if x, y := s.Offset(); x != 0 || y != 0 {
		t.Errorf("offset = (%v, %v) with no trauma, want (0, 0)", x, y)
	}
}

func TestShakeOffsetNonzeroUnderTrauma(t *testing.T) {
	s := NewShake(rand.New(rand.NewSource(1)))

	s.AddTrauma(1)
	s.Update(16)

	x, y := s.Offset()
	if x == 0 && y == 0 {
		t.Error("expected nonzero offset at full trauma")
	}
}

func TestShakeReset(t *testing.T) {
	s := NewShake(rand.New(rand.NewSource(1)))

	s.AddTrauma(1)
	s.Hitstop(500)
	s.Reset()

	if s.Trauma != 0 {
		t.Errorf("trauma = %v after reset, want 0", s.Trauma)
	}
	if got := s.Update(16); got != 16 {
		t.Errorf("dt = %v after reset, want 16 (no hitstop)", got)
	}
}
