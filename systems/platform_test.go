package systems

import (
	"math"
	"testing"
)

func TestPlatformShrinkReachesFloorExactly(t *testing.T) {
	p := NewPlatform()
	if p.Radius != 300 {
		t.Fatalf("start radius = %v, want 300", p.Radius)
	}

	// 20 units/sec for 10 seconds lands exactly on the floor.
	for i := 0; i < 600; i++ {
		p.Update(1000.0 / 60.0)
	}
	if math.Abs(float64(p.Radius-100)) > 0.5 {
		t.Errorf("radius after 10s = %v, want ~100", p.Radius)
	}

	p.Update(5000)
	if p.Radius < 100 {
		t.Errorf("radius %v dropped below floor", p.Radius)
	}
}

func TestPlatformShrinkClampsLargeStep(t *testing.T) {
	p := NewPlatform()

	p.Update(60000)
	if p.Radius != 100 {
		t.Errorf("radius = %v, want clamped to 100", p.Radius)
	}
}

func TestPlatformShrinkMonotonic(t *testing.T) {
	p := NewPlatform()
	prev := p.Radius

	for i := 0; i < 100; i++ {
		p.Update(50)
		if p.Radius > prev {
			t.Fatalf("radius grew from %v to %v", prev, p.Radius)
		}
		prev = p.Radius
	}
}

func TestPlatformContains(t *testing.T) {
	p := NewPlatform()

	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"center", p.CenterX, p.CenterY, true},
		{"inside", p.CenterX + 200, p.CenterY, true},
		{"on edge", p.CenterX + p.Radius, p.CenterY, true},
		{"outside", p.CenterX + p.Radius + 1, p.CenterY, false},
		{"far corner", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPlatformReset(t *testing.T) {
	p := NewPlatform()
	p.Update(60000)

	p.Reset()
	if p.Radius != 300 {
		t.Errorf("radius after reset = %v, want 300", p.Radius)
	}
}
