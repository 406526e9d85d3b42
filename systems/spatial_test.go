package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/mkrall/crowdctl/components"
)

func newTestEntities(n int) (*ecs.World, []ecs.Entity) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)

	entities := make([]ecs.Entity, 0, n)
	for i := 0; i < n; i++ {
		pos := components.Position{}
		entities = append(entities, mapper.NewEntity(&pos))
	}
	return world, entities
}

func contains(list []ecs.Entity, e ecs.Entity) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

func TestGridNeighborsFindsNearby(t *testing.T) {
	_, entities := newTestEntities(3)
	g := NewGrid(1280, 720, 64)

	g.Insert(entities[0], 100, 100)
	g.Insert(entities[1], 110, 105)  // same cell
	g.Insert(entities[2], 1200, 700) // far away

	got := g.Neighbors(nil, 100, 100)
	if !contains(got, entities[0]) || !contains(got, entities[1]) {
		t.Errorf("nearby entities missing from %v", got)
	}
	if contains(got, entities[2]) {
		t.Error("distant entity reported as neighbor")
	}
}

func TestGridNeighborsAdjacentCell(t *testing.T) {
	_, entities := newTestEntities(1)
	g := NewGrid(1280, 720, 64)

	// Just over a cell boundary from the query point.
	g.Insert(entities[0], 130, 100)

	got := g.Neighbors(nil, 125, 100)
	if !contains(got, entities[0]) {
		t.Error("adjacent-cell entity not found")
	}
}

func TestGridClear(t *testing.T) {
	_, entities := newTestEntities(1)
	g := NewGrid(1280, 720, 64)

	g.Insert(entities[0], 100, 100)
	g.Clear()

	if got := g.Neighbors(nil, 100, 100); len(got) != 0 {
		t.Errorf("neighbors after clear = %v, want none", got)
	}
}

func TestGridClampsOutOfBounds(t *testing.T) {
	_, entities := newTestEntities(1)
	g := NewGrid(1280, 720, 64)

	// Positions past the edges clamp into the border cells.
	g.Insert(entities[0], -100, 9000)

	got := g.Neighbors(nil, 0, 719)
	if !contains(got, entities[0]) {
		t.Error("out-of-bounds entity not clamped into border cell")
	}
}
