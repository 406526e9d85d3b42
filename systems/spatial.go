// Package systems provides the simulation systems for the arena.
package systems

import (
	"github.com/mlange-42/ark/ecs"
)

// Grid provides O(1) neighbor lookups using a cell-based spatial grid.
// It is rebuilt fully every frame; entity counts are small enough that a
// full rebuild is cheaper than incremental maintenance.
type Grid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]ecs.Entity
}

// NewGrid creates a spatial grid covering the given world size.
func NewGrid(width, height, cellSize float32) *Grid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}

	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *Grid) Insert(e ecs.Entity, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], e)
}

// Neighbors appends every entity in the 3x3 block of cells centered on the
// given position to dst and returns the updated slice. The result may
// contain duplicates near the grid edge; callers dedupe pairs before
// resolving contacts.
func (g *Grid) Neighbors(dst []ecs.Entity, x, y float32) []ecs.Entity {
	centerCol := g.clampCol(int(x / g.cellSize))
	centerRow := g.clampRow(int(y / g.cellSize))

	for dc := -1; dc <= 1; dc++ {
		for dr := -1; dr <= 1; dr++ {
			col := g.clampCol(centerCol + dc)
			row := g.clampRow(centerRow + dr)
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	return dst
}

// cellIndex returns the flat index for a world position.
func (g *Grid) cellIndex(x, y float32) int {
	col := g.clampCol(int(x / g.cellSize))
	row := g.clampRow(int(y / g.cellSize))
	return row*g.cols + col
}

func (g *Grid) clampCol(col int) int {
	if col < 0 {
		return 0
	}
	if col >= g.cols {
		return g.cols - 1
	}
	return col
}

func (g *Grid) clampRow(row int) int {
	if row < 0 {
		return 0
	}
	if row >= g.rows {
		return g.rows - 1
	}
	return row
}
