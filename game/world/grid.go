package world

import (
	"fmt"

	"serpens/game/types"
)

// Grid is a fixed 24x30 row-major matrix of tile kinds. The zero value is a
// grid of zero-valued kinds. Grid is a value type: assignment copies it.
type Grid[K ~uint8] struct {
	cells [types.GridHeight][types.GridWidth]K
}

// Width returns the number of columns.
func (g *Grid[K]) Width() int { return types.GridWidth }

// Height returns the number of rows.
func (g *Grid[K]) Height() int { return types.GridHeight }

// Get returns the kind at (x, y). It panics outside the grid.
func (g *Grid[K]) Get(x, y int) K {
	g.check(x, y)
	return g.cells[y][x]
}

// Set stores kind at (x, y). It panics outside the grid.
func (g *Grid[K]) Set(x, y int, kind K) {
	g.check(x, y)
	g.cells[y][x] = kind
}

// At is Get addressed by point.
func (g *Grid[K]) At(p types.Point) K {
	return g.Get(p.X, p.Y)
}

// Put is Set addressed by point.
func (g *Grid[K]) Put(p types.Point, kind K) {
	g.Set(p.X, p.Y, kind)
}

// Fill sets every cell to kind.
func (g *Grid[K]) Fill(kind K) {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = kind
		}
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid[K]) Each(fn func(p types.Point, kind K)) {
	for y := range g.cells {
		for x := range g.cells[y] {
			fn(types.Point{X: x, Y: y}, g.cells[y][x])
		}
	}
}

// Count returns how many cells hold kind.
func (g *Grid[K]) Count(kind K) int {
	n := 0
	g.Each(func(_ types.Point, k K) {
		if k == kind {
			n++
		}
	})
	return n
}

func (g *Grid[K]) check(x, y int) {
	if x < 0 || x >= types.GridWidth || y < 0 || y >= types.GridHeight {
		panic(fmt.Sprintf("world: cell (%d,%d) outside %dx%d grid", x, y, types.GridWidth, types.GridHeight))
	}
}
