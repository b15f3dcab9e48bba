// Package mapfile reads and writes the plain-text map format shared by the
// game and the map editor, and manages the maps directory.
package mapfile

import (
	"serpens/game/types"
	"serpens/game/world"
)

// Tile is a cell kind in the editor's model of a map.
type Tile uint8

const (
	Empty Tile = iota
	Wall
	Spawn
	Infertile
)

// NumTiles is the number of editor tile kinds, used to cycle brushes.
const NumTiles = 4

func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Spawn:
		return "spawn"
	case Infertile:
		return "infertile"
	default:
		return "unknown"
	}
}

// Layout is a decoded map: the tile grid plus the spawn marker position.
// At most one cell holds Spawn.
type Layout struct {
	Tiles world.Grid[Tile]

	spawn    types.Point
	hasSpawn bool
}

// NewLayout returns an all-empty layout without a spawn.
func NewLayout() *Layout {
	return &Layout{}
}

// Spawn returns the spawn position, if any.
func (l *Layout) Spawn() (types.Point, bool) {
	return l.spawn, l.hasSpawn
}

// Get returns the tile at p.
func (l *Layout) Get(p types.Point) Tile {
	return l.Tiles.At(p)
}

// Set stores t at p and keeps the spawn bookkeeping consistent: placing a
// Spawn clears the previous one, overwriting the spawn cell forgets it.
// It reports the previous spawn position when one was cleared.
func (l *Layout) Set(p types.Point, t Tile) (cleared types.Point, ok bool) {
	if t == Spawn {
		if l.hasSpawn && l.spawn != p && l.Tiles.At(l.spawn) == Spawn {
			l.Tiles.Put(l.spawn, Empty)
			cleared, ok = l.spawn, true
		}
		l.spawn, l.hasSpawn = p, true
	} else if l.hasSpawn && l.spawn == p {
		l.hasSpawn = false
	}
	l.Tiles.Put(p, t)
	return cleared, ok
}

// Clone returns an independent copy.
func (l *Layout) Clone() *Layout {
	c := *l
	return &c
}

// Playfield converts the layout into the game's static occupancy grid.
// Walls become immovable snake segments and the spawn cell becomes empty.
func (l *Layout) Playfield() world.Grid[world.TileKind] {
	var g world.Grid[world.TileKind]
	l.Tiles.Each(func(p types.Point, t Tile) {
		g.Put(p, t.Base())
	})
	return g
}

// Base maps an editor tile onto the game's tile kinds.
func (t Tile) Base() world.TileKind {
	switch t {
	case Wall:
		return world.SnakeBody
	case Infertile:
		return world.Infertile
	default:
		return world.Empty
	}
}
