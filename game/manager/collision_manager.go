package manager

import (
	"serpens/game/types"
	"serpens/game/world"
)

// CollisionType is what happens when the head enters a cell.
type CollisionType int

const (
	NoCollision CollisionType = iota
	FoodCollision
	SpecialCollision
	// FatalCollision covers walls and the snake's own body.
	FatalCollision
)

func (c CollisionType) String() string {
	switch c {
	case NoCollision:
		return "none"
	case FoodCollision:
		return "food"
	case SpecialCollision:
		return "special"
	case FatalCollision:
		return "fatal"
	default:
		return "unknown"
	}
}

type CollisionManager struct {
	grid *world.Grid[world.TileKind]
}

// NewCollisionManager classifies moves against the live grid.
func NewCollisionManager(grid *world.Grid[world.TileKind]) *CollisionManager {
	return &CollisionManager{grid: grid}
}

// CheckCollision classifies the destination before the move is committed,
// so the tail cell still counts as body.
func (cm *CollisionManager) CheckCollision(pos types.Point) CollisionType {
	switch cm.grid.At(pos) {
	case world.SnakeBody:
		return FatalCollision
	case world.Food:
		return FoodCollision
	case world.SpecialFood:
		return SpecialCollision
	default:
		return NoCollision
	}
}
