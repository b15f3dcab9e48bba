package world

// TileKind is the occupancy of one cell of the play field.
type TileKind uint8

const (
	Empty TileKind = iota
	// SnakeBody covers both the snake and static walls; walls are
	// immobile snake segments as far as collisions are concerned.
	SnakeBody
	Food
	// Infertile cells are walkable but never receive food.
	Infertile
	SpecialFood
)

func (k TileKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case SnakeBody:
		return "snake"
	case Food:
		return "food"
	case Infertile:
		return "infertile"
	case SpecialFood:
		return "special"
	default:
		return "unknown"
	}
}

// IsStatic reports whether k can appear in a base map.
func (k TileKind) IsStatic() bool {
	return k == Empty || k == SnakeBody || k == Infertile
}
