package types

// Grid dimensions shared by the game and the map editor.
const (
	GridWidth  = 24
	GridHeight = 30
)

// Point is a cell coordinate, or a velocity when used as a step.
type Point struct {
	X, Y int
}

// Add returns p moved by d without wrapping.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Wrap folds p back onto a width x height torus.
func (p Point) Wrap(width, height int) Point {
	x := p.X % width
	if x < 0 {
		x += width
	}
	y := p.Y % height
	if y < 0 {
		y += height
	}
	return Point{X: x, Y: y}
}

// InBounds reports whether p addresses a cell of a width x height grid.
func (p Point) InBounds(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// IsZero reports whether p is the stationary velocity.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Direction is a cardinal direction
type Direction int

const (
	None Direction = iota
	Up
	Right
	Down
	Left
)

// ToPoint converts a Direction to its unit step.
func (d Direction) ToPoint() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return None
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}
