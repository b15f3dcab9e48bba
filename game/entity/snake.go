package entity

import (
	"github.com/gammazero/deque"

	"serpens/game/types"
)

// Snake is the ordered body of the player's snake. The tail is the front of
// the queue and the head is the back, so moving pushes at the back and
// drops from the front.
type Snake struct {
	body      deque.Deque[types.Point]
	Direction types.Point
	// Extend is the pending growth: while positive, Step keeps the tail.
	Extend int
}

// NewSnake returns a stationary one-segment snake at startPos.
func NewSnake(startPos types.Point, extend int) *Snake {
	s := &Snake{Extend: extend}
	s.body.PushBack(startPos)
	return s
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return s.body.Len()
}

// GetHead returns the most recently added segment.
func (s *Snake) GetHead() types.Point {
	return s.body.Back()
}

// GetTail returns the oldest segment.
func (s *Snake) GetTail() types.Point {
	return s.body.Front()
}

// At returns segment i counted from the tail.
func (s *Snake) At(i int) types.Point {
	return s.body.At(i)
}

// Body returns a copy of the segments from tail to head.
func (s *Snake) Body() []types.Point {
	out := make([]types.Point, s.body.Len())
	for i := range out {
		out[i] = s.body.At(i)
	}
	return out
}

// Moving reports whether the snake has a velocity.
func (s *Snake) Moving() bool {
	return !s.Direction.IsZero()
}

// SetDirection changes the velocity unless dir lies on the current axis of
// travel: reversing is refused and pressing the current direction changes
// nothing. A stationary snake accepts any direction. It reports whether
// the velocity changed.
func (s *Snake) SetDirection(dir types.Point) bool {
	if dir.IsZero() {
		return false
	}
	if (dir.X != 0 && s.Direction.X != 0) || (dir.Y != 0 && s.Direction.Y != 0) {
		return false
	}
	s.Direction = dir
	return true
}

// NextHead returns where the head goes next, wrapped onto the torus.
func (s *Snake) NextHead(width, height int) types.Point {
	return s.GetHead().Add(s.Direction).Wrap(width, height)
}

// Step appends newHead. With no pending growth the tail is dropped and
// returned with removed set; otherwise Extend is decremented.
func (s *Snake) Step(newHead types.Point) (tail types.Point, removed bool) {
	if s.Extend == 0 {
		tail = s.body.PopFront()
		removed = true
	} else {
		s.Extend--
	}
	s.body.PushBack(newHead)
	return tail, removed
}
