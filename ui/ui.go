// Package ui is the presentation side of the game and the map editor: the
// capabilities the loops need from a window (Surface, Input, Audio, Clock)
// and renderers that draw game and editor state onto a Surface. Backends
// live in the window (raylib) and terminal (termbox) subpackages.
//
// Every drawing coordinate is a grid cell. Rows at and below GridHeight form
// the status bar.
package ui

import (
	"time"

	"serpens/game/types"
)

// StatusRows is the number of text rows below the grid.
const StatusRows = 2

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Key identifies a non-printable key, or KeyRune for text.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
	KeyRune
)

// KeyEvent is one buffered key press. Rune is set for KeyRune and KeySpace.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// Direction maps arrow keys to a direction.
func (e KeyEvent) Direction() (types.Direction, bool) {
	switch e.Key {
	case KeyUp:
		return types.Up, true
	case KeyDown:
		return types.Down, true
	case KeyLeft:
		return types.Left, true
	case KeyRight:
		return types.Right, true
	}
	return types.None, false
}

// Is reports whether e is the printable character r, ignoring case.
func (e KeyEvent) Is(r rune) bool {
	if e.Key != KeyRune {
		return false
	}
	return lower(e.Rune) == lower(r)
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// RuneEvent converts typed text to an event; space gets its own key.
func RuneEvent(r rune) KeyEvent {
	if r == ' ' {
		return KeyEvent{Key: KeySpace, Rune: ' '}
	}
	return KeyEvent{Key: KeyRune, Rune: r}
}

// Pointer is the mouse state since the previous call. Pressed fields are
// edges, Left is the held state.
type Pointer struct {
	Cell         types.Point
	InGrid       bool
	Left         bool
	LeftPressed  bool
	RightPressed bool
	Wheel        int
}

// Sound identifies a sample.
type Sound int

const (
	SoundEat Sound = iota
	SoundButton
)

// Surface draws one frame. Nothing is visible until Present.
type Surface interface {
	Clear(c Color)
	FillCell(p types.Point, c Color)
	// FillDisc draws a disc centred in the cell; scale 1 touches the edges.
	FillDisc(p types.Point, scale float32, c Color)
	// FillTriangle draws a wedge whose base is the cell edge facing toward
	// and whose apex is the middle of the opposite edge.
	FillTriangle(p types.Point, toward types.Direction, c Color)
	Outline(p types.Point, c Color)
	Text(p types.Point, s string, c Color)
	CenterText(row int, s string, c Color)
	Present()
}

// Input is a non-blocking source of user input.
type Input interface {
	// PollKeys drains the key presses buffered since the last call.
	PollKeys() []KeyEvent
	KeyDown(k Key) bool
	Pointer() Pointer
	// Closed reports that the user asked to close the window.
	Closed() bool
}

// Audio plays samples without blocking.
type Audio interface {
	Play(s Sound)
}

// Clock paces the loops.
type Clock interface {
	Sleep(d time.Duration)
	Now() time.Time
}

// Backend is everything a loop needs from the presentation layer.
type Backend interface {
	Surface
	Input
	Audio
	Clock
	Close() error
}

// Wedge returns the corners of the FillTriangle wedge in unit cell
// coordinates.
func Wedge(toward types.Direction) [3][2]float32 {
	switch toward {
	case types.Right:
		return [3][2]float32{{1, 0}, {1, 1}, {0, 0.5}}
	case types.Left:
		return [3][2]float32{{0, 0}, {0, 1}, {1, 0.5}}
	case types.Down:
		return [3][2]float32{{0, 1}, {1, 1}, {0.5, 0}}
	default:
		return [3][2]float32{{0, 0}, {1, 0}, {0.5, 1}}
	}
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
func (SystemClock) Now() time.Time        { return time.Now() }
