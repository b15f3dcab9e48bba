// Package terminal is the termbox backend for playing in a text terminal.
package terminal

import (
	"sync"
	"unicode/utf8"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"serpens/game/types"
	"serpens/ui"
)

// A grid cell is two terminal columns wide so that cells look square.
const termCellWidth = 2

var _ ui.Backend = (*Terminal)(nil)

// Terminal draws with termbox in 256-color mode. A goroutine reads terminal
// events into buffers that the loop drains.
type Terminal struct {
	ui.SystemClock

	mu      sync.Mutex
	keys    []ui.KeyEvent
	pointer ui.Pointer
	closed  bool

	wg  sync.WaitGroup
	log zerolog.Logger
}

// Open takes over the terminal until Close.
func Open(log zerolog.Logger) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, errors.Wrap(err, "init terminal")
	}
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	termbox.SetOutputMode(termbox.Output256)

	t := &Terminal{log: log.With().Str("component", "terminal").Logger()}
	t.wg.Add(1)
	go t.poll()
	return t, nil
}

func (t *Terminal) poll() {
	defer t.wg.Done()
	for {
		ev := termbox.PollEvent()
		t.mu.Lock()
		switch ev.Type {
		case termbox.EventInterrupt:
			t.mu.Unlock()
			return
		case termbox.EventKey:
			if ev.Key == termbox.KeyCtrlC {
				t.closed = true
			} else if k, ok := convertKey(ev); ok {
				t.keys = append(t.keys, k)
			}
		case termbox.EventMouse:
			t.pointer = applyMouse(t.pointer, ev)
		case termbox.EventError:
			t.log.Error().Err(ev.Err).Msg("terminal input")
		}
		t.mu.Unlock()
	}
}

func convertKey(ev termbox.Event) (ui.KeyEvent, bool) {
	if ev.Ch != 0 {
		return ui.RuneEvent(ev.Ch), true
	}
	switch ev.Key {
	case termbox.KeyArrowUp:
		return ui.KeyEvent{Key: ui.KeyUp}, true
	case termbox.KeyArrowDown:
		return ui.KeyEvent{Key: ui.KeyDown}, true
	case termbox.KeyArrowLeft:
		return ui.KeyEvent{Key: ui.KeyLeft}, true
	case termbox.KeyArrowRight:
		return ui.KeyEvent{Key: ui.KeyRight}, true
	case termbox.KeyEnter:
		return ui.KeyEvent{Key: ui.KeyEnter}, true
	case termbox.KeyEsc:
		return ui.KeyEvent{Key: ui.KeyEscape}, true
	case termbox.KeySpace:
		return ui.RuneEvent(' '), true
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return ui.KeyEvent{Key: ui.KeyBackspace}, true
	}
	return ui.KeyEvent{}, false
}

// applyMouse folds a mouse event into the pointer state. Edges accumulate
// until Pointer is read.
func applyMouse(p ui.Pointer, ev termbox.Event) ui.Pointer {
	p.Cell = types.Point{X: ev.MouseX / termCellWidth, Y: ev.MouseY}
	p.InGrid = p.Cell.InBounds(types.GridWidth, types.GridHeight)
	switch ev.Key {
	case termbox.MouseLeft:
		if !p.Left {
			p.LeftPressed = true
		}
		p.Left = true
	case termbox.MouseRight:
		p.RightPressed = true
	case termbox.MouseRelease:
		p.Left = false
	case termbox.MouseWheelUp:
		p.Wheel++
	case termbox.MouseWheelDown:
		p.Wheel--
	}
	return p
}

// attr256 maps a color onto the 6x6x6 cube of the 256-color palette.
// termbox attributes are the palette index plus one.
func attr256(c ui.Color) termbox.Attribute {
	r, g, b := int(c.R)*6/256, int(c.G)*6/256, int(c.B)*6/256
	return termbox.Attribute(16 + 36*r + 6*g + b + 1)
}

// put writes one character, keeping the background already there.
func (t *Terminal) put(x, y int, ch rune, fg termbox.Attribute) {
	w, h := termbox.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	bg := termbox.CellBuffer()[y*w+x].Bg
	termbox.SetCell(x, y, ch, fg, bg)
}

func (t *Terminal) putCell(p types.Point, left, right rune, fg termbox.Attribute) {
	t.put(p.X*termCellWidth, p.Y, left, fg)
	t.put(p.X*termCellWidth+1, p.Y, right, fg)
}

func (t *Terminal) Clear(c ui.Color) {
	bg := attr256(c)
	termbox.Clear(bg, bg)
}

func (t *Terminal) FillCell(p types.Point, c ui.Color) {
	col := attr256(c)
	for i := 0; i < termCellWidth; i++ {
		termbox.SetCell(p.X*termCellWidth+i, p.Y, ' ', col, col)
	}
}

func (t *Terminal) FillDisc(p types.Point, scale float32, c ui.Color) {
	if scale >= 0.9 {
		t.putCell(p, '(', ')', attr256(c))
		return
	}
	t.putCell(p, '<', '>', attr256(c))
}

func (t *Terminal) FillTriangle(p types.Point, toward types.Direction, c ui.Color) {
	var ch rune
	switch toward {
	case types.Right:
		ch = '<'
	case types.Left:
		ch = '>'
	case types.Down:
		ch = '^'
	default:
		ch = 'v'
	}
	t.putCell(p, ch, ch, attr256(c))
}

func (t *Terminal) Outline(p types.Point, c ui.Color) {
	t.putCell(p, '[', ']', attr256(c))
}

func (t *Terminal) Text(p types.Point, s string, c ui.Color) {
	x, fg := p.X*termCellWidth, attr256(c)
	for _, r := range s {
		t.put(x, p.Y, r, fg)
		x++
	}
}

func (t *Terminal) CenterText(row int, s string, c ui.Color) {
	x := (types.GridWidth*termCellWidth - utf8.RuneCountInString(s)) / 2
	fg := attr256(c)
	for _, r := range s {
		t.put(x, row, r, fg)
		x++
	}
}

func (t *Terminal) Present() {
	if err := termbox.Flush(); err != nil {
		t.log.Error().Err(err).Msg("flush")
	}
}

func (t *Terminal) PollKeys() []ui.KeyEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := t.keys
	t.keys = nil
	return keys
}

// KeyDown is always false: terminals report presses, not key state.
func (t *Terminal) KeyDown(ui.Key) bool { return false }

func (t *Terminal) Pointer() ui.Pointer {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.pointer
	t.pointer.LeftPressed = false
	t.pointer.RightPressed = false
	t.pointer.Wheel = 0
	return p
}

func (t *Terminal) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// Play is a no-op; the terminal has no audio.
func (t *Terminal) Play(ui.Sound) {}

// Close stops the input goroutine and restores the terminal.
func (t *Terminal) Close() error {
	termbox.Interrupt()
	t.wg.Wait()
	termbox.Close()
	return nil
}
