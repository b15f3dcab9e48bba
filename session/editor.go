package session

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"serpens/editor"
	"serpens/game/types"
	"serpens/ui"
)

// Editor is the map editor program.
type Editor struct {
	ui       ui.Backend
	renderer *ui.Renderer
	ed       *editor.Editor
	log      zerolog.Logger

	lastPointer types.Point
}

// NewEditor returns an editor session drawing on b.
func NewEditor(b ui.Backend, ed *editor.Editor, log zerolog.Logger) *Editor {
	return &Editor{
		ui:          b,
		renderer:    ui.NewRenderer(ui.Palette{}),
		ed:          ed,
		log:         log.With().Str("component", "session").Logger(),
		lastPointer: types.Point{X: -1, Y: -1},
	}
}

// Run edits until Escape, a closed window or a cancelled context.
func (s *Editor) Run(ctx context.Context) error {
	for {
		if checkQuit(ctx, s.ui) != nil {
			return nil
		}
		for _, ev := range s.ui.PollKeys() {
			done, err := s.handleKey(ctx, ev)
			if err != nil || done {
				return ignoreQuit(err)
			}
		}
		s.handlePointer()
		if s.ui.KeyDown(ui.KeySpace) {
			s.ed.Paint()
		}
		s.renderer.DrawEditor(s.ui, s.ed)
		s.ui.Sleep(editorDelay)
	}
}

func ignoreQuit(err error) error {
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

func (s *Editor) handleKey(ctx context.Context, ev ui.KeyEvent) (done bool, err error) {
	if d, ok := ev.Direction(); ok {
		s.ed.MoveCursor(d)
		return false, nil
	}
	switch {
	case ev.Key == ui.KeyEscape:
		return true, nil
	case ev.Key == ui.KeySpace:
		s.ed.Paint()
	case ev.Is('z'):
		s.ed.CycleBrush(1)
	case ev.Is('x'):
		// the editor shows the refusal as a notice
		_ = s.ed.ToggleAnchor()
	case ev.Is('s'):
		name, ok, err := prompt(ctx, s.ui, s.renderer, "Save map as", "")
		if err != nil || !ok {
			return false, err
		}
		_ = s.ed.Save(name)
	case ev.Is('d'):
		name, ok, err := prompt(ctx, s.ui, s.renderer, "Map to load", "")
		if err != nil || !ok {
			return false, err
		}
		_ = s.ed.Load(name)
	case ev.Is('h'):
		s.renderer.DrawHelp(s.ui)
		err := waitFor(ctx, s.ui, func() { s.renderer.DrawHelp(s.ui) }, func(ui.KeyEvent) bool { return true })
		return false, err
	}
	return false, nil
}

// handlePointer follows the mouse only when it moves, so arrow keys keep
// working while the pointer rests over the grid.
func (s *Editor) handlePointer() {
	ptr := s.ui.Pointer()
	if ptr.Wheel != 0 {
		s.ed.CycleBrush(ptr.Wheel)
	}
	if !ptr.InGrid {
		return
	}
	if ptr.Cell != s.lastPointer {
		s.lastPointer = ptr.Cell
		s.ed.SetCursor(ptr.Cell)
	}
	if ptr.Left {
		s.ed.Paint()
	}
	if ptr.RightPressed {
		_ = s.ed.ToggleAnchor()
	}
}
