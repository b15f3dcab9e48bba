// Package session runs the frame-driven loops of the two programs: the
// game menu, rounds with their blocking pause and loss screens, the text
// prompt, and the map editor. Each loop polls input once per frame and
// stops when the context is cancelled or the window is closed.
package session

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"serpens/ui"
)

// ErrQuit is returned from inner loops when the program should exit.
var ErrQuit = errors.New("quit requested")

// MaxNameLen is the longest map name the prompt accepts.
const MaxNameLen = 29

const (
	menuDelay   = 20 * time.Millisecond
	waitDelay   = 20 * time.Millisecond
	editorDelay = 15 * time.Millisecond
)

func checkQuit(ctx context.Context, in ui.Input) error {
	if ctx.Err() != nil || in.Closed() {
		return ErrQuit
	}
	return nil
}

// waitFor redraws and polls until accept matches a key press. Other keys
// are dropped.
func waitFor(ctx context.Context, b ui.Backend, redraw func(), accept func(ui.KeyEvent) bool) error {
	for {
		if err := checkQuit(ctx, b); err != nil {
			return err
		}
		for _, ev := range b.PollKeys() {
			if accept(ev) {
				return nil
			}
		}
		redraw()
		b.Sleep(waitDelay)
	}
}

// prompt reads a line of printable ASCII. It returns false when the user
// cancels with Escape.
func prompt(ctx context.Context, b ui.Backend, r *ui.Renderer, title, notice string) (string, bool, error) {
	var text []rune
	for {
		if err := checkQuit(ctx, b); err != nil {
			return "", false, err
		}
		for _, ev := range b.PollKeys() {
			switch ev.Key {
			case ui.KeyEnter:
				return string(text), true, nil
			case ui.KeyEscape:
				return "", false, nil
			case ui.KeyBackspace:
				if len(text) > 0 {
					text = text[:len(text)-1]
				}
			case ui.KeyRune, ui.KeySpace:
				if ev.Rune >= 32 && ev.Rune <= 126 && len(text) < MaxNameLen {
					text = append(text, ev.Rune)
				}
			}
		}
		r.DrawPrompt(b, title, string(text), notice)
		b.Sleep(waitDelay)
	}
}
