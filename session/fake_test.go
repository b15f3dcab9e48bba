package session

import (
	"context"
	"strings"
	"time"

	"serpens/game/types"
	"serpens/ui"
)

// fakeUI plays back one batch of key presses per PollKeys call and
// cancels the session when the script runs out.
type fakeUI struct {
	script   [][]ui.KeyEvent
	pointers []ui.Pointer
	cancel   context.CancelFunc

	polls   int
	frame   []string
	frames  [][]string
	played  []ui.Sound
	slept   time.Duration
	now     time.Time
	keyDown bool
}

func newFakeUI(cancel context.CancelFunc, script ...[]ui.KeyEvent) *fakeUI {
	return &fakeUI{script: script, cancel: cancel, now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func keys(evs ...ui.KeyEvent) []ui.KeyEvent { return evs }

func key(k ui.Key) ui.KeyEvent { return ui.KeyEvent{Key: k} }

func text(s string) []ui.KeyEvent {
	var evs []ui.KeyEvent
	for _, r := range s {
		evs = append(evs, ui.RuneEvent(r))
	}
	return evs
}

func (f *fakeUI) PollKeys() []ui.KeyEvent {
	if f.polls >= len(f.script) {
		f.cancel()
		return nil
	}
	evs := f.script[f.polls]
	f.polls++
	return evs
}

func (f *fakeUI) KeyDown(ui.Key) bool { return f.keyDown }

func (f *fakeUI) Pointer() ui.Pointer {
	if len(f.pointers) == 0 {
		return ui.Pointer{}
	}
	p := f.pointers[0]
	f.pointers = f.pointers[1:]
	return p
}

func (f *fakeUI) Closed() bool { return false }

func (f *fakeUI) Play(s ui.Sound) { f.played = append(f.played, s) }

func (f *fakeUI) Sleep(d time.Duration) {
	f.slept += d
	f.now = f.now.Add(d)
}

func (f *fakeUI) Now() time.Time { return f.now }

func (f *fakeUI) Close() error { return nil }

func (f *fakeUI) Clear(ui.Color) { f.frame = f.frame[:0] }
func (f *fakeUI) FillCell(types.Point, ui.Color) {}
func (f *fakeUI) FillDisc(types.Point, float32, ui.Color) {}
func (f *fakeUI) FillTriangle(types.Point, types.Direction, ui.Color) {}
func (f *fakeUI) Outline(types.Point, ui.Color) {}
func (f *fakeUI) Text(_ types.Point, s string, _ ui.Color) { f.frame = append(f.frame, s) }
func (f *fakeUI) CenterText(_ int, s string, _ ui.Color) { f.frame = append(f.frame, s) }

func (f *fakeUI) Present() {
	f.frames = append(f.frames, append([]string(nil), f.frame...))
	f.frame = f.frame[:0]
}

// sawText reports whether any presented frame contained sub.
func (f *fakeUI) sawText(sub string) bool {
	for _, fr := range f.frames {
		for _, s := range fr {
			if strings.Contains(s, sub) {
				return true
			}
		}
	}
	return false
}

func (f *fakeUI) countSound(s ui.Sound) int {
	n := 0
	for _, p := range f.played {
		if p == s {
			n++
		}
	}
	return n
}
