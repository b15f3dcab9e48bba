// Package window is the raylib backend: a desktop window with keyboard,
// mouse and audio.
package window

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"serpens/game/types"
	"serpens/ui"
)

// Options configures the raylib backend.
type Options struct {
	Title        string
	CellSize     int
	StatusHeight int
	// SoundDir holds bite.wav and button.wav. Missing files are skipped.
	SoundDir string
	// Music is an optional looping background track.
	Music string
}

var soundFiles = map[ui.Sound]string{
	ui.SoundEat:    "bite.wav",
	ui.SoundButton: "button.wav",
}

var rlKeys = map[int32]ui.Key{
	rl.KeyUp:        ui.KeyUp,
	rl.KeyDown:      ui.KeyDown,
	rl.KeyLeft:      ui.KeyLeft,
	rl.KeyRight:     ui.KeyRight,
	rl.KeyEnter:     ui.KeyEnter,
	rl.KeyKpEnter:   ui.KeyEnter,
	rl.KeyEscape:    ui.KeyEscape,
	rl.KeyBackspace: ui.KeyBackspace,
}

var _ ui.Backend = (*Window)(nil)

// Window is a raylib window. Drawing calls are queued and replayed between
// BeginDrawing and EndDrawing on Present.
type Window struct {
	ui.SystemClock

	cell   int32
	width  int32
	height int32
	frame  []func()

	audio    bool
	sounds   map[ui.Sound]rl.Sound
	music    rl.Music
	hasMusic bool

	log zerolog.Logger
}

// Open opens a window sized for the grid plus the status bar.
func Open(opts Options, log zerolog.Logger) (*Window, error) {
	if opts.CellSize <= 0 {
		return nil, errors.Errorf("invalid cell size %d", opts.CellSize)
	}
	w := &Window{
		cell:   int32(opts.CellSize),
		width:  int32(opts.CellSize * types.GridWidth),
		height: int32(opts.CellSize*types.GridHeight + opts.StatusHeight),
		sounds: make(map[ui.Sound]rl.Sound),
		log:    log.With().Str("component", "window").Logger(),
	}

	rl.InitWindow(w.width, w.height, opts.Title)
	if !rl.IsWindowReady() {
		return nil, errors.New("could not open window")
	}
	// Escape is a game key, not a close request.
	rl.SetExitKey(0)

	rl.InitAudioDevice()
	w.audio = rl.IsAudioDeviceReady()
	if !w.audio {
		w.log.Warn().Msg("audio device unavailable, running silent")
		return w, nil
	}
	for id, name := range soundFiles {
		path := filepath.Join(opts.SoundDir, name)
		if _, err := os.Stat(path); err != nil {
			w.log.Debug().Str("path", path).Msg("sound not found")
			continue
		}
		w.sounds[id] = rl.LoadSound(path)
	}
	if opts.Music != "" {
		if _, err := os.Stat(opts.Music); err != nil {
			w.log.Warn().Err(err).Msg("music not loaded")
		} else {
			w.music = rl.LoadMusicStream(opts.Music)
			rl.PlayMusicStream(w.music)
			w.hasMusic = true
		}
	}
	return w, nil
}

func toRL(c ui.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}

func (w *Window) queue(f func()) {
	w.frame = append(w.frame, f)
}

func (w *Window) Clear(c ui.Color) {
	w.frame = w.frame[:0]
	col := toRL(c)
	w.queue(func() { rl.ClearBackground(col) })
}

func (w *Window) FillCell(p types.Point, c ui.Color) {
	x, y, col := int32(p.X)*w.cell, int32(p.Y)*w.cell, toRL(c)
	w.queue(func() { rl.DrawRectangle(x, y, w.cell, w.cell, col) })
}

func (w *Window) FillDisc(p types.Point, scale float32, c ui.Color) {
	half := w.cell / 2
	x, y, col := int32(p.X)*w.cell+half, int32(p.Y)*w.cell+half, toRL(c)
	radius := scale * float32(w.cell) / 2
	w.queue(func() { rl.DrawCircle(x, y, radius, col) })
}

func (w *Window) FillTriangle(p types.Point, toward types.Direction, c ui.Color) {
	var v [3]rl.Vector2
	for i, u := range ui.Wedge(toward) {
		v[i] = rl.Vector2{
			X: float32(int32(p.X)*w.cell) + u[0]*float32(w.cell),
			Y: float32(int32(p.Y)*w.cell) + u[1]*float32(w.cell),
		}
	}
	// raylib only fills triangles wound counter-clockwise on screen.
	if cross(v[0], v[1], v[2]) > 0 {
		v[1], v[2] = v[2], v[1]
	}
	col := toRL(c)
	w.queue(func() { rl.DrawTriangle(v[0], v[1], v[2], col) })
}

func cross(a, b, c rl.Vector2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func (w *Window) Outline(p types.Point, c ui.Color) {
	x, y, col := int32(p.X)*w.cell, int32(p.Y)*w.cell, toRL(c)
	w.queue(func() { rl.DrawRectangleLines(x, y, w.cell, w.cell, col) })
}

func (w *Window) fontSize() int32 {
	if size := w.cell * 3 / 4; size > 10 {
		return size
	}
	return 10
}

func (w *Window) Text(p types.Point, s string, c ui.Color) {
	size := w.fontSize()
	x := int32(p.X)*w.cell + 2
	y := int32(p.Y)*w.cell + (w.cell-size)/2
	col := toRL(c)
	w.queue(func() { rl.DrawText(s, x, y, size, col) })
}

func (w *Window) CenterText(row int, s string, c ui.Color) {
	size := w.fontSize()
	y := int32(row)*w.cell + (w.cell-size)/2
	col := toRL(c)
	w.queue(func() {
		x := (w.width - rl.MeasureText(s, size)) / 2
		rl.DrawText(s, x, y, size, col)
	})
}

func (w *Window) Present() {
	if w.hasMusic {
		rl.UpdateMusicStream(w.music)
	}
	rl.BeginDrawing()
	for _, f := range w.frame {
		f()
	}
	rl.EndDrawing()
	w.frame = w.frame[:0]
}

func (w *Window) PollKeys() []ui.KeyEvent {
	var events []ui.KeyEvent
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		if key, ok := rlKeys[k]; ok {
			events = append(events, ui.KeyEvent{Key: key})
		}
	}
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		events = append(events, ui.RuneEvent(rune(ch)))
	}
	return events
}

func (w *Window) KeyDown(k ui.Key) bool {
	if k == ui.KeySpace {
		return rl.IsKeyDown(rl.KeySpace)
	}
	for code, key := range rlKeys {
		if key == k && rl.IsKeyDown(code) {
			return true
		}
	}
	return false
}

func (w *Window) Pointer() ui.Pointer {
	mx, my := rl.GetMouseX(), rl.GetMouseY()
	p := ui.Pointer{
		Cell:         types.Point{X: int(mx / w.cell), Y: int(my / w.cell)},
		Left:         rl.IsMouseButtonDown(rl.MouseButtonLeft),
		LeftPressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		RightPressed: rl.IsMouseButtonPressed(rl.MouseButtonRight),
	}
	p.InGrid = mx >= 0 && my >= 0 && p.Cell.InBounds(types.GridWidth, types.GridHeight)
	switch wheel := rl.GetMouseWheelMove(); {
	case wheel > 0:
		p.Wheel = 1
	case wheel < 0:
		p.Wheel = -1
	}
	return p
}

func (w *Window) Closed() bool {
	return rl.WindowShouldClose()
}

func (w *Window) Play(s ui.Sound) {
	if snd, ok := w.sounds[s]; ok {
		rl.PlaySound(snd)
	}
}

// Close releases audio and closes the window.
func (w *Window) Close() error {
	if w.audio {
		for _, snd := range w.sounds {
			rl.UnloadSound(snd)
		}
		if w.hasMusic {
			rl.UnloadMusicStream(w.music)
		}
		rl.CloseAudioDevice()
	}
	rl.CloseWindow()
	return nil
}
