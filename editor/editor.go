// Package editor holds the map editor's tool state: the map being edited,
// the cursor, the current brush and a pending rectangle anchor.
package editor

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"serpens/game/types"
	"serpens/mapfile"
)

// ErrMultipleSpawn is returned when a rectangle fill is attempted with the
// spawn brush.
var ErrMultipleSpawn = errors.New("you can't have more than one spawn point")

// Editor is the editor state. The zero value is not usable; use New.
type Editor struct {
	layout *mapfile.Layout
	store  *mapfile.Store
	log    zerolog.Logger

	cursor   types.Point
	brush    mapfile.Tile
	anchor   types.Point
	anchored bool

	name   string
	notice string
}

// New returns an editor with an empty map.
func New(store *mapfile.Store, log zerolog.Logger) *Editor {
	return &Editor{
		layout: mapfile.NewLayout(),
		store:  store,
		log:    log.With().Str("component", "editor").Logger(),
	}
}

// Layout returns the map being edited.
func (e *Editor) Layout() *mapfile.Layout { return e.layout }

// Cursor returns the selected cell.
func (e *Editor) Cursor() types.Point { return e.cursor }

// Brush returns the current brush.
func (e *Editor) Brush() mapfile.Tile { return e.brush }

// Name returns the name the map was last saved or loaded under.
func (e *Editor) Name() string { return e.name }

// Anchor returns the pending rectangle corner.
func (e *Editor) Anchor() (types.Point, bool) { return e.anchor, e.anchored }

// Notice returns the message to show the user, if any.
func (e *Editor) Notice() string { return e.notice }

// SetNotice replaces the message shown to the user.
func (e *Editor) SetNotice(msg string) { e.notice = msg }

// SetCursor moves the cursor to p, clamped to the grid.
func (e *Editor) SetCursor(p types.Point) {
	e.cursor = types.Point{
		X: clamp(p.X, 0, types.GridWidth-1),
		Y: clamp(p.Y, 0, types.GridHeight-1),
	}
}

// MoveCursor steps the cursor one cell without wrapping.
func (e *Editor) MoveCursor(d types.Direction) {
	e.SetCursor(e.cursor.Add(d.ToPoint()))
}

// CycleBrush moves through the brushes circularly. While a rectangle is
// pending the spawn brush is skipped.
func (e *Editor) CycleBrush(delta int) {
	if delta == 0 {
		return
	}
	b := wrapTile(int(e.brush) + delta)
	if b == mapfile.Spawn && e.anchored {
		if delta > 0 {
			b = wrapTile(int(b) + 1)
		} else {
			b = wrapTile(int(b) - 1)
		}
	}
	e.brush = b
}

// PaintCell sets one cell. Painting a spawn clears the previous one.
func (e *Editor) PaintCell(p types.Point, kind mapfile.Tile) {
	if old, ok := e.layout.Set(p, kind); ok {
		e.log.Debug().Int("x", old.X).Int("y", old.Y).Msg("previous spawn cleared")
	}
}

// Paint applies the brush at the cursor.
func (e *Editor) Paint() {
	e.PaintCell(e.cursor, e.brush)
}

// PaintRect fills the inclusive rectangle with corners from and to. The
// spawn brush is refused.
func (e *Editor) PaintRect(from, to types.Point, kind mapfile.Tile) error {
	if kind == mapfile.Spawn {
		return ErrMultipleSpawn
	}
	x0, x1 := order(from.X, to.X)
	y0, y1 := order(from.Y, to.Y)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			e.layout.Set(types.Point{X: x, Y: y}, kind)
		}
	}
	return nil
}

// ToggleAnchor starts a rectangle at the cursor, or fills the rectangle
// from the anchor to the cursor with the brush when one is pending.
func (e *Editor) ToggleAnchor() error {
	if e.brush == mapfile.Spawn {
		e.notice = ErrMultipleSpawn.Error()
		return ErrMultipleSpawn
	}
	if !e.anchored {
		e.anchor, e.anchored = e.cursor, true
		return nil
	}
	e.anchored = false
	return e.PaintRect(e.anchor, e.cursor, e.brush)
}

// Save writes the map under name. Failures are reported in the notice and
// leave the editor unchanged.
func (e *Editor) Save(name string) error {
	if err := e.store.Save(name, e.layout); err != nil {
		e.notice = "Could not save map: " + errors.Cause(err).Error()
		e.log.Warn().Err(err).Str("map", name).Msg("save failed")
		return err
	}
	e.name = name
	e.notice = "Saved " + name
	return nil
}

// Load replaces the map with the named one. On failure the current map is
// kept.
func (e *Editor) Load(name string) error {
	l, err := e.store.Load(name)
	if err != nil {
		e.notice = "Could not load map: " + errors.Cause(err).Error()
		e.log.Warn().Err(err).Str("map", name).Msg("load failed")
		return err
	}
	e.layout = l
	e.anchored = false
	e.name = name
	e.notice = "Loaded " + name
	return nil
}

func wrapTile(v int) mapfile.Tile {
	v %= mapfile.NumTiles
	if v < 0 {
		v += mapfile.NumTiles
	}
	return mapfile.Tile(v)
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
