package editor

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"serpens/game/types"
	"serpens/mapfile"
)

func newEditor(t *testing.T) *Editor {
	t.Helper()
	return New(mapfile.NewStore(t.TempDir(), zerolog.Nop()), zerolog.Nop())
}

func TestPaintCellSingleSpawn(t *testing.T) {
	e := newEditor(t)
	e.PaintCell(types.Point{X: 1, Y: 1}, mapfile.Spawn)
	e.PaintCell(types.Point{X: 2, Y: 2}, mapfile.Spawn)

	if got := e.Layout().Get(types.Point{X: 1, Y: 1}); got != mapfile.Empty {
		t.Errorf("old spawn cell = %v, want empty", got)
	}
	if got := e.Layout().Get(types.Point{X: 2, Y: 2}); got != mapfile.Spawn {
		t.Errorf("new spawn cell = %v, want spawn", got)
	}
	if p, ok := e.Layout().Spawn(); !ok || p != (types.Point{X: 2, Y: 2}) {
		t.Errorf("spawn = %v %v", p, ok)
	}
	if n := e.Layout().Tiles.Count(mapfile.Spawn); n != 1 {
		t.Errorf("spawn count = %d", n)
	}
}

func TestPaintRect(t *testing.T) {
	e := newEditor(t)
	if err := e.PaintRect(types.Point{X: 5, Y: 4}, types.Point{X: 3, Y: 2}, mapfile.Wall); err != nil {
		t.Fatal(err)
	}
	if n := e.Layout().Tiles.Count(mapfile.Wall); n != 9 {
		t.Errorf("wall count = %d, want 9", n)
	}
	for _, p := range []types.Point{{X: 3, Y: 2}, {X: 5, Y: 4}, {X: 4, Y: 3}} {
		if got := e.Layout().Get(p); got != mapfile.Wall {
			t.Errorf("%v = %v, want wall", p, got)
		}
	}
	if got := e.Layout().Get(types.Point{X: 6, Y: 4}); got != mapfile.Empty {
		t.Errorf("outside cell = %v", got)
	}
}

func TestPaintRectRejectsSpawn(t *testing.T) {
	e := newEditor(t)
	err := e.PaintRect(types.Point{}, types.Point{X: 2, Y: 2}, mapfile.Spawn)
	if !errors.Is(err, ErrMultipleSpawn) {
		t.Fatalf("err = %v", err)
	}
	if n := e.Layout().Tiles.Count(mapfile.Empty); n != types.GridWidth*types.GridHeight {
		t.Error("map changed")
	}
}

func TestPaintRectOverSpawnForgetsIt(t *testing.T) {
	e := newEditor(t)
	e.PaintCell(types.Point{X: 1, Y: 1}, mapfile.Spawn)
	if err := e.PaintRect(types.Point{}, types.Point{X: 2, Y: 2}, mapfile.Infertile); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Layout().Spawn(); ok {
		t.Error("spawn should be gone")
	}
}

func TestToggleAnchor(t *testing.T) {
	e := newEditor(t)
	e.CycleBrush(1) // wall
	e.SetCursor(types.Point{X: 1, Y: 1})
	if err := e.ToggleAnchor(); err != nil {
		t.Fatal(err)
	}
	if a, ok := e.Anchor(); !ok || a != (types.Point{X: 1, Y: 1}) {
		t.Fatalf("anchor = %v %v", a, ok)
	}
	e.SetCursor(types.Point{X: 2, Y: 3})
	if err := e.ToggleAnchor(); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Anchor(); ok {
		t.Error("anchor should be cleared")
	}
	if n := e.Layout().Tiles.Count(mapfile.Wall); n != 6 {
		t.Errorf("wall count = %d, want 6", n)
	}
}

func TestToggleAnchorWithSpawnBrush(t *testing.T) {
	e := newEditor(t)
	e.CycleBrush(2)
	if e.Brush() != mapfile.Spawn {
		t.Fatalf("brush = %v", e.Brush())
	}
	if err := e.ToggleAnchor(); !errors.Is(err, ErrMultipleSpawn) {
		t.Fatalf("err = %v", err)
	}
	if e.Notice() == "" {
		t.Error("expected a notice")
	}
	if _, ok := e.Anchor(); ok {
		t.Error("anchor should not be set")
	}
}

func TestCycleBrush(t *testing.T) {
	e := newEditor(t)
	want := []mapfile.Tile{mapfile.Wall, mapfile.Spawn, mapfile.Infertile, mapfile.Empty}
	for _, w := range want {
		e.CycleBrush(1)
		if e.Brush() != w {
			t.Fatalf("brush = %v, want %v", e.Brush(), w)
		}
	}
	e.CycleBrush(-1)
	if e.Brush() != mapfile.Infertile {
		t.Errorf("brush = %v, want infertile", e.Brush())
	}
}

func TestCycleBrushSkipsSpawnWhileAnchored(t *testing.T) {
	e := newEditor(t)
	e.CycleBrush(1) // wall
	if err := e.ToggleAnchor(); err != nil {
		t.Fatal(err)
	}
	e.CycleBrush(1)
	if e.Brush() != mapfile.Infertile {
		t.Errorf("brush = %v, want infertile", e.Brush())
	}
	e.CycleBrush(-1)
	if e.Brush() != mapfile.Wall {
		t.Errorf("brush = %v, want wall", e.Brush())
	}
}

func TestMoveCursorClamps(t *testing.T) {
	e := newEditor(t)
	e.MoveCursor(types.Up)
	e.MoveCursor(types.Left)
	if e.Cursor() != (types.Point{}) {
		t.Errorf("cursor = %v", e.Cursor())
	}
	e.SetCursor(types.Point{X: 99, Y: 99})
	if e.Cursor() != (types.Point{X: types.GridWidth - 1, Y: types.GridHeight - 1}) {
		t.Errorf("cursor = %v", e.Cursor())
	}
}

func TestSaveLoad(t *testing.T) {
	e := newEditor(t)
	e.PaintCell(types.Point{X: 3, Y: 3}, mapfile.Spawn)
	e.PaintCell(types.Point{X: 0, Y: 0}, mapfile.Wall)
	if err := e.Save("mine.txt"); err != nil {
		t.Fatal(err)
	}
	saved := e.Layout().Tiles

	e.PaintCell(types.Point{X: 0, Y: 0}, mapfile.Empty)
	if err := e.Load("mine.txt"); err != nil {
		t.Fatal(err)
	}
	if e.Layout().Tiles != saved {
		t.Error("loaded map differs from saved")
	}
	if e.Name() != "mine.txt" {
		t.Errorf("name = %q", e.Name())
	}
}

func TestLoadFailureKeepsMap(t *testing.T) {
	e := newEditor(t)
	e.PaintCell(types.Point{X: 7, Y: 7}, mapfile.Wall)
	before := e.Layout()
	if err := e.Load("missing.txt"); err == nil {
		t.Fatal("expected error")
	}
	if e.Layout() != before || e.Layout().Get(types.Point{X: 7, Y: 7}) != mapfile.Wall {
		t.Error("map replaced after failed load")
	}
	if e.Notice() == "" {
		t.Error("expected a notice")
	}
}

func TestSaveRejectsBadName(t *testing.T) {
	e := newEditor(t)
	err := e.Save("../escape.txt")
	if !errors.Is(err, mapfile.ErrInvalidName) {
		t.Fatalf("err = %v", err)
	}
}
