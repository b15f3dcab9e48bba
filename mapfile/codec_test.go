package mapfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"serpens/game/types"
	"serpens/game/world"
)

func blankRows() []string {
	rows := make([]string, types.GridHeight)
	for i := range rows {
		rows[i] = strings.Repeat(".", types.GridWidth)
	}
	return rows
}

func setChar(rows []string, x, y int, c byte) {
	b := []byte(rows[y])
	b[x] = c
	rows[y] = string(b)
}

func decodeRows(t *testing.T, rows []string, sep string) (*Layout, DecodeResult) {
	t.Helper()
	l, res, err := Decode(strings.NewReader(strings.Join(rows, sep) + sep))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return l, res
}

func TestDecodeTiles(t *testing.T) {
	rows := blankRows()
	setChar(rows, 0, 0, '#')
	setChar(rows, 5, 5, 's')
	setChar(rows, 23, 29, 'x')
	setChar(rows, 2, 2, '?')

	l, res := decodeRows(t, rows, "\n")
	if got := l.Tiles.Get(0, 0); got != Wall {
		t.Errorf("(0,0) = %v, want wall", got)
	}
	if got := l.Tiles.Get(23, 29); got != Infertile {
		t.Errorf("(23,29) = %v, want infertile", got)
	}
	if got := l.Tiles.Get(2, 2); got != Empty {
		t.Errorf("unknown char decoded as %v, want empty", got)
	}
	if res.Unknown != 1 {
		t.Errorf("Unknown = %d, want 1", res.Unknown)
	}
	spawn, ok := l.Spawn()
	if !ok || spawn != (types.Point{X: 5, Y: 5}) {
		t.Errorf("spawn = %v %v, want (5,5)", spawn, ok)
	}
}

func TestDecodeCRLF(t *testing.T) {
	rows := blankRows()
	setChar(rows, 10, 1, '#')
	l, _ := decodeRows(t, rows, "\r\n")
	if l.Tiles.Get(10, 1) != Wall {
		t.Error("CRLF shifted columns")
	}
}

func TestDecodeWithoutNewlines(t *testing.T) {
	rows := blankRows()
	setChar(rows, 3, 4, 'x')
	l, _, err := Decode(strings.NewReader(strings.Join(rows, "")))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if l.Tiles.Get(3, 4) != Infertile {
		t.Error("tile misplaced in newline-free input")
	}
}

func TestDecodeTruncated(t *testing.T) {
	rows := blankRows()[:types.GridHeight-1]
	_, _, err := Decode(strings.NewReader(strings.Join(rows, "\n")))
	if !errors.Is(err, ErrTruncatedMap) {
		t.Fatalf("err = %v, want ErrTruncatedMap", err)
	}
	// one tile short
	full := strings.Join(blankRows(), "")
	_, _, err = Decode(strings.NewReader(full[:len(full)-1]))
	if !errors.Is(err, ErrTruncatedMap) {
		t.Fatalf("err = %v, want ErrTruncatedMap", err)
	}
}

func TestDecodeDuplicateSpawnLastWins(t *testing.T) {
	rows := blankRows()
	setChar(rows, 1, 1, 's')
	setChar(rows, 7, 3, 's')
	l, res := decodeRows(t, rows, "\n")
	if res.SpawnMarkers != 2 {
		t.Errorf("SpawnMarkers = %d, want 2", res.SpawnMarkers)
	}
	spawn, _ := l.Spawn()
	if spawn != (types.Point{X: 7, Y: 3}) {
		t.Errorf("spawn = %v, want (7,3)", spawn)
	}
	if l.Tiles.Get(1, 1) != Empty {
		t.Error("earlier spawn marker kept")
	}
	if n := l.Tiles.Count(Spawn); n != 1 {
		t.Errorf("%d spawn tiles, want 1", n)
	}
}

func TestEncodeFormat(t *testing.T) {
	l := NewLayout()
	l.Set(types.Point{X: 0, Y: 0}, Wall)
	l.Set(types.Point{X: 1, Y: 0}, Spawn)
	l.Set(types.Point{X: 2, Y: 0}, Infertile)

	var buf bytes.Buffer
	if err := Encode(&buf, l); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != types.GridHeight {
		t.Fatalf("%d lines, want %d", len(lines), types.GridHeight)
	}
	for i, line := range lines {
		if len(line) != types.GridWidth {
			t.Fatalf("line %d has %d chars", i, len(line))
		}
	}
	if !strings.HasPrefix(lines[0], "#sx.") {
		t.Errorf("first line = %q", lines[0])
	}
	if buf.Len() != types.GridHeight*(types.GridWidth+1) {
		t.Errorf("encoded %d bytes", buf.Len())
	}
}

func TestEncodeWithoutSpawn(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, NewLayout()); err != nil {
		t.Fatalf("Encode without spawn: %v", err)
	}
	if strings.Contains(buf.String(), "s") {
		t.Error("spawn written for a layout without one")
	}
}

func TestRoundTrip(t *testing.T) {
	l := NewLayout()
	for y := 0; y < types.GridHeight; y++ {
		for x := 0; x < types.GridWidth; x++ {
			switch (x*7 + y*3) % 5 {
			case 0:
				l.Set(types.Point{X: x, Y: y}, Wall)
			case 1:
				l.Set(types.Point{X: x, Y: y}, Infertile)
			}
		}
	}
	l.Set(types.Point{X: 9, Y: 11}, Spawn)

	var buf bytes.Buffer
	if err := Encode(&buf, l); err != nil {
		t.Fatal(err)
	}
	got, _, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Tiles != l.Tiles {
		t.Error("tiles changed across round trip")
	}
	spawn, ok := got.Spawn()
	if !ok || spawn != (types.Point{X: 9, Y: 11}) {
		t.Errorf("spawn = %v %v", spawn, ok)
	}
}

func TestPlayfield(t *testing.T) {
	l := NewLayout()
	l.Set(types.Point{X: 0, Y: 0}, Wall)
	l.Set(types.Point{X: 1, Y: 0}, Infertile)
	l.Set(types.Point{X: 2, Y: 0}, Spawn)
	g := l.Playfield()
	want := []world.TileKind{world.SnakeBody, world.Infertile, world.Empty, world.Empty}
	for x, k := range want {
		if got := g.Get(x, 0); got != k {
			t.Errorf("(%d,0) = %v, want %v", x, got, k)
		}
	}
}

func TestLayoutSetSpawnMoves(t *testing.T) {
	l := NewLayout()
	l.Set(types.Point{X: 1, Y: 1}, Spawn)
	cleared, ok := l.Set(types.Point{X: 2, Y: 2}, Spawn)
	if !ok || cleared != (types.Point{X: 1, Y: 1}) {
		t.Errorf("cleared = %v %v", cleared, ok)
	}
	if l.Tiles.Get(1, 1) != Empty {
		t.Error("old spawn not cleared")
	}
	l.Set(types.Point{X: 2, Y: 2}, Wall)
	if _, ok := l.Spawn(); ok {
		t.Error("painting over the spawn should forget it")
	}
}
