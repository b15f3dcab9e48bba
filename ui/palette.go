package ui

import "serpens/mapfile"

// Intner is the part of a random source the palette needs.
type Intner interface {
	Intn(n int) int
}

// Palette holds the colors of one round.
type Palette struct {
	Background Color
	Snake      Color
	Food       Color
	Message    Color
}

// NewPalette derives a palette from three random components, all dark or
// all light, so that the snake and text contrast with the background.
func NewPalette(rng Intner) Palette {
	var c [3]int
	for i := range c {
		c[i] = rng.Intn(128)
	}
	if rng.Intn(2) == 1 {
		for i := range c {
			c[i] += 128
		}
	}
	return Palette{
		Background: rgb(c[0], c[1], c[2]),
		Snake:      rgb((c[0]+128)%256, (c[1]+128)%256, (c[2]+128)%256),
		Food:       rgb((c[0]+128)%256, 255-c[1], c[2]),
		Message:    rgb(255-c[0], 255-c[1], 255-c[2]),
	}
}

func rgb(r, g, b int) Color {
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// Fixed colors.
var (
	promptColor    = Color{R: 227, G: 227, B: 65}
	promptText     = Color{R: 0, G: 130, B: 65}
	menuBackground = Color{R: 20, G: 20, B: 20}
	menuText       = Color{R: 230, G: 230, B: 230}
	menuSelected   = Color{R: 230, G: 200, B: 40}
	cursorIdle     = Color{R: 200, G: 20, B: 10}
	cursorAnchored = Color{R: 20, G: 10, B: 200}
)

// TileColor is the editor color of a map tile.
func TileColor(t mapfile.Tile) Color {
	switch t {
	case mapfile.Wall:
		return Color{R: 10, G: 10, B: 10}
	case mapfile.Spawn:
		return Color{R: 50, G: 20, B: 230}
	case mapfile.Infertile:
		return Color{R: 200, G: 60, B: 20}
	default:
		return Color{R: 200, G: 200, B: 200}
	}
}
