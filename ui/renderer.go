package ui

import (
	"fmt"

	"serpens/editor"
	"serpens/game"
	"serpens/game/types"
	"serpens/game/world"
	"serpens/mapfile"
)

// MenuItems are the main menu entries in display order.
var MenuItems = []string{"Play", "Load map"}

const (
	menuTitleRow = 8
	menuFirstRow = 14
	menuRowStep  = 3
	messageRow   = 10
	promptTop    = 8
	promptRows   = 6
)

// MenuItemAt returns the menu entry drawn on the row of p.
func MenuItemAt(p types.Point) (int, bool) {
	off := p.Y - menuFirstRow
	if off < 0 || off%menuRowStep != 0 {
		return 0, false
	}
	i := off / menuRowStep
	if i >= len(MenuItems) {
		return 0, false
	}
	return i, true
}

// Renderer draws game, editor and menu frames.
type Renderer struct {
	Palette Palette
	// Fancy keeps the snake head in the middle of the screen.
	Fancy bool
}

// NewRenderer returns a renderer with the given palette.
func NewRenderer(p Palette) *Renderer {
	return &Renderer{Palette: p}
}

// GameInfo is the status bar content that does not live in the game.
type GameInfo struct {
	Map  string
	Best int
}

// DrawGame draws the playfield, the status bar and the pause or loss
// message, then presents the frame.
func (r *Renderer) DrawGame(s Surface, g *game.Game, info GameInfo) {
	pal := r.Palette
	s.Clear(pal.Background)

	snake := g.Snake()
	view := func(p types.Point) types.Point { return p }
	if r.Fancy {
		head := snake.GetHead()
		shift := types.Point{X: types.GridWidth/2 - head.X, Y: types.GridHeight/2 - head.Y}
		view = func(p types.Point) types.Point {
			return p.Add(shift).Wrap(types.GridWidth, types.GridHeight)
		}
	}

	g.Base().Each(func(p types.Point, k world.TileKind) {
		switch k {
		case world.SnakeBody:
			s.FillCell(view(p), pal.Snake)
		case world.Infertile:
			s.Outline(view(p), pal.Message)
		}
	})

	body := snake.Body()
	for i, p := range body {
		switch {
		case i == len(body)-1:
			s.FillDisc(view(p), 1, pal.Snake)
		case i == 0:
			s.FillTriangle(view(p), towards(p, body[1]), pal.Snake)
		default:
			s.FillCell(view(p), pal.Snake)
		}
	}

	if p, ok := g.Food(); ok {
		s.FillDisc(view(p), 1, pal.Food)
	}
	if p, ok := g.Special(); ok {
		s.FillDisc(view(p), 1, pal.Food)
		s.FillDisc(view(p), 0.66, pal.Snake)
	}

	status := types.Point{X: 0, Y: types.GridHeight}
	s.Text(status, fmt.Sprintf("Score: %d", g.Score()), pal.Message)
	s.Text(status.Add(types.Point{X: 9}), fmt.Sprintf("Best: %d", info.Best), pal.Message)
	s.Text(status.Add(types.Point{X: 17}), fmt.Sprintf("Speed: %d", g.Speed()), pal.Message)
	if info.Map != "" {
		s.Text(status.Add(types.Point{Y: 1}), info.Map, pal.Message)
	}
	if _, ok := g.Special(); ok {
		s.Text(status.Add(types.Point{X: 17, Y: 1}), fmt.Sprintf("Bonus: %d", g.Bonus()/10), pal.Message)
	}

	switch g.State() {
	case game.StatePaused:
		s.CenterText(messageRow, "GAME PAUSED", pal.Message)
	case game.StateLost:
		s.CenterText(messageRow, fmt.Sprintf("You Lose! Final Score: %d", g.Score()), pal.Message)
		s.CenterText(messageRow+2, "Press Space to Restart", pal.Message)
	}
	s.Present()
}

// towards returns the direction from a tail cell to its neighbour, taking
// wraparound into account.
func towards(from, to types.Point) types.Direction {
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dx == 1 || dx < -1:
		return types.Right
	case dx == -1 || dx > 1:
		return types.Left
	case dy == 1 || dy < -1:
		return types.Down
	default:
		return types.Up
	}
}

// DrawEditor draws the map being edited with its cursor and brush, then
// presents the frame.
func (r *Renderer) DrawEditor(s Surface, e *editor.Editor) {
	s.Clear(menuBackground)
	e.Layout().Tiles.Each(func(p types.Point, t mapfile.Tile) {
		s.FillCell(p, TileColor(t))
	})

	cursor := cursorIdle
	if a, ok := e.Anchor(); ok {
		cursor = cursorAnchored
		s.Outline(a, cursorAnchored)
	}
	s.Outline(e.Cursor(), cursor)

	status := types.Point{X: 0, Y: types.GridHeight}
	s.FillCell(status, TileColor(e.Brush()))
	s.Text(status.Add(types.Point{X: 1}), "Brush: "+e.Brush().String(), menuText)
	if e.Name() != "" {
		s.Text(status.Add(types.Point{X: 12}), e.Name(), menuText)
	}
	if n := e.Notice(); n != "" {
		s.Text(status.Add(types.Point{Y: 1}), n, menuSelected)
	}
	s.Present()
}

// DrawMenu draws the main menu with sel highlighted; sel < 0 highlights
// nothing.
func (r *Renderer) DrawMenu(s Surface, sel int, notice string) {
	s.Clear(menuBackground)
	s.CenterText(menuTitleRow, "S E R P E N S", menuSelected)
	for i, item := range MenuItems {
		c := menuText
		if i == sel {
			c = menuSelected
			item = "> " + item + " <"
		}
		s.CenterText(menuFirstRow+i*menuRowStep, item, c)
	}
	if notice != "" {
		s.CenterText(types.GridHeight, notice, menuText)
	}
	s.Present()
}

// DrawPrompt draws a text entry box.
func (r *Renderer) DrawPrompt(s Surface, title, text, notice string) {
	s.Clear(menuBackground)
	for y := promptTop; y < promptTop+promptRows; y++ {
		for x := 2; x < types.GridWidth-2; x++ {
			s.FillCell(types.Point{X: x, Y: y}, promptColor)
		}
	}
	s.CenterText(promptTop+1, title, promptText)
	s.CenterText(promptTop+3, text+"_", promptText)
	if notice != "" {
		s.CenterText(promptTop+4, notice, cursorIdle)
	}
	s.Present()
}

// DrawHelp shows the editor controls.
func (r *Renderer) DrawHelp(s Surface) {
	s.Clear(menuBackground)
	s.CenterText(4, "Map editor", menuSelected)
	lines := []string{
		"Arrows or mouse: move",
		"Z or wheel: change brush",
		"Space or left click: draw",
		"X or right click: block",
		"S: save   D: load",
		"Esc: quit",
		"",
		"Press any key",
	}
	for i, l := range lines {
		s.CenterText(7+2*i, l, menuText)
	}
	s.Present()
}
