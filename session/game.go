package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"serpens/game"
	"serpens/game/manager"
	"serpens/mapfile"
	"serpens/stats"
	"serpens/ui"
)

// GameOptions wires a game session.
type GameOptions struct {
	Store    *mapfile.Store
	Stats    *stats.GameStats
	Settings game.Settings
	// MapName is played until a different map is loaded from the menu.
	MapName string
	Rand    manager.Rand
	Log     zerolog.Logger
}

// mapWatcher reports edits to map files.
type mapWatcher interface {
	Changed(name string) bool
	Close() error
}

// Game is the game program: a menu leading to rounds or to the map
// loader.
type Game struct {
	ui       ui.Backend
	renderer *ui.Renderer

	store    *mapfile.Store
	stats    *stats.GameStats
	settings game.Settings
	mapName  string
	rng      manager.Rand
	log      zerolog.Logger

	notice  string
	pending []ui.KeyEvent
}

// NewGame returns a session drawing on b.
func NewGame(b ui.Backend, opts GameOptions) *Game {
	return &Game{
		ui:       b,
		renderer: ui.NewRenderer(ui.NewPalette(opts.Rand)),
		store:    opts.Store,
		stats:    opts.Stats,
		settings: opts.Settings,
		mapName:  opts.MapName,
		rng:      opts.Rand,
		log:      opts.Log.With().Str("component", "session").Logger(),
	}
}

// MapName returns the map Play uses.
func (s *Game) MapName() string { return s.mapName }

// Run shows the menu until the user quits. Quitting is not an error.
func (s *Game) Run(ctx context.Context) error {
	sel := -1
	for {
		if checkQuit(ctx, s.ui) != nil {
			return nil
		}

		activate := -1
		for _, ev := range s.ui.PollKeys() {
			switch ev.Key {
			case ui.KeyUp, ui.KeyLeft:
				sel = s.moveSelection(sel, -1)
			case ui.KeyDown, ui.KeyRight:
				sel = s.moveSelection(sel, 1)
			case ui.KeyEnter:
				activate = sel
			case ui.KeyEscape:
				return nil
			}
		}
		if ptr := s.ui.Pointer(); ptr.InGrid {
			if i, ok := ui.MenuItemAt(ptr.Cell); ok {
				if i != sel {
					s.ui.Play(ui.SoundButton)
				}
				sel = i
				if ptr.LeftPressed {
					activate = i
				}
			}
		}

		var err error
		switch activate {
		case 0:
			err = s.play(ctx)
		case 1:
			err = s.load(ctx)
		}
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		s.renderer.DrawMenu(s.ui, sel, s.notice)
		s.ui.Sleep(menuDelay)
	}
}

func (s *Game) moveSelection(sel, delta int) int {
	n := len(ui.MenuItems)
	if sel < 0 && delta < 0 {
		sel = n - 1
	} else {
		sel = ((sel+delta)%n + n) % n
	}
	s.ui.Play(ui.SoundButton)
	return sel
}

// load prompts for a map name until a playable map is given or the user
// cancels.
func (s *Game) load(ctx context.Context) error {
	notice := ""
	for {
		name, ok, err := prompt(ctx, s.ui, s.renderer, "Type the name of a map", notice)
		if err != nil || !ok {
			return err
		}
		if _, err := s.store.LoadPlayable(name); err != nil {
			s.log.Warn().Err(err).Str("map", name).Msg("map not loadable")
			notice = "Could not load " + name
			continue
		}
		s.mapName = name
		s.notice = "Map: " + name
		return nil
	}
}

// play runs rounds on the current map until the user goes back to the
// menu.
func (s *Game) play(ctx context.Context) error {
	layout, err := s.store.LoadPlayable(s.mapName)
	if err != nil {
		s.log.Error().Err(err).Str("map", s.mapName).Msg("cannot play map")
		s.notice = "Could not load " + s.mapName
		return nil
	}
	g, err := game.New(layout, s.settings, s.rng, s.log)
	if err != nil {
		return err
	}
	s.notice = ""

	var watcher mapWatcher
	if w, err := s.store.Watch(); err != nil {
		s.log.Warn().Err(err).Msg("map changes will not be picked up")
	} else {
		watcher = w
		defer w.Close()
	}

	s.pending = s.pending[:0]
	s.renderer.Palette = ui.NewPalette(s.rng)
	start := s.ui.Now()
	for {
		if err := checkQuit(ctx, s.ui); err != nil {
			return err
		}
		leave, err := s.handleKeys(ctx, g)
		if err != nil {
			return err
		}
		if leave {
			return nil
		}

		if res := g.Tick(); res.Ate() {
			s.ui.Play(ui.SoundEat)
		}

		if g.State() == game.StateLost {
			s.recordRound(g, start)
			s.draw(g)
			err := waitFor(ctx, s.ui, func() { s.draw(g) }, func(ev ui.KeyEvent) bool {
				return ev.Key == ui.KeySpace || ev.Key == ui.KeyEscape
			})
			if err != nil {
				return err
			}
			s.pending = s.pending[:0]
			if !s.reloadIfChanged(g, watcher) {
				g.Confirm()
			}
			s.renderer.Palette = ui.NewPalette(s.rng)
			start = s.ui.Now()
			continue
		}

		s.draw(g)
		s.ui.Sleep(g.Delay())
	}
}

// handleKeys consumes queued key presses up to and including the first
// accepted direction change. Later presses stay queued for the next tick.
func (s *Game) handleKeys(ctx context.Context, g *game.Game) (leave bool, err error) {
	s.pending = append(s.pending, s.ui.PollKeys()...)
	for len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending = s.pending[1:]

		switch {
		case ev.Key == ui.KeyEscape:
			return true, nil
		case ev.Key == ui.KeySpace:
			if err := s.pause(ctx, g); err != nil {
				return false, err
			}
		case ev.Is('m'):
			s.renderer.Fancy = !s.renderer.Fancy
			return false, nil
		default:
			if d, ok := ev.Direction(); ok && g.Steer(d) {
				return false, nil
			}
		}
	}
	return false, nil
}

func (s *Game) pause(ctx context.Context, g *game.Game) error {
	g.TogglePause()
	defer g.TogglePause()
	return waitFor(ctx, s.ui, func() { s.draw(g) }, func(ev ui.KeyEvent) bool {
		return ev.Key == ui.KeySpace || ev.Key == ui.KeyEscape
	})
}

// reloadIfChanged loads the map again if its file was edited, which also
// starts a new round. A broken edit keeps the old map.
func (s *Game) reloadIfChanged(g *game.Game, w mapWatcher) bool {
	if w == nil || !w.Changed(s.mapName) {
		return false
	}
	layout, err := s.store.LoadPlayable(s.mapName)
	if err != nil {
		s.log.Warn().Err(err).Str("map", s.mapName).Msg("edited map rejected")
		return false
	}
	if err := g.LoadLayout(layout); err != nil {
		s.log.Warn().Err(err).Msg("edited map rejected")
		return false
	}
	s.log.Info().Str("map", s.mapName).Msg("map reloaded")
	return true
}

func (s *Game) recordRound(g *game.Game, start time.Time) {
	rec := s.stats.AddGame(s.mapName, g.Score(), start, s.ui.Now())
	s.log.Info().
		Str("round", rec.ID).
		Str("map", s.mapName).
		Int("score", g.Score()).
		Int("ticks", g.Ticks()).
		Msg("round finished")
	if err := s.stats.SaveToFile(); err != nil {
		s.log.Error().Err(err).Msg("saving stats")
	}
}

func (s *Game) draw(g *game.Game) {
	s.renderer.DrawGame(s.ui, g, ui.GameInfo{Map: s.mapName, Best: s.stats.GetMaxScore()})
}
