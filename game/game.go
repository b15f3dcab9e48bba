// Package game ties the play field, the snake and the food together into
// the frame-driven state machine of one play session.
package game

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"serpens/game/entity"
	"serpens/game/manager"
	"serpens/game/types"
	"serpens/game/world"
	"serpens/mapfile"
)

// State is the phase of a round.
type State int

const (
	StateReset State = iota
	StatePlaying
	StatePaused
	StateLost
)

func (s State) String() string {
	switch s {
	case StateReset:
		return "reset"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Settings are the tuning constants of a round.
type Settings struct {
	StartSpeed    int // moves per second after a reset
	SpeedFloor    int // eating lowers the speed by one while above this
	InitialExtend int // pending growth after a reset
	BonusCeiling  int // special food bonus right after it appears
	BonusFloor    int // the bonus stops decaying here
	FoodScore     int
	SpecialChance float64
}

// DefaultSettings returns the classic tuning.
func DefaultSettings() Settings {
	return Settings{
		StartSpeed:    10,
		SpeedFloor:    10,
		InitialExtend: 10,
		BonusCeiling:  300,
		BonusFloor:    50,
		FoodScore:     10,
		SpecialChance: 0.2,
	}
}

// TickResult describes what one tick did.
type TickResult struct {
	Moved     bool
	Collision manager.CollisionType
}

// Ate reports whether any food was eaten.
func (r TickResult) Ate() bool {
	return r.Collision == manager.FoodCollision || r.Collision == manager.SpecialCollision
}

// Game is the state of one play session on one map.
type Game struct {
	settings Settings
	log      zerolog.Logger

	base  world.Grid[world.TileKind]
	live  world.Grid[world.TileKind]
	spawn types.Point

	snake      *entity.Snake
	foods      *manager.FoodManager
	collisions *manager.CollisionManager

	state State
	score int
	speed int
	bonus int
	crash types.Point
	ticks int
}

// New builds a game on layout and resets it, leaving it in StatePlaying.
func New(layout *mapfile.Layout, settings Settings, rng manager.Rand, log zerolog.Logger) (*Game, error) {
	g := &Game{
		settings: settings,
		log:      log.With().Str("component", "game").Logger(),
	}
	g.foods = manager.NewFoodManager(&g.live, rng, settings.SpecialChance)
	g.collisions = manager.NewCollisionManager(&g.live)
	if err := g.LoadLayout(layout); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadLayout replaces the base map and resets the round. On error the
// current map and round are left untouched.
func (g *Game) LoadLayout(layout *mapfile.Layout) error {
	spawn, ok := layout.Spawn()
	if !ok {
		return errors.WithStack(mapfile.ErrMissingSpawn)
	}
	g.base = layout.Playfield()
	g.spawn = spawn
	g.Reset()
	return nil
}

// Reset rebuilds the live grid from the base map, puts a one-segment snake
// on the spawn, places food and starts playing.
func (g *Game) Reset() {
	g.setState(StateReset)
	g.live = g.base
	g.snake = entity.NewSnake(g.spawn, g.settings.InitialExtend)
	g.live.Put(g.spawn, world.SnakeBody)
	g.score = 0
	g.speed = g.settings.StartSpeed
	g.bonus = g.settings.BonusCeiling
	g.ticks = 0
	g.foods.Reset()
	g.foods.PlaceFood()
	// no special food on the first placement
	g.foods.RemoveSpecial(&g.base)
	g.setState(StatePlaying)
}

// Steer asks the snake to turn. Reversals and presses along the current
// axis are ignored, as is anything outside StatePlaying.
func (g *Game) Steer(d types.Direction) bool {
	if g.state != StatePlaying {
		return false
	}
	return g.snake.SetDirection(d.ToPoint())
}

// TogglePause switches between playing and paused.
func (g *Game) TogglePause() {
	switch g.state {
	case StatePlaying:
		g.setState(StatePaused)
	case StatePaused:
		g.setState(StatePlaying)
	}
}

// Confirm acknowledges a loss and starts a new round.
func (g *Game) Confirm() {
	if g.state == StateLost {
		g.Reset()
	}
}

// Tick advances the round by one frame.
func (g *Game) Tick() TickResult {
	var res TickResult
	if g.state != StatePlaying {
		return res
	}
	g.ticks++
	if g.bonus > g.settings.BonusFloor {
		g.bonus--
	}
	if !g.snake.Moving() {
		return res
	}

	next := g.snake.NextHead(types.GridWidth, types.GridHeight)
	res.Collision = g.collisions.CheckCollision(next)
	if res.Collision == manager.FatalCollision {
		g.crash = next
		g.setState(StateLost)
		g.log.Info().Int("score", g.score).Int("length", g.snake.Len()).Msg("snake crashed")
		return res
	}

	if tail, removed := g.snake.Step(next); removed {
		g.live.Put(tail, g.base.At(tail))
	}
	g.live.Put(next, world.SnakeBody)
	res.Moved = true

	switch res.Collision {
	case manager.FoodCollision:
		g.score += g.settings.FoodScore
		g.grow()
		if g.foods.PlaceFood() {
			g.bonus = g.settings.BonusCeiling
		}
	case manager.SpecialCollision:
		g.score += g.bonus / 10
		g.bonus = g.settings.BonusCeiling
		g.foods.ConsumeSpecial()
		g.grow()
	}
	return res
}

func (g *Game) grow() {
	g.snake.Extend++
	if g.speed > g.settings.SpeedFloor {
		g.speed--
	}
}

func (g *Game) setState(s State) {
	if g.state != s {
		g.log.Debug().Stringer("from", g.state).Stringer("to", s).Msg("state")
	}
	g.state = s
}

// Delay is the pause between ticks at the current speed.
func (g *Game) Delay() time.Duration {
	if g.speed <= 0 {
		return 0
	}
	return time.Duration(1000/g.speed) * time.Millisecond
}

func (g *Game) State() State            { return g.state }
func (g *Game) Score() int              { return g.score }
func (g *Game) Speed() int              { return g.speed }
func (g *Game) Bonus() int              { return g.bonus }
func (g *Game) Ticks() int              { return g.ticks }
func (g *Game) Spawn() types.Point      { return g.spawn }
func (g *Game) CrashPoint() types.Point { return g.crash }
func (g *Game) Snake() *entity.Snake    { return g.snake }

// Live returns the occupancy grid. Callers must not modify it.
func (g *Game) Live() *world.Grid[world.TileKind] { return &g.live }

// Base returns the static map grid. Callers must not modify it.
func (g *Game) Base() *world.Grid[world.TileKind] { return &g.base }

// Food returns the food position.
func (g *Game) Food() (types.Point, bool) { return g.foods.Food() }

// Special returns the special food position.
func (g *Game) Special() (types.Point, bool) { return g.foods.Special() }
