package manager

import (
	"serpens/game/types"
	"serpens/game/world"
)

// Rand is the randomness the food manager needs. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// FoodManager places the food and the optional special food on the live
// grid. At most one of each exists at a time.
type FoodManager struct {
	grid          *world.Grid[world.TileKind]
	rng           Rand
	specialChance float64

	food       types.Point
	hasFood    bool
	special    types.Point
	hasSpecial bool
}

func NewFoodManager(grid *world.Grid[world.TileKind], rng Rand, specialChance float64) *FoodManager {
	return &FoodManager{
		grid:          grid,
		rng:           rng,
		specialChance: specialChance,
	}
}

// Reset forgets both foods without touching the grid.
func (fm *FoodManager) Reset() {
	fm.hasFood = false
	fm.hasSpecial = false
}

// Food returns the food position.
func (fm *FoodManager) Food() (types.Point, bool) {
	return fm.food, fm.hasFood
}

// Special returns the special food position.
func (fm *FoodManager) Special() (types.Point, bool) {
	return fm.special, fm.hasSpecial
}

// PlaceFood moves the food to a random empty cell and, with the configured
// chance, adds a special food when none exists. It reports whether a
// special food was created.
func (fm *FoodManager) PlaceFood() (specialPlaced bool) {
	p, ok := fm.GenerateFood()
	if !ok {
		fm.hasFood = false
		return false
	}
	fm.grid.Put(p, world.Food)
	fm.food, fm.hasFood = p, true

	if !fm.hasSpecial && fm.rng.Float64() < fm.specialChance {
		if sp, ok := fm.GenerateFood(); ok {
			fm.grid.Put(sp, world.SpecialFood)
			fm.special, fm.hasSpecial = sp, true
			return true
		}
	}
	return false
}

// ConsumeSpecial forgets the special food after the snake ate it.
func (fm *FoodManager) ConsumeSpecial() {
	fm.hasSpecial = false
}

// RemoveSpecial takes the special food off the grid, restoring the base
// kind underneath.
func (fm *FoodManager) RemoveSpecial(base *world.Grid[world.TileKind]) {
	if !fm.hasSpecial {
		return
	}
	fm.grid.Put(fm.special, base.At(fm.special))
	fm.hasSpecial = false
}

// GenerateFood samples cells until it finds an empty one. Infertile cells,
// walls, the snake and other food are never chosen. It fails only when the
// grid has no empty cell at all.
func (fm *FoodManager) GenerateFood() (types.Point, bool) {
	if fm.grid.Count(world.Empty) == 0 {
		return types.Point{}, false
	}
	for {
		p := types.Point{
			X: fm.rng.Intn(fm.grid.Width()),
			Y: fm.rng.Intn(fm.grid.Height()),
		}
		if fm.grid.At(p) == world.Empty {
			return p, true
		}
	}
}
