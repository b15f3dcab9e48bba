package manager

import (
	"testing"

	"golang.org/x/exp/rand"

	"serpens/game/types"
	"serpens/game/world"
)

// seqRand replays fixed values and then falls back to a seeded generator.
type seqRand struct {
	ints   []int
	floats []float64
	rest   *rand.Rand
}

func (r *seqRand) Intn(n int) int {
	if len(r.ints) > 0 {
		v := r.ints[0]
		r.ints = r.ints[1:]
		return v % n
	}
	return r.rest.Intn(n)
}

func (r *seqRand) Float64() float64 {
	if len(r.floats) > 0 {
		v := r.floats[0]
		r.floats = r.floats[1:]
		return v
	}
	return r.rest.Float64()
}

func newSeq(ints []int, floats ...float64) *seqRand {
	return &seqRand{ints: ints, floats: floats, rest: rand.New(rand.NewSource(1))}
}

func TestCheckCollision(t *testing.T) {
	var g world.Grid[world.TileKind]
	g.Set(1, 0, world.SnakeBody)
	g.Set(2, 0, world.Food)
	g.Set(3, 0, world.SpecialFood)
	g.Set(4, 0, world.Infertile)
	cm := NewCollisionManager(&g)
	want := []CollisionType{NoCollision, FatalCollision, FoodCollision, SpecialCollision, NoCollision}
	for x, w := range want {
		if got := cm.CheckCollision(types.Point{X: x, Y: 0}); got != w {
			t.Errorf("(%d,0) = %v, want %v", x, got, w)
		}
	}
}

func TestPlaceFoodRejectsOccupiedCells(t *testing.T) {
	var g world.Grid[world.TileKind]
	g.Set(0, 0, world.Infertile)
	g.Set(1, 0, world.SnakeBody)
	g.Set(2, 0, world.SpecialFood)
	// samples (0,0), (1,0), (2,0) then (3,0)
	fm := NewFoodManager(&g, newSeq([]int{0, 0, 1, 0, 2, 0, 3, 0}, 0.99), 0.2)
	if fm.PlaceFood() {
		t.Error("special placed with a roll above the chance")
	}
	food, ok := fm.Food()
	if !ok || food != (types.Point{X: 3, Y: 0}) {
		t.Fatalf("food = %v %v, want (3,0)", food, ok)
	}
	if g.Get(3, 0) != world.Food {
		t.Error("food not marked on grid")
	}
}

func TestPlaceFoodNeverOnBlockedCells(t *testing.T) {
	var g world.Grid[world.TileKind]
	for y := 0; y < types.GridHeight; y++ {
		for x := 0; x < types.GridWidth; x++ {
			switch (x + y) % 3 {
			case 0:
				g.Set(x, y, world.Infertile)
			case 1:
				g.Set(x, y, world.SnakeBody)
			}
		}
	}
	base := g
	fm := NewFoodManager(&g, rand.New(rand.NewSource(42)), 1)
	for i := 0; i < 200; i++ {
		if food, ok := fm.Food(); ok {
			g.Put(food, base.At(food))
		}
		fm.RemoveSpecial(&base)
		fm.PlaceFood()
		food, _ := fm.Food()
		if base.At(food) != world.Empty {
			t.Fatalf("food on %v cell", base.At(food))
		}
		if sp, ok := fm.Special(); ok {
			if base.At(sp) != world.Empty || sp == food {
				t.Fatalf("special on blocked cell %v", sp)
			}
		}
	}
}

func TestPlaceFoodSpecialOnlyOnce(t *testing.T) {
	var g world.Grid[world.TileKind]
	fm := NewFoodManager(&g, rand.New(rand.NewSource(7)), 1)
	if !fm.PlaceFood() {
		t.Fatal("special not placed with chance 1")
	}
	first, _ := fm.Special()
	if fm.PlaceFood() {
		t.Error("second special placed while one exists")
	}
	if sp, _ := fm.Special(); sp != first {
		t.Error("special moved")
	}
	if n := g.Count(world.SpecialFood); n != 1 {
		t.Errorf("%d special cells", n)
	}
}

func TestPlaceFoodFullGrid(t *testing.T) {
	var g world.Grid[world.TileKind]
	g.Fill(world.SnakeBody)
	fm := NewFoodManager(&g, rand.New(rand.NewSource(3)), 1)
	if fm.PlaceFood() {
		t.Error("special placed on a full grid")
	}
	if _, ok := fm.Food(); ok {
		t.Error("food placed on a full grid")
	}
}

func TestRemoveSpecialRestoresBase(t *testing.T) {
	var base world.Grid[world.TileKind]
	live := base
	fm := NewFoodManager(&live, rand.New(rand.NewSource(9)), 1)
	fm.PlaceFood()
	sp, ok := fm.Special()
	if !ok {
		t.Fatal("no special")
	}
	fm.RemoveSpecial(&base)
	if live.At(sp) != world.Empty {
		t.Error("special cell not restored")
	}
	if _, ok := fm.Special(); ok {
		t.Error("special still tracked")
	}
}
