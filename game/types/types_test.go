package types

import "testing"

func TestWrap(t *testing.T) {
	cases := []struct {
		in, want Point
	}{
		{Point{X: GridWidth, Y: 3}, Point{X: 0, Y: 3}},
		{Point{X: -1, Y: 3}, Point{X: GridWidth - 1, Y: 3}},
		{Point{X: 4, Y: GridHeight}, Point{X: 4, Y: 0}},
		{Point{X: 4, Y: -1}, Point{X: 4, Y: GridHeight - 1}},
		{Point{X: 7, Y: 9}, Point{X: 7, Y: 9}},
	}
	for _, c := range cases {
		if got := c.in.Wrap(GridWidth, GridHeight); got != c.want {
			t.Errorf("Wrap(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range []Direction{Up, Right, Down, Left} {
		p, q := d.ToPoint(), d.Opposite().ToPoint()
		if p.X != -q.X || p.Y != -q.Y {
			t.Errorf("%v and %v are not opposite", d, d.Opposite())
		}
	}
	if !None.ToPoint().IsZero() {
		t.Error("None should not move")
	}
}
