package physics

import (
	"testing"

	"github.com/lixenwraith/fruit-drop/core"
	"github.com/lixenwraith/fruit-drop/vmath"
)

func TestOverlapping(t *testing.T) {
	tests := []struct {
		name string
		dist float64
		want bool
	}{
		{"deep", 25, true},
		{"inside buffer", 50.4, true},
		{"at contact distance", 50.5, false},
		{"apart", 60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newToken(100, 300, 25)
			b := newToken(100+tt.dist, 300, 25)
			if got := Overlapping(a, b); got != tt.want {
				t.Errorf("Overlapping at %f = %v, want %v", tt.dist, got, tt.want)
			}
		})
	}
}

func TestResolveSplitsEvenly(t *testing.T) {
	a := newToken(100, 300, 25)
	b := newToken(140, 300, 25)
	a.Vel = vmath.V2(2, 4)
	b.Vel = vmath.V2(-2, 6)
	a.Sleeping, a.StillFrames = true, 20
	b.Sleeping, b.StillFrames = true, 20

	if !Resolve(a, b, testBounds) {
		t.Fatal("Resolve returned false for overlapping pair")
	}

	if !approx(a.Pos.X, 94.75) || !approx(b.Pos.X, 145.25) {
		t.Errorf("positions = %f, %f, want 94.75, 145.25", a.Pos.X, b.Pos.X)
	}
	if !approx(vmath.Distance(a.Pos, b.Pos), ContactDistance(a, b)) {
		t.Errorf("distance after resolve = %f, want %f", vmath.Distance(a.Pos, b.Pos), ContactDistance(a, b))
	}
	if a.Vel != vmath.V2(1, 2) || b.Vel != vmath.V2(-1, 3) {
		t.Errorf("velocities = %+v %+v, want halved", a.Vel, b.Vel)
	}
	if a.Sleeping || b.Sleeping || a.StillFrames != 0 || b.StillFrames != 0 {
		t.Error("expected both tokens woken")
	}
}

func TestResolveIdempotentWhenSeparated(t *testing.T) {
	a := newToken(100, 300, 25)
	b := newToken(160, 300, 25)
	a.Vel = vmath.V2(1, 1)
	tokens := []*core.Token{a, b}

	for i := 0; i < 3; i++ {
		if n := ResolveAll(tokens, testBounds, nil); n != 0 {
			t.Fatalf("pass %d resolved %d pairs, want 0", i, n)
		}
	}
	if a.Pos != vmath.V2(100, 300) || b.Pos != vmath.V2(160, 300) {
		t.Errorf("separated pair moved: %+v %+v", a.Pos, b.Pos)
	}
	if a.Vel != vmath.V2(1, 1) {
		t.Errorf("separated pair velocity changed: %+v", a.Vel)
	}
}

func TestResolveLeftWallBlocksCorrection(t *testing.T) {
	a := newToken(26, 300, 25)
	b := newToken(60, 300, 25)

	Resolve(a, b, testBounds)

	if a.Pos.X != 26 {
		t.Errorf("wall-side token moved to x=%f, want 26", a.Pos.X)
	}
	if !approx(b.Pos.X, 76.5) {
		t.Errorf("partner x = %f, want full correction to 76.5", b.Pos.X)
	}
}

func TestResolveFloorBlocksCorrection(t *testing.T) {
	upper := newToken(200, 560, 25)
	floor := newToken(200, 575, 25)

	Resolve(upper, floor, testBounds)

	if floor.Pos.Y != 575 {
		t.Errorf("floor token moved to y=%f, want 575", floor.Pos.Y)
	}
	if !approx(upper.Pos.Y, 524.5) {
		t.Errorf("upper token y = %f, want 524.5", upper.Pos.Y)
	}
}

func TestResolveCoincidentCenters(t *testing.T) {
	a := newToken(100, 300, 25)
	b := newToken(100, 300, 25)

	Resolve(a, b, testBounds)

	if a.Pos.X != 101 || b.Pos.X != 99 {
		t.Errorf("coincident split = %f, %f, want 101, 99", a.Pos.X, b.Pos.X)
	}
	if a.Pos.Y != 300 || b.Pos.Y != 300 {
		t.Error("coincident split must be horizontal only")
	}
}

func TestResolveAllHonorsSkip(t *testing.T) {
	a := newToken(100, 300, 25)
	b := newToken(120, 300, 25)
	tokens := []*core.Token{a, b}

	n := ResolveAll(tokens, testBounds, func(x, y *core.Token) bool { return true })
	if n != 0 {
		t.Errorf("resolved %d pairs, want 0 with skip-all filter", n)
	}
	if a.Pos.X != 100 || b.Pos.X != 120 {
		t.Error("skipped pair must not move")
	}

	n = ResolveAll(tokens, testBounds, nil)
	if n != 1 {
		t.Errorf("resolved %d pairs, want 1 without filter", n)
	}
}
