package physics

import (
	"github.com/lixenwraith/fruit-drop/core"
	"github.com/lixenwraith/fruit-drop/parameter"
	"github.com/lixenwraith/fruit-drop/vmath"
)

// ContactDistance is the center distance below which two tokens touch
func ContactDistance(a, b *core.Token) float64 {
	return a.Radius + b.Radius + parameter.ContactBuffer
}

// Overlapping reports whether a and b touch, shared by push-apart and merge detection
func Overlapping(a, b *core.Token) bool {
	return vmath.Distance(a.Pos, b.Pos) < ContactDistance(a, b)
}

// PairFilter returns true for pairs the resolver must leave alone
type PairFilter func(a, b *core.Token) bool

// ResolveAll runs one push-apart pass over every unordered pair in ascending index order
// Returns the number of pairs corrected
func ResolveAll(tokens []*core.Token, bounds Bounds, skip PairFilter) int {
	resolved := 0
	for i := 0; i < len(tokens); i++ {
		for j := i + 1; j < len(tokens); j++ {
			a, b := tokens[i], tokens[j]
			if !Overlapping(a, b) {
				continue
			}
			if skip != nil && skip(a, b) {
				continue
			}
			if Resolve(a, b, bounds) {
				resolved++
			}
		}
	}
	return resolved
}

// Resolve separates an overlapping pair along the center normal, returns false if already separated
// A token the correction would push through a wall or the floor keeps its position on that axis,
// the partner takes the full correction instead
func Resolve(a, b *core.Token, bounds Bounds) bool {
	delta := a.Pos.Sub(b.Pos)
	dist := delta.Len()
	minDist := ContactDistance(a, b)

	if dist == 0 {
		a.Pos.X += parameter.CoincidentOffset
		b.Pos.X -= parameter.CoincidentOffset
		return true
	}

	if dist >= minDist {
		return false
	}

	total := minDist - dist
	n := delta.Scale(1 / dist)
	half := total / 2

	sepA := n.Scale(half)
	sepB := n.Scale(-half)

	// Later checks override earlier ones when both sides are blocked
	if a.Pos.X+sepA.X-a.Radius < 0 || a.Pos.X+sepA.X+a.Radius > bounds.Width {
		sepA.X = 0
		sepB.X = -n.X * total
	}
	if b.Pos.X+sepB.X-b.Radius < 0 || b.Pos.X+sepB.X+b.Radius > bounds.Width {
		sepB.X = 0
		sepA.X = n.X * total
	}
	if a.Pos.Y+sepA.Y+a.Radius > bounds.Height {
		sepA.Y = 0
		sepB.Y = -n.Y * total
	}
	if b.Pos.Y+sepB.Y+b.Radius > bounds.Height {
		sepB.Y = 0
		sepA.Y = n.Y * total
	}

	a.Pos = a.Pos.Add(sepA)
	b.Pos = b.Pos.Add(sepB)

	a.Vel = a.Vel.Scale(parameter.CollisionDamping)
	b.Vel = b.Vel.Scale(parameter.CollisionDamping)

	a.Wake()
	b.Wake()
	return true
}
