package physics

import (
	"math"

	"github.com/lixenwraith/fruit-drop/core"
	"github.com/lixenwraith/fruit-drop/parameter"
	"github.com/lixenwraith/fruit-drop/vmath"
)

// Bounds is the open-top container: walls at x=0 and x=Width, floor at y=Height
type Bounds struct {
	Width, Height float64
}

// Integrate advances one token by exactly one fixed step
// Age always advances; a sleeping token skips everything else until woken by a collision
func Integrate(t *core.Token, b Bounds) {
	t.Age++

	if math.Abs(t.Vel.X) < parameter.StillThreshold && math.Abs(t.Vel.Y) < parameter.StillThreshold {
		t.StillFrames++
		if t.StillFrames > parameter.SleepAfterFrames {
			t.Sleeping = true
			t.Vel = vmath.Vec2{}
			return
		}
	} else {
		t.StillFrames = 0
		t.Sleeping = false
	}

	if t.Sleeping {
		return
	}

	// Semi-implicit Euler: velocity first, then position
	t.Vel.Y += parameter.Gravity
	t.Pos = t.Pos.Add(t.Vel)

	ReflectBoundsX(t, b.Width)
	ReflectFloor(t, b.Height)

	t.Vel.X *= parameter.AirDampingX
	t.Vel.Y *= parameter.AirDampingY

	t.Vel.X = vmath.SnapZero(t.Vel.X, parameter.VelocitySnap)
	t.Vel.Y = vmath.SnapZero(t.Vel.Y, parameter.VelocitySnap)
}

// ReflectBoundsX clamps against the side walls, returns true if contact occurred
// Reflected velocity always points away from the touched wall
// Walls are checked in turn, so a body wider than the container ends flush with the right wall
func ReflectBoundsX(t *core.Token, width float64) bool {
	hit := false
	if t.Pos.X-t.Radius <= 0 {
		t.Pos.X = t.Radius
		t.Vel.X = math.Abs(t.Vel.X) * parameter.WallBounce
		hit = true
	}
	if t.Pos.X+t.Radius >= width {
		t.Pos.X = width - t.Radius
		t.Vel.X = -math.Abs(t.Vel.X) * parameter.WallBounce
		hit = true
	}
	return hit
}

// ReflectFloor clamps against the floor and kills residual motion, returns true if contact occurred
func ReflectFloor(t *core.Token, height float64) bool {
	if t.Pos.Y+t.Radius < height {
		return false
	}

	t.Pos.Y = height - t.Radius
	t.Vel.Y = -math.Abs(t.Vel.Y) * parameter.WallBounce
	t.Vel.X *= parameter.FloorFriction

	t.Vel.Y = vmath.SnapZero(t.Vel.Y, parameter.FloorSnapVY)
	t.Vel.X = vmath.SnapZero(t.Vel.X, parameter.FloorSnapVX)
	return true
}
