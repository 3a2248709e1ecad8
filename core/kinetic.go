package core

import "github.com/lixenwraith/fruit-drop/vmath"

// Kinetic is the motion state of a body in world units
// Velocity is in world units per fixed simulation step
type Kinetic struct {
	Pos vmath.Vec2
	Vel vmath.Vec2
}
