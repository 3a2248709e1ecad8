package parameter

// Integrator tunables, all per fixed simulation step
const (
	// Gravity is added to vertical velocity every awake step
	Gravity = 0.5

	// WallBounce scales the reflected velocity on wall and floor contact
	WallBounce = 0.01

	// FloorFriction scales horizontal velocity on floor contact
	FloorFriction = 0.05

	// FloorSnapVY and FloorSnapVX zero residual velocity on floor contact
	FloorSnapVY = 2.0
	FloorSnapVX = 0.5

	// AirDampingX and AirDampingY are applied after boundary handling every awake step
	AirDampingX = 0.9
	AirDampingY = 0.95

	// VelocitySnap zeroes any velocity component below this magnitude
	VelocitySnap = 0.3
)

// Sleep rule
const (
	// StillThreshold is the per-axis speed below which a token counts as still
	StillThreshold = 0.05

	// SleepAfterFrames is the still-frame count that must be exceeded before sleeping
	SleepAfterFrames = 15
)

// Collision
const (
	// ContactBuffer is added to the radius sum for overlap tests
	ContactBuffer = 0.5

	// CoincidentOffset separates tokens whose centers coincide
	CoincidentOffset = 1.0

	// CollisionDamping scales both velocities after a push-apart
	CollisionDamping = 0.5
)

// Merge
const (
	// MergeMinAge is the age both tokens must exceed to be merge-eligible
	MergeMinAge = 5

	// MergeMomentumShare is the fraction of summed parent velocity inherited by the result
	MergeMomentumShare = 0.25

	// MergeScoreMultiplier scales the result tier's points
	MergeScoreMultiplier = 2
)
