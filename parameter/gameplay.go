package parameter

import "time"

// World defaults in world units
const (
	WorldWidth  = 400.0
	WorldHeight = 600.0

	// DropHeight is the spawn Y of a dropped token, above the danger line
	DropHeight = 30.0
)

// Simulation cadence
const (
	// TickInterval drives the fixed step, roughly one display refresh
	TickInterval = 16 * time.Millisecond
)

// Danger line and game-over timing
const (
	// DangerLineY is the threshold a token's top edge must reach to count as a breach
	DangerLineY = 60.0

	// GracePeriod suppresses the danger check after session start
	GracePeriod = 3 * time.Second

	// DangerDebounce is how long a breach must persist before entering danger
	DangerDebounce = 500 * time.Millisecond

	// DangerTimeout is how long danger must persist before game over
	DangerTimeout = 3 * time.Second
)

// Drop and spawn
const (
	// DropCooldown rejects new drops after a successful drop
	DropCooldown = 500 * time.Millisecond

	// InitialUnlockedTier is the spawn ceiling at session start
	InitialUnlockedTier = 2

	// QueueLength is the number of upcoming tiers shown to the player
	QueueLength = 3
)

// InitialQueue is the upcoming-tier queue at session start
var InitialQueue = [QueueLength]int{0, 0, 1}

// Events
const (
	// EventQueueSize must be a power of two
	EventQueueSize  = 256
	EventBufferMask = EventQueueSize - 1
)
