package parameter

import "time"

// Container viewport
const (
	// HUDRows is the number of terminal rows reserved above the container
	HUDRows = 2

	// StatusRows is the number of terminal rows reserved below the container
	StatusRows = 1

	// ContainerMinCols and ContainerMinRows below which a "terminal too small" notice is drawn
	ContainerMinCols = 20
	ContainerMinRows = 10
)

// Danger overlay pulse
const (
	DangerAlphaBase  = 0.25
	DangerAlphaSwing = 0.15
	DangerAlphaFade  = 0.05

	// DangerPulseRate is the overlay sine rate in radians per second
	DangerPulseRate = 1.0
)

// MergeFlashDuration is how long the merge highlight stays on screen
const MergeFlashDuration = 150 * time.Millisecond

// UnlockNoticeDuration is how long the unlock message replaces the key help
const UnlockNoticeDuration = 2 * time.Second

// AimStep is the world distance one aim key press moves the drop position
const AimStep = 10.0
