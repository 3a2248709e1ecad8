package render

import (
	"math"
	"time"

	"github.com/lixenwraith/fruit-drop/parameter"
	"github.com/lixenwraith/fruit-drop/vmath"
)

// DangerOverlay is the red tint intensity, pulsing while in danger and fading otherwise
type DangerOverlay struct {
	alpha float64
}

// Update advances the overlay one frame and returns the new alpha
func (d *DangerOverlay) Update(active bool, now time.Time) float64 {
	if active {
		sec := float64(now.UnixNano()) / float64(time.Second)
		d.alpha = parameter.DangerAlphaBase + parameter.DangerAlphaSwing*math.Sin(sec*parameter.DangerPulseRate)
	} else {
		d.alpha = max(0, d.alpha-parameter.DangerAlphaFade)
	}
	return d.alpha
}

func (d *DangerOverlay) Alpha() float64 { return d.alpha }

func (d *DangerOverlay) Reset() { d.alpha = 0 }

// mergeFlash highlights the disc of a freshly merged token
type mergeFlash struct {
	pos    vmath.Vec2
	radius float64
	start  time.Time
}

// intensity is 1 at start falling linearly to 0 at MergeFlashDuration
func (f mergeFlash) intensity(now time.Time) float64 {
	elapsed := now.Sub(f.start)
	if elapsed < 0 {
		return 1
	}
	if elapsed >= parameter.MergeFlashDuration {
		return 0
	}
	return 1 - float64(elapsed)/float64(parameter.MergeFlashDuration)
}
