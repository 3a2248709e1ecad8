package render

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// RGB is a 24-bit color, converted to tcell at draw time
type RGB struct {
	R, G, B uint8
}

// Palette
var (
	RGBBlack        = RGB{0, 0, 0}
	RGBWhite        = RGB{255, 255, 255}
	RGBSky          = RGB{135, 206, 235} // container background
	RGBDanger       = RGB{255, 0, 0}
	RGBDangerLine   = RGB{255, 107, 107}
	RGBWall         = RGB{120, 90, 60}
	RGBHUD          = RGB{230, 230, 230}
	RGBDim          = RGB{150, 150, 150}
	RGBFlash        = RGB{255, 250, 200}
	RGBDefaultToken = RGB{200, 200, 200}
)

// clamp converts float to uint8 with saturation
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// ParseHex decodes "#rrggbb", ok is false for anything else
func ParseHex(s string) (RGB, bool) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// Lerp mixes a toward b by t in [0, 1], the alpha-over used for overlays
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: clamp(float64(a.R) + (float64(b.R)-float64(a.R))*t + 0.5),
		G: clamp(float64(a.G) + (float64(b.G)-float64(a.G))*t + 0.5),
		B: clamp(float64(a.B) + (float64(b.B)-float64(a.B))*t + 0.5),
	}
}

// Scale multiplies every channel by f, f > 1 brightens with saturation
func Scale(c RGB, f float64) RGB {
	return RGB{
		R: clamp(float64(c.R)*f + 0.5),
		G: clamp(float64(c.G)*f + 0.5),
		B: clamp(float64(c.B)*f + 0.5),
	}
}

// Luma returns perceived brightness in [0, 255]
func Luma(c RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Tcell converts to a tcell RGB color; tcell downsamples on 256-color terminals
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
