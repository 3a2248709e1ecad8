package render

import (
	"math"

	"github.com/lixenwraith/fruit-drop/parameter"
	"github.com/lixenwraith/fruit-drop/physics"
	"github.com/lixenwraith/fruit-drop/vmath"
)

// cellAspect is the height of a terminal cell relative to its width
const cellAspect = 2.0

// Layout maps world units onto a rectangle of terminal cells
// The container keeps its aspect ratio: one row spans cellAspect times the world units of one column
type Layout struct {
	// Inner container rectangle, walls are drawn one cell outside it
	OriginX, OriginY int
	Cols, Rows       int

	// UnitsPerCol is the world width covered by one column
	UnitsPerCol float64
	UnitsPerRow float64

	bounds physics.Bounds
}

// ComputeLayout fits bounds into a screen of cols×rows, ok is false when the screen is too small
func ComputeLayout(bounds physics.Bounds, cols, rows int) (Layout, bool) {
	availCols := cols - 2                                            // side walls
	availRows := rows - parameter.HUDRows - parameter.StatusRows - 1 // floor
	if availCols < parameter.ContainerMinCols || availRows < parameter.ContainerMinRows {
		return Layout{bounds: bounds}, false
	}

	upc := math.Max(bounds.Width/float64(availCols), bounds.Height/(cellAspect*float64(availRows)))
	l := Layout{
		UnitsPerCol: upc,
		UnitsPerRow: upc * cellAspect,
		bounds:      bounds,
	}
	l.Cols = min(availCols, int(math.Ceil(bounds.Width/l.UnitsPerCol)))
	l.Rows = min(availRows, int(math.Ceil(bounds.Height/l.UnitsPerRow)))
	l.OriginX = 1 + (availCols-l.Cols)/2
	l.OriginY = parameter.HUDRows
	return l, true
}

// ToCell returns the screen cell containing world point p
func (l Layout) ToCell(p vmath.Vec2) (x, y int) {
	cx := int(math.Floor(p.X / l.UnitsPerCol))
	cy := int(math.Floor(p.Y / l.UnitsPerRow))
	return l.OriginX + cx, l.OriginY + cy
}

// CellCenter returns the world point at the center of screen cell (x, y)
func (l Layout) CellCenter(x, y int) vmath.Vec2 {
	return vmath.V2(
		(float64(x-l.OriginX)+0.5)*l.UnitsPerCol,
		(float64(y-l.OriginY)+0.5)*l.UnitsPerRow,
	)
}

// WorldX returns the world X under screen column x, clamped to the container
func (l Layout) WorldX(x int) float64 {
	return vmath.Clamp(l.CellCenter(x, l.OriginY).X, 0, l.bounds.Width)
}

// RowOf returns the screen row containing world Y
func (l Layout) RowOf(y float64) int {
	return l.OriginY + int(math.Floor(y/l.UnitsPerRow))
}

// Inside reports whether screen cell (x, y) lies within the container interior
func (l Layout) Inside(x, y int) bool {
	return x >= l.OriginX && x < l.OriginX+l.Cols && y >= l.OriginY && y < l.OriginY+l.Rows
}
