package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/fruit-drop/catalog"
	"github.com/lixenwraith/fruit-drop/engine"
	"github.com/lixenwraith/fruit-drop/events"
	"github.com/lixenwraith/fruit-drop/parameter"
	"github.com/lixenwraith/fruit-drop/vmath"
)

const keyHelp = "←/→ aim  space drop  p pause  r restart  m mute  d debug  q quit"

// tierStyle caches per-tier presentation resolved from the catalog
type tierStyle struct {
	color RGB
	glyph rune
	name  string
}

// Renderer draws a Game onto a tcell screen, one full redraw per frame
// Owned by the loop goroutine, same as the Game
type Renderer struct {
	screen tcell.Screen
	tiers  []tierStyle

	danger  DangerOverlay
	flashes []mergeFlash

	notice      string
	noticeUntil time.Time

	showDebug bool
	muted     bool

	layout   Layout
	layoutOK bool

	now func() time.Time
}

// NewRenderer creates a renderer for the given catalog
func NewRenderer(screen tcell.Screen, cat *catalog.Catalog) *Renderer {
	r := &Renderer{
		screen: screen,
		tiers:  make([]tierStyle, cat.Len()),
		now:    time.Now,
	}
	for tier := 0; tier < cat.Len(); tier++ {
		tt := cat.Type(tier)
		c, ok := ParseHex(tt.Color)
		if !ok {
			c = RGBDefaultToken
		}
		r.tiers[tier] = tierStyle{color: c, glyph: tt.GlyphRune(), name: tt.Name}
	}
	return r
}

// SetClock replaces the wall clock used for animation
func (r *Renderer) SetClock(now func() time.Time) { r.now = now }

// ToggleDebug flips the metrics overlay and returns the new state
func (r *Renderer) ToggleDebug() bool {
	r.showDebug = !r.showDebug
	return r.showDebug
}

// SetMuted updates the mute indicator
func (r *Renderer) SetMuted(muted bool) { r.muted = muted }

// Layout returns the layout of the last drawn frame
func (r *Renderer) Layout() (Layout, bool) { return r.layout, r.layoutOK }

// DangerAlpha returns the current overlay intensity
func (r *Renderer) DangerAlpha() float64 { return r.danger.Alpha() }

// EventTypes implements events.Handler
func (r *Renderer) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventTokensMerged,
		events.EventTierUnlocked,
		events.EventGameRestart,
	}
}

// HandleEvent implements events.Handler
func (r *Renderer) HandleEvent(ev events.GameEvent) {
	now := r.now()
	switch ev.Type {
	case events.EventTokensMerged:
		p, ok := ev.Payload.(*events.MergePayload)
		if !ok {
			return
		}
		r.flashes = append(r.flashes, mergeFlash{pos: vmath.V2(p.X, p.Y), radius: p.Radius * 1.15, start: now})
	case events.EventTierUnlocked:
		if p, ok := ev.Payload.(*events.TierUnlockedPayload); ok && p.Tier < len(r.tiers) {
			ts := r.tiers[p.Tier]
			r.notice = fmt.Sprintf("New fruit unlocked: %c %s", ts.glyph, ts.name)
			r.noticeUntil = now.Add(parameter.UnlockNoticeDuration)
		}
	case events.EventGameRestart:
		r.danger.Reset()
		r.flashes = r.flashes[:0]
		r.notice = ""
	}
}

// ActiveFlashes returns the number of merge highlights still visible
func (r *Renderer) ActiveFlashes() int {
	now := r.now()
	n := 0
	for _, f := range r.flashes {
		if f.intensity(now) > 0 {
			n++
		}
	}
	return n
}

// Draw renders one full frame
func (r *Renderer) Draw(g *engine.Game) {
	now := r.now()
	s := r.screen
	cols, rows := s.Size()
	s.Clear()

	r.layout, r.layoutOK = ComputeLayout(g.Bounds(), cols, rows)
	if !r.layoutOK {
		r.drawText(0, 0, "terminal too small", styleFg(RGBDangerLine))
		s.Show()
		return
	}
	l := r.layout

	alpha := r.danger.Update(g.DangerPhase() == engine.PhaseDanger, now)
	bg := Lerp(RGBSky, RGBDanger, alpha)

	r.drawContainer(l, bg)
	r.drawDangerLine(l, g.DangerLineY(), bg)
	r.drawTokens(l, g)
	r.drawFlashes(l, now)
	if !g.DropLocked() && !g.IsGameOver() {
		r.drawPreview(l, g, bg)
	}
	r.drawHUD(cols, g)
	r.drawStatus(cols, rows, now)

	switch {
	case g.IsGameOver():
		r.drawBox(l, []string{"GAME OVER", fmt.Sprintf("Score %d", g.Score()), "r to restart"}, RGBDangerLine)
	case g.IsPaused():
		r.drawBox(l, []string{"PAUSED", "p to resume"}, RGBHUD)
	}
	if r.showDebug {
		r.drawDebug(l, g)
	}

	s.Show()
}

func styleFg(c RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(c.Tcell())
}

func styleBg(c RGB) tcell.Style {
	return tcell.StyleDefault.Background(c.Tcell())
}

// drawText writes s from (x, y), advancing by display width, and returns the end column
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x += max(1, runewidth.RuneWidth(ch))
	}
	return x
}

func (r *Renderer) drawContainer(l Layout, bg RGB) {
	bgStyle := styleBg(bg)
	wall := styleFg(RGBWall)

	for y := l.OriginY; y < l.OriginY+l.Rows; y++ {
		for x := l.OriginX; x < l.OriginX+l.Cols; x++ {
			r.screen.SetContent(x, y, ' ', nil, bgStyle)
		}
		r.screen.SetContent(l.OriginX-1, y, '│', nil, wall)
		r.screen.SetContent(l.OriginX+l.Cols, y, '│', nil, wall)
	}

	floor := l.OriginY + l.Rows
	r.screen.SetContent(l.OriginX-1, floor, '└', nil, wall)
	for x := l.OriginX; x < l.OriginX+l.Cols; x++ {
		r.screen.SetContent(x, floor, '─', nil, wall)
	}
	r.screen.SetContent(l.OriginX+l.Cols, floor, '┘', nil, wall)
}

// drawDangerLine draws a dashed line on the row containing lineY
func (r *Renderer) drawDangerLine(l Layout, lineY float64, bg RGB) {
	y := l.RowOf(lineY)
	if y < l.OriginY || y >= l.OriginY+l.Rows {
		return
	}
	style := styleBg(bg).Foreground(RGBDangerLine.Tcell())
	for x := l.OriginX; x < l.OriginX+l.Cols; x++ {
		if (x-l.OriginX)%4 < 2 {
			r.screen.SetContent(x, y, '╌', nil, style)
		}
	}
}

// drawDisc fills every cell whose center lies inside the circle
func (r *Renderer) drawDisc(l Layout, center vmath.Vec2, radius float64, fill func(x, y int)) {
	x0, y0 := l.ToCell(center.Sub(vmath.V2(radius, radius)))
	x1, y1 := l.ToCell(center.Add(vmath.V2(radius, radius)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !l.Inside(x, y) {
				continue
			}
			if vmath.Distance(l.CellCenter(x, y), center) <= radius {
				fill(x, y)
			}
		}
	}
}

func (r *Renderer) drawTokens(l Layout, g *engine.Game) {
	for _, t := range g.Tokens() {
		ts := r.tiers[t.Tier]
		color := ts.color
		if t.Sleeping {
			color = Scale(color, 0.85)
		}
		style := styleBg(color)
		r.drawDisc(l, t.Pos, t.Radius, func(x, y int) {
			r.screen.SetContent(x, y, ' ', nil, style)
		})

		cx, cy := l.ToCell(t.Pos)
		if l.Inside(cx, cy) {
			r.screen.SetContent(cx, cy, ts.glyph, nil, style.Foreground(RGBBlack.Tcell()))
		}
	}
}

// drawFlashes brightens the disc around recent merges, expired flashes are dropped
func (r *Renderer) drawFlashes(l Layout, now time.Time) {
	kept := r.flashes[:0]
	for _, f := range r.flashes {
		k := f.intensity(now)
		if k <= 0 {
			continue
		}
		kept = append(kept, f)

		r.drawDisc(l, f.pos, f.radius, func(x, y int) {
			mainc, combc, style, _ := r.screen.GetContent(x, y)
			fg, bg, _ := style.Decompose()
			cr, cg, cb := bg.RGB()
			base := RGB{uint8(max(0, cr)), uint8(max(0, cg)), uint8(max(0, cb))}
			lit := Lerp(base, RGBFlash, 0.6*k)
			r.screen.SetContent(x, y, mainc, combc, tcell.StyleDefault.Foreground(fg).Background(lit.Tcell()))
		})
	}
	r.flashes = kept
}

// drawPreview shows the queued token at the aim point with a guide to the floor
func (r *Renderer) drawPreview(l Layout, g *engine.Game, bg RGB) {
	tier := g.Queue()[0]
	ts := r.tiers[tier]
	pos := vmath.V2(g.DropX(), g.Config().DropHeight)

	cx, cy := l.ToCell(pos)
	guide := styleBg(bg).Foreground(Lerp(bg, RGBWhite, 0.6).Tcell())
	bgColor := bg.Tcell()
	for y := cy + 1; y < l.OriginY+l.Rows; y++ {
		mainc, _, style, _ := r.screen.GetContent(cx, y)
		_, cellBg, _ := style.Decompose()
		if cellBg != bgColor {
			break // first token below
		}
		if mainc == ' ' && (y-cy)%2 == 0 {
			r.screen.SetContent(cx, y, '┊', nil, guide)
		}
	}

	if l.Inside(cx, cy) {
		r.screen.SetContent(cx, cy, ts.glyph, nil, styleBg(Lerp(bg, ts.color, 0.7)))
	}
}

func (r *Renderer) drawHUD(cols int, g *engine.Game) {
	hud := styleFg(RGBHUD).Bold(true)
	r.drawText(1, 0, fmt.Sprintf("SCORE %d", g.Score()), hud)

	queue := g.Queue()
	next := "NEXT"
	for _, tier := range queue {
		next += fmt.Sprintf(" %c", r.tiers[tier].glyph)
	}
	r.drawText(max(1, cols-runewidth.StringWidth(next)-1), 0, next, hud)

	snap := g.DangerSnapshot()
	switch snap.Phase {
	case engine.PhasePendingDanger:
		r.drawText(1, 1, "! above the line", styleFg(RGBDangerLine))
	case engine.PhaseDanger:
		r.drawText(1, 1, fmt.Sprintf("DANGER %.1fs", snap.Remaining.Seconds()), styleFg(RGBDanger).Bold(true))
	}

	id := g.SessionID()
	if len(id) > 8 {
		id = id[:8]
	}
	r.drawText(max(1, cols-len(id)-1), 1, id, styleFg(RGBDim))
}

func (r *Renderer) drawStatus(cols, rows int, now time.Time) {
	y := rows - 1
	text, style := keyHelp, styleFg(RGBDim)
	if r.notice != "" && now.Before(r.noticeUntil) {
		text, style = r.notice, styleFg(RGBFlash).Bold(true)
	}
	end := r.drawText(1, y, text, style)
	if r.muted && end+8 < cols {
		r.drawText(cols-7, y, "[muted]", styleFg(RGBDim))
	}
}

// drawBox centers lines over the container on a dark panel
func (r *Renderer) drawBox(l Layout, lines []string, accent RGB) {
	width := 0
	for _, s := range lines {
		width = max(width, runewidth.StringWidth(s))
	}
	width += 4
	height := len(lines) + 2

	x0 := l.OriginX + (l.Cols-width)/2
	y0 := l.OriginY + (l.Rows-height)/2
	panel := styleBg(RGBBlack)
	for y := y0; y < y0+height; y++ {
		for x := x0; x < x0+width; x++ {
			r.screen.SetContent(x, y, ' ', nil, panel)
		}
	}
	for i, s := range lines {
		style := panel.Foreground(RGBHUD.Tcell())
		if i == 0 {
			style = panel.Foreground(accent.Tcell()).Bold(true)
		}
		x := x0 + (width-runewidth.StringWidth(s))/2
		r.drawText(x, y0+1+i, s, style)
	}
}

// drawDebug lists every registered metric in the container's top-left corner
func (r *Renderer) drawDebug(l Layout, g *engine.Game) {
	style := styleBg(RGBBlack).Foreground(RGBHUD.Tcell())
	y := l.OriginY
	for _, line := range g.Status().Snapshot() {
		if y >= l.OriginY+l.Rows {
			break
		}
		r.drawText(l.OriginX, y, fmt.Sprintf("%-18s %s", line.Key, line.Value), style)
		y++
	}
}
