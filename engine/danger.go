package engine

import (
	"time"

	"github.com/lixenwraith/fruit-drop/core"
)

// DangerPhase is the game-over state machine phase
type DangerPhase int

const (
	// PhaseSafe: no token breaches the danger line
	PhaseSafe DangerPhase = iota
	// PhasePendingDanger: breach seen, debounce window running
	PhasePendingDanger
	// PhaseDanger: breach outlasted debounce, game-over window running
	PhaseDanger
	// PhaseGameOver: terminal until restart
	PhaseGameOver
)

func (p DangerPhase) String() string {
	switch p {
	case PhaseSafe:
		return "Safe"
	case PhasePendingDanger:
		return "PendingDanger"
	case PhaseDanger:
		return "Danger"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

var validTransitions = map[DangerPhase][]DangerPhase{
	PhaseSafe:          {PhasePendingDanger},
	PhasePendingDanger: {PhaseDanger, PhaseSafe},
	PhaseDanger:        {PhaseGameOver, PhaseSafe},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to DangerPhase) bool {
	for _, phase := range validTransitions[from] {
		if phase == to {
			return true
		}
	}
	return false
}

// DangerTiming holds the thresholds of the state machine
type DangerTiming struct {
	LineY    float64
	Grace    time.Duration
	Debounce time.Duration
	Timeout  time.Duration
}

// DangerState tracks breach timestamps, zero time means unset
type DangerState struct {
	Phase           DangerPhase
	AboveLineSince  time.Time
	DangerModeSince time.Time
}

// transition applies a validated phase change
func (d *DangerState) transition(to DangerPhase) bool {
	if !CanTransition(d.Phase, to) {
		return false
	}
	d.Phase = to
	return true
}

func (d *DangerState) reset() {
	d.Phase = PhaseSafe
	d.AboveLineSince = time.Time{}
	d.DangerModeSince = time.Time{}
}

// Evaluate advances the machine for one tick and returns the phases before and after
// Nothing changes during the grace window after sessionStart or once game over is reached
func (d *DangerState) Evaluate(now, sessionStart time.Time, breached bool, timing DangerTiming) (from, to DangerPhase) {
	from = d.Phase
	if d.Phase == PhaseGameOver || now.Sub(sessionStart) < timing.Grace {
		return from, from
	}

	if !breached {
		if d.Phase != PhaseSafe {
			d.transition(PhaseSafe)
		}
		d.reset()
		return from, d.Phase
	}

	if d.AboveLineSince.IsZero() {
		d.AboveLineSince = now
		d.transition(PhasePendingDanger)
	}

	if now.Sub(d.AboveLineSince) > timing.Debounce {
		if d.DangerModeSince.IsZero() {
			d.DangerModeSince = now
			d.transition(PhaseDanger)
		}
		if now.Sub(d.DangerModeSince) > timing.Timeout {
			d.transition(PhaseGameOver)
		}
	}
	return from, d.Phase
}

// Breached reports whether any token's top edge is at or above lineY
func Breached(tokens []*core.Token, lineY float64) bool {
	for _, t := range tokens {
		if t.Top() <= lineY {
			return true
		}
	}
	return false
}

// DangerSnapshot provides a consistent view of danger state for display
type DangerSnapshot struct {
	Phase DangerPhase
	// AboveFor is how long the line has been breached, 0 when safe
	AboveFor time.Duration
	// Remaining is the time left before game over while in danger, 0 otherwise
	Remaining time.Duration
}

// Snapshot reads the state at now
func (d *DangerState) Snapshot(now time.Time, timing DangerTiming) DangerSnapshot {
	snap := DangerSnapshot{Phase: d.Phase}
	if !d.AboveLineSince.IsZero() {
		snap.AboveFor = now.Sub(d.AboveLineSince)
	}
	if d.Phase == PhaseDanger {
		snap.Remaining = max(0, timing.Timeout-now.Sub(d.DangerModeSince))
	}
	return snap
}
