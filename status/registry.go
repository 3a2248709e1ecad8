package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Metric names published by the simulation
const (
	KeyTicks         = "sim.ticks"
	KeyTokens        = "sim.tokens"
	KeySleeping      = "sim.sleeping"
	KeyMerges        = "sim.merges"
	KeyDrops         = "sim.drops"
	KeyDropsRejected = "sim.drops_rejected"
	KeyScore         = "sim.score"
	KeyTickNanos     = "sim.tick_ns"
	KeyPaused        = "sim.paused"
	KeyGameOver      = "sim.game_over"
	KeySession       = "sim.session"
	KeyDangerPhase   = "sim.danger_phase"
	KeyFPS           = "ui.fps"
)

// Registry groups metric maps by value type
// Writers cache cell pointers once; the debug overlay reads through Snapshot
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of registered metrics across all maps
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Line is one formatted metric for display
type Line struct {
	Key   string
	Value string
}

// Snapshot formats every metric, grouped by type then sorted by key
func (r *Registry) Snapshot() []Line {
	lines := make([]Line, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		lines = append(lines, Line{k, strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		lines = append(lines, Line{k, fmt.Sprintf("%.2f", v.Load())})
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		lines = append(lines, Line{k, strconv.FormatBool(v.Load())})
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		lines = append(lines, Line{k, v.Load()})
	})
	return lines
}
