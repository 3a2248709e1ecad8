package engine

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/fruit-drop/catalog"
	"github.com/lixenwraith/fruit-drop/config"
	"github.com/lixenwraith/fruit-drop/core"
	"github.com/lixenwraith/fruit-drop/events"
	"github.com/lixenwraith/fruit-drop/physics"
	"github.com/lixenwraith/fruit-drop/status"
	"github.com/lixenwraith/fruit-drop/vmath"
)

// TokenView is a read-only copy of a token for renderers
type TokenView struct {
	ID       uint64
	Tier     int
	Pos      vmath.Vec2
	Radius   float64
	Sleeping bool
}

// Game is the simulation context: one catalog, one clock, one live GameState
// Not safe for concurrent use; the front end loop owns it and calls Tick between frames
type Game struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	bounds  physics.Bounds
	timing  DangerTiming

	clock     *PausableClock
	spawner   *Spawner
	scheduler *Scheduler
	state     *GameState
	cooldown  int // scheduler handle of the pending drop unlock, 0 = none
	events    *events.EventQueue
	status    *status.Registry

	// Cached metric pointers
	statTicks    *atomic.Int64
	statTokens   *atomic.Int64
	statSleeping *atomic.Int64
	statMerges   *atomic.Int64
	statDrops    *atomic.Int64
	statRejected *atomic.Int64
	statScore    *atomic.Int64
	statTickNs   *atomic.Int64
	statPaused   *atomic.Bool
	statGameOver *atomic.Bool
	statSession  *status.AtomicString
	statPhase    *status.AtomicString
}

// NewGame creates a game with a fresh session
// tp nil uses wall time, reg nil allocates a private registry, cfg.Seed 0 seeds from the clock
func NewGame(cfg *config.Config, cat *catalog.Catalog, tp TimeProvider, reg *status.Registry) *Game {
	if cfg == nil {
		cfg = config.Default()
	}
	if cat == nil {
		cat = catalog.Default()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	clock := NewPausableClock(tp)
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(clock.RealTime().UnixNano())
	}

	g := &Game{
		cfg:     cfg,
		catalog: cat,
		bounds:  physics.Bounds{Width: cfg.WorldWidth, Height: cfg.WorldHeight},
		timing: DangerTiming{
			LineY:    cfg.DangerLineY,
			Grace:    cfg.GracePeriod,
			Debounce: cfg.DangerDebounce,
			Timeout:  cfg.DangerTimeout,
		},
		clock:     clock,
		spawner:   NewSpawner(seed),
		scheduler: NewScheduler(),
		events:    events.NewEventQueue(),
		status:    reg,

		statTicks:    reg.Ints.Get(status.KeyTicks),
		statTokens:   reg.Ints.Get(status.KeyTokens),
		statSleeping: reg.Ints.Get(status.KeySleeping),
		statMerges:   reg.Ints.Get(status.KeyMerges),
		statDrops:    reg.Ints.Get(status.KeyDrops),
		statRejected: reg.Ints.Get(status.KeyDropsRejected),
		statScore:    reg.Ints.Get(status.KeyScore),
		statTickNs:   reg.Ints.Get(status.KeyTickNanos),
		statPaused:   reg.Bools.Get(status.KeyPaused),
		statGameOver: reg.Bools.Get(status.KeyGameOver),
		statSession:  reg.Strings.Get(status.KeySession),
		statPhase:    reg.Strings.Get(status.KeyDangerPhase),
	}

	g.state = NewGameState(cat, cfg.InitialUnlockedTier, cfg.WorldWidth, clock.Now())
	g.publishStatus()
	log.Printf("session %s started (seed %d, %d tiers)", g.state.SessionID, seed, cat.Len())
	return g
}

// Tick advances the simulation by one fixed step
// Order: deferred callbacks, integrate, push apart, one merge, danger evaluation
func (g *Game) Tick() {
	if g.clock.IsPaused() {
		return
	}
	start := g.clock.RealTime()
	now := g.clock.Now()

	g.scheduler.RunDue(now)
	if g.state.GameOver {
		return
	}

	st := g.state
	st.Ticks++

	for _, t := range st.Tokens {
		physics.Integrate(t, g.bounds)
	}

	// Pairs about to fuse are left overlapping for the merge pass
	physics.ResolveAll(st.Tokens, g.bounds, MergeEligible)

	if i, j, ok := FindMerge(st.Tokens); ok {
		res := st.ApplyMerge(g.catalog, i, j)
		g.push(now, events.EventTokensMerged, &events.MergePayload{
			SourceTier: res.SourceTier,
			ResultTier: res.ResultTier,
			Consumed:   res.Consumed,
			X:          res.Pos.X,
			Y:          res.Pos.Y,
			Radius:     g.catalog.Radius(res.ResultTier),
			Points:     res.Points,
		})
		if res.Unlocked {
			log.Printf("tier %d (%s) unlocked", res.ResultTier, g.catalog.Type(res.ResultTier).Name)
			g.push(now, events.EventTierUnlocked, &events.TierUnlockedPayload{Tier: res.ResultTier})
		}
	}

	from, to := st.Danger.Evaluate(now, st.StartTime, Breached(st.Tokens, g.timing.LineY), g.timing)
	if from != to {
		g.onDangerPhase(now, to)
	}

	g.publishStatus()
	g.statTickNs.Store(int64(g.clock.RealTime().Sub(start)))
}

func (g *Game) onDangerPhase(now time.Time, to DangerPhase) {
	switch to {
	case PhaseSafe:
		g.push(now, events.EventDangerCleared, nil)
	case PhasePendingDanger:
		g.push(now, events.EventDangerPending, nil)
	case PhaseDanger:
		g.push(now, events.EventDangerStart, nil)
	case PhaseGameOver:
		g.state.GameOver = true
		log.Printf("session %s game over: score %d after %d ticks", g.state.SessionID, g.state.Score, g.state.Ticks)
		g.push(now, events.EventGameOver, &events.GameOverPayload{Score: g.state.Score, Ticks: g.state.Ticks})
	}
}

// RequestDrop drops the queue front at the current aim position
func (g *Game) RequestDrop() bool {
	return g.RequestDropAt(g.state.DropX)
}

// RequestDropAt drops the queue front at x, clamped to the container
// Returns false while paused, locked by the cooldown, or after game over
func (g *Game) RequestDropAt(x float64) bool {
	now := g.clock.Now()
	g.scheduler.RunDue(now)

	st := g.state
	if g.clock.IsPaused() || st.GameOver || st.DropLocked {
		g.statRejected.Add(1)
		g.push(now, events.EventDropRejected, nil)
		return false
	}

	x = vmath.Clamp(x, 0, g.bounds.Width)
	tier := g.spawner.Pop(&st.Queue, st.MaxUnlockedTier)
	t := st.Spawn(g.catalog, tier, vmath.V2(x, g.cfg.DropHeight), vmath.Vec2{})
	st.Drops++

	st.DropLocked = true
	g.cooldown = g.scheduler.After(now, g.cfg.DropCooldown, func() {
		st.DropLocked = false
		g.cooldown = 0
	})

	g.push(now, events.EventTokenDropped, &events.TokenDroppedPayload{
		TokenID: t.ID,
		Tier:    tier,
		X:       t.Pos.X,
		Y:       t.Pos.Y,
	})
	g.publishStatus()
	return true
}

// SetDropX moves the aim, keeping the previewed token inside the walls
// Ignored while a drop is locked or the game is over
func (g *Game) SetDropX(x float64) {
	st := g.state
	if st.DropLocked || st.GameOver {
		return
	}
	r := g.catalog.Radius(st.Queue[0])
	lo, hi := r, g.bounds.Width-r
	if lo > hi {
		lo, hi = g.bounds.Width/2, g.bounds.Width/2
	}
	st.DropX = vmath.Clamp(x, lo, hi)
}

// MoveDrop shifts the aim by dx
func (g *Game) MoveDrop(dx float64) {
	g.SetDropX(g.state.DropX + dx)
}

// TogglePause flips the pause state and returns the new state
func (g *Game) TogglePause() bool {
	if g.clock.IsPaused() {
		g.clock.Resume()
	} else {
		g.clock.Pause()
	}
	paused := g.clock.IsPaused()
	g.statPaused.Store(paused)
	g.push(g.clock.Now(), events.EventPauseToggled, &events.PausePayload{Paused: paused})
	return paused
}

// Restart discards the session and starts a new one; pause state is kept
func (g *Game) Restart() {
	prev := g.state
	if g.cooldown != 0 {
		g.scheduler.Cancel(g.cooldown)
		g.cooldown = 0
	}
	g.state = NewGameState(g.catalog, g.cfg.InitialUnlockedTier, g.bounds.Width, g.clock.Now())
	log.Printf("session %s restarted as %s (previous score %d)", prev.SessionID, g.state.SessionID, prev.Score)

	g.push(g.clock.Now(), events.EventGameRestart, &events.RestartPayload{SessionID: g.state.SessionID.String()})
	g.publishStatus()
}

func (g *Game) push(now time.Time, t events.EventType, payload any) {
	g.events.Push(events.GameEvent{
		Type:      t,
		Payload:   payload,
		Tick:      g.state.Ticks,
		Timestamp: now,
	})
}

func (g *Game) publishStatus() {
	st := g.state
	g.statTicks.Store(int64(st.Ticks))
	g.statTokens.Store(int64(len(st.Tokens)))
	g.statSleeping.Store(int64(st.SleepingCount()))
	g.statMerges.Store(int64(st.Merges))
	g.statDrops.Store(int64(st.Drops))
	g.statScore.Store(int64(st.Score))
	g.statGameOver.Store(st.GameOver)
	g.statPaused.Store(g.clock.IsPaused())
	g.statSession.Store(st.SessionID.String())
	g.statPhase.Store(st.Danger.Phase.String())
}

// ===== READ ACCESSORS =====

// Tokens returns copies of the live tokens in slice order
func (g *Game) Tokens() []TokenView {
	views := make([]TokenView, len(g.state.Tokens))
	for i, t := range g.state.Tokens {
		views[i] = viewOf(t)
	}
	return views
}

func viewOf(t *core.Token) TokenView {
	return TokenView{ID: t.ID, Tier: t.Tier, Pos: t.Pos, Radius: t.Radius, Sleeping: t.Sleeping}
}

func (g *Game) Score() int                 { return g.state.Score }
func (g *Game) MaxUnlockedTier() int       { return g.state.MaxUnlockedTier }
func (g *Game) DangerPhase() DangerPhase   { return g.state.Danger.Phase }
func (g *Game) IsGameOver() bool           { return g.state.GameOver }
func (g *Game) IsPaused() bool             { return g.clock.IsPaused() }
func (g *Game) DropX() float64             { return g.state.DropX }
func (g *Game) DropLocked() bool           { return g.state.DropLocked }
func (g *Game) SessionID() string          { return g.state.SessionID.String() }
func (g *Game) Bounds() physics.Bounds     { return g.bounds }
func (g *Game) Catalog() *catalog.Catalog  { return g.catalog }
func (g *Game) Config() *config.Config     { return g.cfg }
func (g *Game) Events() *events.EventQueue { return g.events }
func (g *Game) Status() *status.Registry   { return g.status }
func (g *Game) Ticks() uint64              { return g.state.Ticks }

// Queue returns the upcoming tiers, front first
func (g *Game) Queue() [3]int { return g.state.Queue }

// DangerSnapshot returns the danger state at current game time
func (g *Game) DangerSnapshot() DangerSnapshot {
	return g.state.Danger.Snapshot(g.clock.Now(), g.timing)
}

// DangerLineY returns the breach threshold in world units
func (g *Game) DangerLineY() float64 { return g.timing.LineY }

// State returns the live session state; callers outside the loop goroutine must not mutate it
func (g *Game) State() *GameState { return g.state }
