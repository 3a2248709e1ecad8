package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/fruit-drop/catalog"
	"github.com/lixenwraith/fruit-drop/core"
	"github.com/lixenwraith/fruit-drop/parameter"
	"github.com/lixenwraith/fruit-drop/vmath"
)

// GameState is the per-session simulation state
// Restart replaces it wholesale, nothing carries over between sessions
type GameState struct {
	SessionID uuid.UUID
	StartTime time.Time

	// Tokens in creation order, merge results are appended at the end
	Tokens []*core.Token

	Score           int
	MaxUnlockedTier int
	Queue           [parameter.QueueLength]int

	Danger   DangerState
	GameOver bool

	// Aim and drop lock
	DropX      float64
	DropLocked bool

	// Counters
	Ticks  uint64
	Merges uint64
	Drops  uint64
	NextID uint64
}

// NewGameState creates a fresh session, initialTier is clamped to the catalog
func NewGameState(cat *catalog.Catalog, initialTier int, width float64, now time.Time) *GameState {
	initialTier = max(0, min(initialTier, cat.MaxTier()))

	queue := parameter.InitialQueue
	for i := range queue {
		queue[i] = min(queue[i], initialTier)
	}

	return &GameState{
		SessionID:       uuid.New(),
		StartTime:       now,
		Tokens:          make([]*core.Token, 0, 64),
		MaxUnlockedTier: initialTier,
		Queue:           queue,
		DropX:           width / 2,
		NextID:          1,
	}
}

// Spawn creates a token of tier at pos, caching the radius from the catalog, and appends it
func (gs *GameState) Spawn(cat *catalog.Catalog, tier int, pos, vel vmath.Vec2) *core.Token {
	t := &core.Token{
		Kinetic: core.Kinetic{Pos: pos, Vel: vel},
		ID:      gs.NextID,
		Tier:    tier,
		Radius:  cat.Radius(tier),
	}
	gs.NextID++
	gs.Tokens = append(gs.Tokens, t)
	return t
}

// SleepingCount returns the number of sleeping tokens
func (gs *GameState) SleepingCount() int {
	n := 0
	for _, t := range gs.Tokens {
		if t.Sleeping {
			n++
		}
	}
	return n
}
