package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/fruit-drop/catalog"
	"github.com/lixenwraith/fruit-drop/config"
	"github.com/lixenwraith/fruit-drop/events"
	"github.com/lixenwraith/fruit-drop/status"
	"github.com/lixenwraith/fruit-drop/vmath"
)

func newTestGame(t *testing.T, seed uint64) (*Game, *MockTimeProvider) {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = seed
	mock := NewMockTimeProvider(testEpoch)
	return NewGame(cfg, catalog.Default(), mock, status.NewRegistry()), mock
}

func eventTypes(evs []events.GameEvent) []events.EventType {
	out := make([]events.EventType, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}

func containsEvent(evs []events.GameEvent, want events.EventType) bool {
	for _, ev := range evs {
		if ev.Type == want {
			return true
		}
	}
	return false
}

func TestNewGameInitialState(t *testing.T) {
	g, _ := newTestGame(t, 1)

	if g.Score() != 0 || len(g.Tokens()) != 0 {
		t.Errorf("fresh game has score %d, %d tokens", g.Score(), len(g.Tokens()))
	}
	if g.MaxUnlockedTier() != 2 {
		t.Errorf("MaxUnlockedTier() = %d, want 2", g.MaxUnlockedTier())
	}
	if g.Queue() != [3]int{0, 0, 1} {
		t.Errorf("Queue() = %v, want [0 0 1]", g.Queue())
	}
	if g.DangerPhase() != PhaseSafe || g.IsGameOver() {
		t.Errorf("fresh game phase %s, over %v", g.DangerPhase(), g.IsGameOver())
	}
	if g.DropX() != 200 {
		t.Errorf("DropX() = %v, want 200", g.DropX())
	}
	if g.SessionID() == "" {
		t.Error("empty session id")
	}
	if got := g.Status().Strings.Get(status.KeySession).Load(); got != g.SessionID() {
		t.Errorf("status session = %q, want %q", got, g.SessionID())
	}
}

func TestTickMergesTouchingPair(t *testing.T) {
	g, _ := newTestGame(t, 1)
	cat := g.Catalog()
	st := g.State()

	r := cat.Radius(0)
	floorY := g.Bounds().Height - r
	spawnAged(st, cat, 0, 200, floorY, 10)
	spawnAged(st, cat, 0, 200+r, floorY, 10)

	g.Tick()

	tokens := g.Tokens()
	if len(tokens) != 1 {
		t.Fatalf("token count after merge = %d, want 1", len(tokens))
	}
	if tokens[0].Tier != 1 {
		t.Errorf("merged tier = %d, want 1", tokens[0].Tier)
	}
	if d := vmath.Distance(tokens[0].Pos, vmath.V2(200+r/2, floorY)); d > 1 {
		t.Errorf("merged token at %v, %v from midpoint", tokens[0].Pos, d)
	}
	if want := cat.Points(1) * 2; g.Score() != want {
		t.Errorf("score = %d, want %d", g.Score(), want)
	}

	evs := g.Events().Consume()
	if !containsEvent(evs, events.EventTokensMerged) {
		t.Errorf("events %v missing TokensMerged", eventTypes(evs))
	}
	if got := g.Status().Ints.Get(status.KeyMerges).Load(); got != 1 {
		t.Errorf("merge metric = %d, want 1", got)
	}
}

func TestTickAtMostOneMerge(t *testing.T) {
	g, _ := newTestGame(t, 1)
	cat := g.Catalog()
	st := g.State()

	r := cat.Radius(0)
	floorY := g.Bounds().Height - r
	spawnAged(st, cat, 0, 50, floorY, 10)
	spawnAged(st, cat, 0, 50+r, floorY, 10)
	spawnAged(st, cat, 0, 300, floorY, 10)
	spawnAged(st, cat, 0, 300+r, floorY, 10)

	g.Tick()
	if st.Merges != 1 || len(g.Tokens()) != 3 {
		t.Fatalf("after first tick merges=%d tokens=%d, want 1 and 3", st.Merges, len(g.Tokens()))
	}

	g.Tick()
	if st.Merges != 2 || len(g.Tokens()) != 2 {
		t.Errorf("after second tick merges=%d tokens=%d, want 2 and 2", st.Merges, len(g.Tokens()))
	}
}

func TestTickAgesEveryToken(t *testing.T) {
	g, _ := newTestGame(t, 1)
	tok := spawnAged(g.State(), g.Catalog(), 3, 200, 300, 0)
	tok.Sleeping = true
	tok.StillFrames = 20

	for i := 0; i < 5; i++ {
		g.Tick()
	}
	if tok.Age != 5 {
		t.Errorf("Age = %d after 5 ticks, want 5", tok.Age)
	}
	if g.Ticks() != 5 {
		t.Errorf("Ticks() = %d, want 5", g.Ticks())
	}
}

// A sleeping token parked across the danger line stays put, so only time drives the machine
func parkAboveLine(g *Game) {
	tok := spawnAged(g.State(), g.Catalog(), 0, 200, 80, 100)
	tok.Sleeping = true
	tok.StillFrames = 20
}

func TestGameOverAfterPersistentBreach(t *testing.T) {
	g, mock := newTestGame(t, 1)
	parkAboveLine(g)

	gameOverAt := -1
	for ms := 0; ms <= 3000+4000; ms += 100 {
		mock.SetTime(at(ms))
		g.Tick()
		if g.IsGameOver() {
			gameOverAt = ms
			break
		}
	}
	if gameOverAt != 6700 {
		t.Fatalf("game over at t=%d, want 6700", gameOverAt)
	}

	evs := g.Events().Consume()
	want := []events.EventType{events.EventDangerPending, events.EventDangerStart, events.EventGameOver}
	got := eventTypes(evs)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
	if p, ok := evs[2].Payload.(*events.GameOverPayload); !ok || p.Score != 0 {
		t.Errorf("game over payload = %#v", evs[2].Payload)
	}

	// Frozen after game over
	ticks := g.Ticks()
	mock.Advance(time.Second)
	g.Tick()
	if g.Ticks() != ticks {
		t.Error("tick advanced after game over")
	}
	if g.RequestDrop() {
		t.Error("drop accepted after game over")
	}
	if !g.Status().Bools.Get(status.KeyGameOver).Load() {
		t.Error("game over metric not set")
	}
}

func TestBreachClearedResetsDanger(t *testing.T) {
	g, mock := newTestGame(t, 1)
	parkAboveLine(g)

	for ms := 0; ms < 5000; ms += 100 {
		mock.SetTime(at(ms))
		g.Tick()
	}
	if g.DangerPhase() != PhaseDanger {
		t.Fatalf("phase = %s, want Danger", g.DangerPhase())
	}

	// Move the token well below the line
	tok := g.State().Tokens[0]
	tok.Pos.Y = g.Bounds().Height - tok.Radius

	mock.SetTime(at(5000))
	g.Tick()
	if g.DangerPhase() != PhaseSafe {
		t.Errorf("phase after clear = %s, want Safe", g.DangerPhase())
	}
	snap := g.DangerSnapshot()
	if snap.AboveFor != 0 || snap.Remaining != 0 {
		t.Errorf("snapshot after clear = %+v", snap)
	}
	if !containsEvent(g.Events().Consume(), events.EventDangerCleared) {
		t.Error("missing DangerCleared event")
	}

	for ms := 5100; ms <= 9000; ms += 100 {
		mock.SetTime(at(ms))
		g.Tick()
	}
	if g.IsGameOver() {
		t.Error("game over without a breach")
	}
}

func TestDropCooldown(t *testing.T) {
	g, mock := newTestGame(t, 1)

	if !g.RequestDropAt(120) {
		t.Fatal("first drop rejected")
	}
	tokens := g.Tokens()
	if len(tokens) != 1 || tokens[0].Pos != vmath.V2(120, 30) || tokens[0].Tier != 0 {
		t.Fatalf("dropped token = %+v", tokens)
	}
	if !g.DropLocked() {
		t.Error("drop not locked after drop")
	}
	if g.RequestDrop() {
		t.Error("second drop accepted during cooldown")
	}

	mock.Advance(499 * time.Millisecond)
	g.Tick()
	if g.RequestDrop() {
		t.Error("drop accepted at 499ms")
	}

	mock.Advance(time.Millisecond)
	if !g.RequestDrop() {
		t.Error("drop rejected once cooldown elapsed")
	}
	if got := g.Status().Ints.Get(status.KeyDropsRejected).Load(); got != 2 {
		t.Errorf("rejected metric = %d, want 2", got)
	}

	evs := g.Events().Consume()
	if !containsEvent(evs, events.EventTokenDropped) || !containsEvent(evs, events.EventDropRejected) {
		t.Errorf("events = %v", eventTypes(evs))
	}
}

func TestDropConsumesQueue(t *testing.T) {
	g, _ := newTestGame(t, 5)
	before := g.Queue()

	g.RequestDrop()
	after := g.Queue()

	if g.Tokens()[0].Tier != before[0] {
		t.Errorf("dropped tier %d, queue front was %d", g.Tokens()[0].Tier, before[0])
	}
	if after[0] != before[1] || after[1] != before[2] {
		t.Errorf("queue %v did not shift from %v", after, before)
	}
	if after[2] < 0 || after[2] > g.MaxUnlockedTier() {
		t.Errorf("refill tier %d outside [0, %d]", after[2], g.MaxUnlockedTier())
	}
}

func TestDropClampedToContainer(t *testing.T) {
	g, _ := newTestGame(t, 1)
	g.RequestDropAt(-50)
	if x := g.Tokens()[0].Pos.X; x != 0 {
		t.Errorf("drop x = %v, want 0", x)
	}

	// Walls push it back inside on the first step
	g.Tick()
	tok := g.Tokens()[0]
	if tok.Pos.X != tok.Radius {
		t.Errorf("x after tick = %v, want %v", tok.Pos.X, tok.Radius)
	}
}

func TestSetDropX(t *testing.T) {
	g, _ := newTestGame(t, 1)
	r := g.Catalog().Radius(g.Queue()[0])

	g.SetDropX(-10)
	if g.DropX() != r {
		t.Errorf("DropX = %v, want %v", g.DropX(), r)
	}
	g.SetDropX(1000)
	if g.DropX() != g.Bounds().Width-r {
		t.Errorf("DropX = %v, want %v", g.DropX(), g.Bounds().Width-r)
	}
	g.MoveDrop(-100)
	if g.DropX() != g.Bounds().Width-r-100 {
		t.Errorf("MoveDrop result %v", g.DropX())
	}

	g.RequestDrop()
	locked := g.DropX()
	g.SetDropX(100)
	if g.DropX() != locked {
		t.Error("aim moved while drop locked")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() ([]TokenView, [3]int) {
		g, mock := newTestGame(t, 777)
		for i := 0; i < 12; i++ {
			g.RequestDropAt(float64(40 + i*30))
			for k := 0; k < 40; k++ {
				mock.Advance(16 * time.Millisecond)
				g.Tick()
			}
		}
		return g.Tokens(), g.Queue()
	}

	tokensA, queueA := run()
	tokensB, queueB := run()
	if queueA != queueB {
		t.Errorf("queues diverged: %v vs %v", queueA, queueB)
	}
	if len(tokensA) != len(tokensB) {
		t.Fatalf("token counts diverged: %d vs %d", len(tokensA), len(tokensB))
	}
	for i := range tokensA {
		a, b := tokensA[i], tokensB[i]
		if a.Tier != b.Tier || a.Pos != b.Pos || a.Sleeping != b.Sleeping {
			t.Errorf("token %d diverged: %+v vs %+v", i, a, b)
		}
	}
}

func TestRestart(t *testing.T) {
	g, mock := newTestGame(t, 3)
	cat := g.Catalog()
	st := g.State()
	spawnAged(st, cat, 2, 100, 575, 10)
	spawnAged(st, cat, 2, 140, 575, 10)
	g.Tick()
	g.RequestDrop()
	if g.Score() == 0 || g.MaxUnlockedTier() != 3 {
		t.Fatalf("setup failed: score %d ceiling %d", g.Score(), g.MaxUnlockedTier())
	}
	oldSession := g.SessionID()

	mock.Advance(time.Second)
	g.Restart()

	if len(g.Tokens()) != 0 || g.Score() != 0 {
		t.Errorf("restart kept tokens=%d score=%d", len(g.Tokens()), g.Score())
	}
	if g.MaxUnlockedTier() != 2 || g.Queue() != [3]int{0, 0, 1} {
		t.Errorf("restart ceiling=%d queue=%v", g.MaxUnlockedTier(), g.Queue())
	}
	if g.DangerPhase() != PhaseSafe || g.IsGameOver() || g.DropLocked() {
		t.Error("restart left danger, game over or drop lock set")
	}
	if g.SessionID() == oldSession {
		t.Error("session id not renewed")
	}
	if !g.State().StartTime.Equal(testEpoch.Add(time.Second)) {
		t.Errorf("start time = %v", g.State().StartTime)
	}
	if g.scheduler.Pending() != 0 || g.cooldown != 0 {
		t.Error("cooldown callback survived restart")
	}
	if !g.RequestDrop() {
		t.Error("drop rejected in fresh session")
	}
	if !containsEvent(g.Events().Consume(), events.EventGameRestart) {
		t.Error("missing GameRestart event")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g, mock := newTestGame(t, 1)
	g.RequestDrop()
	g.Tick()
	ticks := g.Ticks()
	gameNow := g.clock.Now()

	if !g.TogglePause() {
		t.Fatal("TogglePause did not pause")
	}
	mock.Advance(10 * time.Second)
	g.Tick()
	if g.Ticks() != ticks {
		t.Error("tick ran while paused")
	}
	if g.RequestDrop() {
		t.Error("drop accepted while paused")
	}
	if !g.clock.Now().Equal(gameNow) {
		t.Error("game time advanced while paused")
	}

	if g.TogglePause() {
		t.Fatal("TogglePause did not resume")
	}
	// Cooldown did not elapse during the pause
	if g.RequestDrop() {
		t.Error("cooldown elapsed during pause")
	}
	mock.Advance(500 * time.Millisecond)
	if !g.RequestDrop() {
		t.Error("drop rejected after cooldown")
	}
}
