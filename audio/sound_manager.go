package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/fruit-drop/events"
	"github.com/lixenwraith/fruit-drop/parameter"
)

// SoundManager plays one-shot effects through a shared mixer on the speaker
// All Play calls are no-ops until Initialize succeeds, so the game runs silent without a device
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool

	// played counts effects by type, including muted and uninitialized requests
	played [soundTypeCount]atomic.Int64
}

// NewSoundManager creates a sound manager, nil cfg uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	sm := &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
	sm.muted.Store(!cfg.Enabled)
	return sm
}

// Initialize opens the speaker and starts the mixer
// Disabled config skips the device entirely
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init at %d Hz: %w", sm.cfg.SampleRate, err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	log.Printf("audio initialized at %d Hz", sm.cfg.SampleRate)
	return nil
}

// Cleanup drops all queued sounds
// beep has no speaker Close, clearing the mixer leaves it silent
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (sm *SoundManager) IsMuted() bool {
	return sm.muted.Load()
}

// Played returns how many times st was requested
func (sm *SoundManager) Played(st SoundType) int64 {
	if st < 0 || st >= soundTypeCount {
		return 0
	}
	return sm.played[st].Load()
}

// Play queues one effect, returns true if it reached the mixer
func (sm *SoundManager) Play(st SoundType, tier int) bool {
	if st < 0 || st >= soundTypeCount {
		return false
	}
	sm.played[st].Add(1)

	if sm.muted.Load() {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return false
	}

	streamer := GetSoundEffect(st, tier, sm.cfg)
	if streamer == nil {
		return false
	}
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	return true
}

// EventTypes implements events.Handler
func (sm *SoundManager) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventTokenDropped,
		events.EventTokensMerged,
		events.EventTierUnlocked,
		events.EventDangerStart,
		events.EventGameOver,
	}
}

// HandleEvent implements events.Handler
func (sm *SoundManager) HandleEvent(ev events.GameEvent) {
	if st, tier, ok := SoundFor(ev); ok {
		sm.Play(st, tier)
	}
}

// SoundFor maps a game event to its effect and pitch tier
func SoundFor(ev events.GameEvent) (SoundType, int, bool) {
	switch ev.Type {
	case events.EventTokenDropped:
		return SoundDrop, 0, true
	case events.EventTokensMerged:
		tier := 0
		if p, ok := ev.Payload.(*events.MergePayload); ok {
			tier = p.ResultTier
		}
		return SoundMerge, tier, true
	case events.EventTierUnlocked:
		return SoundUnlock, 0, true
	case events.EventDangerStart:
		return SoundDanger, 0, true
	case events.EventGameOver:
		return SoundGameOver, 0, true
	default:
		return 0, 0, false
	}
}
