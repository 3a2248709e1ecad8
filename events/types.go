package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventTokenDropped signals a new falling token
	// Trigger: Game.RequestDrop | Payload: *TokenDroppedPayload
	EventTokenDropped EventType = iota

	// EventDropRejected signals a drop refused by cooldown, pause or game over
	// Trigger: Game.RequestDrop | Payload: nil
	EventDropRejected

	// EventTokensMerged signals a committed merge, at most one per tick
	// Trigger: merge pass | Consumer: audio, merge flash | Payload: *MergePayload
	EventTokensMerged

	// EventTierUnlocked signals the spawn ceiling was raised
	// Trigger: merge pass | Payload: *TierUnlockedPayload
	EventTierUnlocked

	// EventDangerPending signals the first tick of a danger line breach
	// Trigger: danger machine | Payload: nil
	EventDangerPending

	// EventDangerStart signals a breach outlasted the debounce window
	// Trigger: danger machine | Consumer: audio, overlay | Payload: nil
	EventDangerStart

	// EventDangerCleared signals no token breaches the line any more
	// Trigger: danger machine | Payload: nil
	EventDangerCleared

	// EventGameOver signals the terminal phase
	// Trigger: danger machine | Payload: *GameOverPayload
	EventGameOver

	// EventGameRestart signals a fresh session replaced the previous one
	// Trigger: Game.Restart | Payload: *RestartPayload
	EventGameRestart

	// EventPauseToggled signals pause state change
	// Trigger: Game.TogglePause | Payload: *PausePayload
	EventPauseToggled

	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	EventTokenDropped:  "TokenDropped",
	EventDropRejected:  "DropRejected",
	EventTokensMerged:  "TokensMerged",
	EventTierUnlocked:  "TierUnlocked",
	EventDangerPending: "DangerPending",
	EventDangerStart:   "DangerStart",
	EventDangerCleared: "DangerCleared",
	EventGameOver:      "GameOver",
	EventGameRestart:   "GameRestart",
	EventPauseToggled:  "PauseToggled",
}

// String returns the event name, "Unknown" for out-of-range values
func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "Unknown"
	}
	return eventNames[t]
}

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Tick      uint64 // Simulation tick that produced the event
	Timestamp time.Time
}
