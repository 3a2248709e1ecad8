package events

// TokenDroppedPayload describes a newly dropped token
type TokenDroppedPayload struct {
	TokenID uint64
	Tier    int
	X, Y    float64
}

// MergePayload describes a committed merge
// ResultTier equals SourceTier when a max-tier pair was consumed without replacement
type MergePayload struct {
	SourceTier int
	ResultTier int
	Consumed   bool
	X, Y       float64
	Radius     float64 // Radius of the result, or of the consumed pair
	Points     int
}

// TierUnlockedPayload carries the new spawn ceiling
type TierUnlockedPayload struct {
	Tier int
}

// GameOverPayload carries the final session figures
type GameOverPayload struct {
	Score int
	Ticks uint64
}

// RestartPayload identifies the new session
type RestartPayload struct {
	SessionID string
}

// PausePayload carries the new pause state
type PausePayload struct {
	Paused bool
}
