package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer, sets output latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Drop Sound
const (
	DropSoundDuration = 90 * time.Millisecond
	DropSoundAttack   = 5 * time.Millisecond
	DropSoundRelease  = 60 * time.Millisecond
)

// Merge Sound
const (
	MergeSoundDuration = 140 * time.Millisecond
	MergeSoundAttack   = 5 * time.Millisecond
	MergeSoundRelease  = 100 * time.Millisecond

	// MergeBaseFreq is the pitch of a tier 1 merge, each tier raises it by MergeFreqStep semitones
	MergeBaseFreq = 440.0
	MergeFreqStep = 2
)

// Unlock Sound
const (
	UnlockNote1Duration = 100 * time.Millisecond
	UnlockNote2Duration = 220 * time.Millisecond
	UnlockAttack        = 5 * time.Millisecond
	UnlockNote1Release  = 40 * time.Millisecond
	UnlockNote2Release  = 180 * time.Millisecond
)

// Danger Sound
const (
	DangerSoundDuration = 300 * time.Millisecond
	DangerSoundAttack   = 20 * time.Millisecond
	DangerSoundRelease  = 150 * time.Millisecond
)

// Game Over Sound
const (
	GameOverSoundDuration = 700 * time.Millisecond
	GameOverSoundAttack   = 10 * time.Millisecond
	GameOverSoundRelease  = 500 * time.Millisecond
)
