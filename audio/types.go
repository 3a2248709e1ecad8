package audio

import "github.com/lixenwraith/fruit-drop/parameter"

// SoundType represents different sound effects
type SoundType int

const (
	SoundDrop     SoundType = iota // Token released
	SoundMerge                     // Pair fused, pitch follows result tier
	SoundUnlock                    // Spawn ceiling raised
	SoundDanger                    // Danger phase entered
	SoundGameOver                  // Session ended
	soundTypeCount
)

var soundNames = [soundTypeCount]string{
	SoundDrop:     "drop",
	SoundMerge:    "merge",
	SoundUnlock:   "unlock",
	SoundDanger:   "danger",
	SoundGameOver: "gameover",
}

// String returns the key used in FRUIT_DROP_SFX_VOLUMES
func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// AudioConfig holds output settings, volumes are linear in [0, 1]
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultAudioConfig returns enabled audio at moderate volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: map[SoundType]float64{
			SoundDrop:     0.4,
			SoundMerge:    0.6,
			SoundUnlock:   0.7,
			SoundDanger:   0.5,
			SoundGameOver: 0.8,
		},
		SampleRate: parameter.AudioSampleRate,
	}
}
