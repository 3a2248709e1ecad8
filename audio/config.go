package audio

import (
	"encoding/json"
	"os"
	"strconv"
)

// Environment overrides for audio output
const (
	EnvAudioEnabled = "FRUIT_DROP_AUDIO_ENABLED"
	EnvMasterVolume = "FRUIT_DROP_MASTER_VOLUME"
	EnvSFXVolumes   = "FRUIT_DROP_SFX_VOLUMES"
	EnvSampleRate   = "FRUIT_DROP_SAMPLE_RATE"
)

// LoadAudioConfig loads audio configuration from environment variables
// Malformed values are ignored and the default kept
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume 0-100 converted to 0.0-1.0
	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(1, max(0, float64(val)/100.0))
		}
	}

	// Per-effect volumes as a JSON object keyed by sound name
	if effectVols := os.Getenv(EnvSFXVolumes); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for st := SoundType(0); st < soundTypeCount; st++ {
				if v, ok := volumes[st.String()]; ok {
					cfg.EffectVolumes[st] = min(1, max(0, v))
				}
			}
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
