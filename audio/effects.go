package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/fruit-drop/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// oscillator generates a finite tone, frequency glides linearly from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-pitch tone
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates a tone gliding from startFreq to endFreq over duration
func NewSweep(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     startFreq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1.0 - 4.0*math.Abs(o.phase-0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress

		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack ramp and a release tail ending at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf so zero volume is Silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func effectVolume(cfg *AudioConfig, st SoundType) float64 {
	return cfg.EffectVolumes[st] * cfg.MasterVolume
}

// MergeFrequency returns the merge tone for a result tier, rising MergeFreqStep semitones per tier
func MergeFrequency(tier int) float64 {
	steps := float64(max(0, tier-1) * parameter.MergeFreqStep)
	return parameter.MergeBaseFreq * math.Pow(2, steps/12)
}

// CreateDropSound generates a short falling blip
func CreateDropSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewSweep(660, 330, parameter.DropSoundDuration, WaveTriangle, rate)
	shaped := NewEnvelope(osc, parameter.DropSoundDuration, parameter.DropSoundAttack, parameter.DropSoundRelease, rate)

	return newVolume(shaped, effectVolume(cfg, SoundDrop))
}

// CreateMergeSound generates a pop whose pitch climbs with the result tier
func CreateMergeSound(cfg *AudioConfig, tier int) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	freq := MergeFrequency(tier)

	fund := NewOscillator(freq, parameter.MergeSoundDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, parameter.MergeSoundDuration, parameter.MergeSoundAttack, parameter.MergeSoundRelease, rate)

	// Fifth above for brightness
	over := NewOscillator(freq*1.5, parameter.MergeSoundDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, parameter.MergeSoundDuration, parameter.MergeSoundAttack, parameter.MergeSoundRelease/2, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, effectVolume(cfg, SoundMerge))
}

// CreateUnlockSound generates a two-note rising chime
func CreateUnlockSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// B5 then E6
	n1 := NewOscillator(987.77, parameter.UnlockNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, parameter.UnlockNote1Duration, parameter.UnlockAttack, parameter.UnlockNote1Release, rate)

	n2 := NewOscillator(1318.51, parameter.UnlockNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, parameter.UnlockNote2Duration, parameter.UnlockAttack, parameter.UnlockNote2Release, rate)

	sequence := beep.Seq(n1Shaped, n2Shaped)
	return newVolume(sequence, effectVolume(cfg, SoundUnlock)*0.5)
}

// CreateDangerSound generates a low warning pulse
func CreateDangerSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(110, parameter.DangerSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, parameter.DangerSoundDuration, parameter.DangerSoundAttack, parameter.DangerSoundRelease, rate)

	return newVolume(shaped, effectVolume(cfg, SoundDanger)*0.6)
}

// CreateGameOverSound generates a long descending tone
func CreateGameOverSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewSweep(392, 98, parameter.GameOverSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, parameter.GameOverSoundDuration, parameter.GameOverSoundAttack, parameter.GameOverSoundRelease, rate)

	return newVolume(shaped, effectVolume(cfg, SoundGameOver)*0.6)
}

// GetSoundEffect returns the streamer for soundType, tier only affects SoundMerge
func GetSoundEffect(soundType SoundType, tier int, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundDrop:
		return CreateDropSound(cfg)
	case SoundMerge:
		return CreateMergeSound(cfg, tier)
	case SoundUnlock:
		return CreateUnlockSound(cfg)
	case SoundDanger:
		return CreateDangerSound(cfg)
	case SoundGameOver:
		return CreateGameOverSound(cfg)
	default:
		return nil
	}
}
