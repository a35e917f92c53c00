package config

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate int
	SFXVolume  float64
}

// FootstepSoundConfig shapes the synthesized footstep click: a low sine
// thump under a short burst of noise, both decaying exponentially.
type FootstepSoundConfig struct {
	Duration  float64 // seconds
	Frequency float64 // Hz of the thump
	Decay     float64 // 1/s
	Noise     float64 // share of noise in the mix, 0..1
	Pitch     float64 // frequency ratio of the right foot to the left
}

var Audio AudioConfig
var FootstepSound FootstepSoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate: 44100,
		SFXVolume:  0.8,
	}

	FootstepSound = FootstepSoundConfig{
		Duration:  0.08,
		Frequency: 90,
		Decay:     55,
		Noise:     0.35,
		Pitch:     1.12,
	}
}
