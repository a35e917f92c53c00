package scenes

import (
	"sync"

	"github.com/automoto/gaitkit/assets"
	"github.com/automoto/gaitkit/components"
	cfg "github.com/automoto/gaitkit/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Global audio state - created once and shared for the life of the process
var (
	globalAudioContext *audio.Context
	audioInitOnce      sync.Once
)

func initGlobalAudio() {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(cfg.Audio.SampleRate)
	})
}

// playFootstep clicks once for a footstep, louder for heavier steps.
func playFootstep(step components.FootstepEvent) {
	initGlobalAudio()

	volume := cfg.Audio.SFXVolume * step.Volume
	if volume <= 0 {
		return
	}

	player := globalAudioContext.NewPlayerFromBytes(assets.FootstepPCM(step.Side, cfg.Audio.SampleRate))
	player.SetVolume(volume)
	player.Play()
}
