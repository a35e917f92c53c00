package assets

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/automoto/gaitkit/config"
)

var (
	footstepMu    sync.Mutex
	footstepCache = map[footstepKey][]byte{}
)

type footstepKey struct {
	side       config.StepSide
	sampleRate int
}

// FootstepPCM returns the footstep click for a foot as 16-bit little-endian
// stereo PCM at sampleRate, ready for an audio player. Clicks are
// synthesized on first use and cached.
func FootstepPCM(side config.StepSide, sampleRate int) []byte {
	footstepMu.Lock()
	defer footstepMu.Unlock()

	key := footstepKey{side, sampleRate}
	if pcm, ok := footstepCache[key]; ok {
		return pcm
	}
	pcm := synthFootstep(config.FootstepSound, side, sampleRate)
	footstepCache[key] = pcm
	return pcm
}

func synthFootstep(s config.FootstepSoundConfig, side config.StepSide, sampleRate int) []byte {
	n := int(s.Duration * float64(sampleRate))
	if n <= 0 {
		return nil
	}
	freq := s.Frequency
	if side == config.StepRight {
		freq *= s.Pitch
	}
	noise := rand.New(rand.NewPCG(uint64(side)+1, 0x9e3779b97f4a7c15))

	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		tone := math.Sin(2 * math.Pi * freq * t)
		v := (tone*(1-s.Noise) + (noise.Float64()*2-1)*s.Noise) * math.Exp(-s.Decay*t)
		sample := uint16(int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], sample)
		binary.LittleEndian.PutUint16(buf[i*4+2:], sample)
	}
	return buf
}
