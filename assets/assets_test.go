package assets

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/automoto/gaitkit/config"
)

func TestEmbeddedLibraryLoads(t *testing.T) {
	lib, err := LoadLibrary()
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	if _, err := lib.Profile(config.Locomotion.Profile); err != nil {
		t.Fatalf("default profile: %v", err)
	}
}

func TestEmbeddedLevelsLoad(t *testing.T) {
	levels, names, err := LoadLevels()
	if err != nil {
		t.Fatalf("LoadLevels: %v", err)
	}
	if len(names) == 0 || len(levels) != len(names) {
		t.Fatalf("levels %d, names %v", len(levels), names)
	}
	if _, err := LoadLevel("proving"); err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if _, err := LoadLevel("missing"); err == nil {
		t.Fatal("loaded a level that does not exist")
	}
}

func TestFootstepPCM(t *testing.T) {
	const rate = 44100
	left := FootstepPCM(config.StepLeft, rate)
	right := FootstepPCM(config.StepRight, rate)

	want := int(config.FootstepSound.Duration*rate) * 4
	if len(left) != want || len(right) != want {
		t.Fatalf("lengths %d/%d, want %d", len(left), len(right), want)
	}
	if bytes.Equal(left, right) {
		t.Fatal("both feet sound the same")
	}
	if again := FootstepPCM(config.StepLeft, rate); &again[0] != &left[0] {
		t.Fatal("click synthesized twice")
	}

	sample := func(pcm []byte, i int) int16 {
		return int16(binary.LittleEndian.Uint16(pcm[i*4:]))
	}
	for i := 0; i < len(left)/4; i += 97 {
		if l, r := sample(left, i), int16(binary.LittleEndian.Uint16(left[i*4+2:])); l != r {
			t.Fatalf("sample %d: channels differ %d/%d", i, l, r)
		}
	}
	// The click decays away.
	head, tail := 0, 0
	n := len(left) / 4
	for i := 0; i < n/4; i++ {
		head += abs(int(sample(left, i)))
		tail += abs(int(sample(left, n-1-i)))
	}
	if tail*4 > head {
		t.Fatalf("no decay: head %d tail %d", head, tail)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
