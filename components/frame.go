package components

import "github.com/yohamta/donburi"

// FrameData is the per-avatar clock. Delta is the host's frame time in
// seconds; Count is the number of frames the avatar has been powered.
type FrameData struct {
	Delta   float64
	Elapsed float64
	Count   int
}

var Frame = donburi.NewComponentType[FrameData]()
