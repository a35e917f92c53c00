package components

import "github.com/yohamta/donburi"

// AwarenessData latches the obstacle flinch so it fires once per approach.
type AwarenessData struct {
	ObstacleLatched  bool
	ObstacleDistance float64
}

var Awareness = donburi.NewComponentType[AwarenessData]()
