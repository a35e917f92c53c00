package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData is a terrain collision shape in map pixels.
type ObjectData struct {
	*resolv.Object
	SlopeType string
}

var Object = donburi.NewComponentType[ObjectData]()

// SpaceData is the collision space of a loaded terrain map.
type SpaceData struct {
	*resolv.Space
	Name string

	MapWidth, MapHeight float64
	// Origin is the map pixel of the avatar spawn, the world origin of the
	// side view.
	OriginX, OriginY float64
}

var Space = donburi.NewComponentType[SpaceData]()
