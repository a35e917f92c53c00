package tags

import "github.com/yohamta/donburi"

var (
	Avatar  = donburi.NewTag().SetName("Avatar")
	Terrain = donburi.NewTag().SetName("Terrain")
)

// Resolv tags for terrain probing
const (
	ResolvSolid = "solid"
	ResolvRamp  = "ramp"
	ResolvProbe = "probe"

	// Slope type tags
	Slope45UpRight = "45_up_right"
	Slope45UpLeft  = "45_up_left"
)
