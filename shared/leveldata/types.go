// Package leveldata parses TMX terrain maps into plain collision data.
// It has no dependencies on resolv, donburi or ebiten.
package leveldata

// Slope tags carried by ramp tiles through the "slope" tile property.
const (
	Slope45UpRight = "45_up_right"
	Slope45UpLeft  = "45_up_left"
)

// CollisionData holds the terrain parsed from one TMX file, in pixels.
type CollisionData struct {
	Name        string
	SolidRects  []SolidRect
	SpawnPoints []SpawnPoint
	TileWidth   int
	TileHeight  int
	MapWidth    int
	MapHeight   int
}

// SolidRect is a run of plain terrain tiles along one row, or a single
// ramp tile.
type SolidRect struct {
	X, Y, W, H float64
	SlopeType  string // "", Slope45UpRight, Slope45UpLeft
}

// SpawnPoint is an avatar spawn location; Y is the ground contact point.
type SpawnPoint struct {
	X, Y  float64
	Index int
}
