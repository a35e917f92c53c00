package factory

import (
	"github.com/automoto/gaitkit/archetypes"
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/shared/leveldata"
	"github.com/automoto/gaitkit/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateSpace spawns the collision space of a terrain map. The first spawn
// point becomes the origin of the side view.
func CreateSpace(w donburi.World, level *leveldata.CollisionData) *donburi.Entry {
	space := archetypes.Space.Spawn(w)
	cell := config.Terrain.CellSize
	data := components.SpaceData{
		Space:     resolv.NewSpace(level.MapWidth, level.MapHeight, cell, cell),
		Name:      level.Name,
		MapWidth:  float64(level.MapWidth),
		MapHeight: float64(level.MapHeight),
	}
	if len(level.SpawnPoints) > 0 {
		data.OriginX = level.SpawnPoints[0].X
		data.OriginY = level.SpawnPoints[0].Y
	}
	components.Space.SetValue(space, data)
	return space
}

func CreateSolid(w donburi.World, x, y, width, height float64) *donburi.Entry {
	solid := archetypes.Terrain.Spawn(w)

	obj := resolv.NewObject(x, y, width, height, tags.ResolvSolid)
	obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	obj.Data = solid

	components.Object.SetValue(solid, components.ObjectData{Object: obj})
	addToSpace(w, obj)
	return solid
}

// CreateSlope spawns a ramp tile. Its bounds are rectangular; the surface
// height is worked out from the slope type when probing.
func CreateSlope(w donburi.World, x, y, width, height float64, slopeType string) *donburi.Entry {
	slope := archetypes.Terrain.Spawn(w)

	obj := resolv.NewObject(x, y, width, height, tags.ResolvRamp, slopeType)
	obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	obj.Data = slope

	components.Object.SetValue(slope, components.ObjectData{Object: obj, SlopeType: slopeType})
	addToSpace(w, obj)
	return slope
}

// CreateTerrain spawns the space and every solid and ramp of the map.
func CreateTerrain(w donburi.World, level *leveldata.CollisionData) *donburi.Entry {
	space := CreateSpace(w, level)
	for _, r := range level.SolidRects {
		if r.SlopeType != "" {
			CreateSlope(w, r.X, r.Y, r.W, r.H, r.SlopeType)
			continue
		}
		CreateSolid(w, r.X, r.Y, r.W, r.H)
	}
	return space
}

func addToSpace(w donburi.World, obj *resolv.Object) {
	if spaceEntry, ok := components.Space.First(w); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}
}
