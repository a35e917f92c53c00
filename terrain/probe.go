// Package terrain answers the animator's ground and obstacle probes against
// a side-view TMX map loaded into a resolv space.
//
// The map is a vertical slice through the world along the avatar's forward
// axis: map x grows with forward travel (world -z) and map y grows downward.
// The first spawn point of the map is the world origin.
package terrain

import (
	"errors"
	"math"

	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/automoto/gaitkit/shared/leveldata"
	"github.com/automoto/gaitkit/systems/factory"
	"github.com/automoto/gaitkit/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

var ErrNoSpace = errors.New("terrain: world has no collision space")

// Probe implements components.Probe over the terrain of a donburi world.
type Probe struct {
	space *components.SpaceData
	ppm   float64
	size  float64
}

var _ components.Probe = (*Probe)(nil)

// Load spawns the map's terrain into the world and returns a probe for it.
func Load(w donburi.World, level *leveldata.CollisionData) (*Probe, error) {
	factory.CreateTerrain(w, level)
	return NewProbe(w)
}

// NewProbe returns a probe over the world's collision space.
func NewProbe(w donburi.World) (*Probe, error) {
	entry, ok := components.Space.First(w)
	if !ok {
		return nil, ErrNoSpace
	}
	return &Probe{
		space: components.Space.Get(entry),
		ppm:   config.Terrain.PixelsPerMeter,
		size:  config.Terrain.ProbeSize,
	}, nil
}

// ToMap converts a world position to map pixels.
func (p *Probe) ToMap(v mgl64.Vec3) (x, y float64) {
	return p.space.OriginX - v.Z()*p.ppm, p.space.OriginY - v.Y()*p.ppm
}

// ToWorld converts map pixels to a world position on the x=0 plane.
func (p *Probe) ToWorld(x, y float64) mgl64.Vec3 {
	return mgl64.Vec3{0, (p.space.OriginY - y) / p.ppm, -(x - p.space.OriginX) / p.ppm}
}

// Bounds returns the map size in pixels.
func (p *Probe) Bounds() (w, h float64) {
	return p.space.MapWidth, p.space.MapHeight
}

// Raycast returns the distance in metres to the first terrain surface along
// direction. Downward rays find the ground, including ramp surfaces;
// forward and backward rays find the faces of solid tiles. Rays with no
// component in the plane of the map never hit.
func (p *Probe) Raycast(origin, direction mgl64.Vec3, maxDistance float64) (float64, bool) {
	if direction.Len() == 0 || maxDistance <= 0 {
		return 0, false
	}
	dir := direction.Normalize()
	mx, my := p.ToMap(origin)
	reach := maxDistance * p.ppm

	var px float64
	var hit bool
	switch {
	case -dir.Y() > math.Abs(dir.Z()):
		px, hit = p.castDown(mx, my, reach)
	case math.Abs(dir.Z()) > math.Abs(dir.Y()) && math.Abs(dir.Z()) > 1e-9:
		px, hit = p.castAcross(mx, my, reach, dir.Z() < 0)
	}
	if !hit {
		return 0, false
	}
	d := px / p.ppm
	if d > maxDistance {
		return 0, false
	}
	return d, true
}

// sweep returns the terrain overlapping a rectangle of the map.
func (p *Probe) sweep(x, y, w, h float64, tagNames ...string) []*resolv.Object {
	probe := resolv.NewObject(x, y, w, h, tags.ResolvProbe)
	probe.SetShape(resolv.NewRectangle(0, 0, w, h))
	p.space.Add(probe)
	defer p.space.Remove(probe)

	check := probe.Check(0, 0, tagNames...)
	if check == nil {
		return nil
	}
	return check.Objects
}

func (p *Probe) castDown(mx, my, reach float64) (float64, bool) {
	best := math.Inf(1)
	for _, o := range p.sweep(mx-p.size/2, my, p.size, reach, tags.ResolvSolid, tags.ResolvRamp) {
		// Cells can hold neighbours the sweep does not overlap.
		if mx+p.size/2 < o.X || mx-p.size/2 > o.X+o.W {
			continue
		}
		top := o.Y
		if o.HasTags(tags.ResolvRamp) {
			top = gamemath.SlopeSurfaceY(mx, o, tags.Slope45UpRight, tags.Slope45UpLeft)
		}
		switch {
		case my >= top && my < o.Y+o.H:
			best = 0
		case top >= my:
			best = math.Min(best, top-my)
		}
	}
	return best, !math.IsInf(best, 1)
}

func (p *Probe) castAcross(mx, my, reach float64, forwards bool) (float64, bool) {
	x := mx
	if !forwards {
		x = mx - reach
	}
	best := math.Inf(1)
	for _, o := range p.sweep(x, my-p.size/2, reach, p.size, tags.ResolvSolid) {
		if !o.HasTags(tags.ResolvSolid) || my+p.size/2 < o.Y || my-p.size/2 > o.Y+o.H {
			continue
		}
		switch {
		case mx >= o.X && mx < o.X+o.W:
			best = 0
		case forwards && o.X >= mx:
			best = math.Min(best, o.X-mx)
		case !forwards && o.X+o.W <= mx:
			best = math.Min(best, mx-(o.X+o.W))
		}
	}
	return best, !math.IsInf(best, 1)
}

// Spawn returns the world position of a spawn point's ground contact.
func (p *Probe) Spawn(level *leveldata.CollisionData, index int) (mgl64.Vec3, bool) {
	for _, sp := range level.SpawnPoints {
		if sp.Index == index {
			return p.ToWorld(sp.X, sp.Y), true
		}
	}
	return mgl64.Vec3{}, false
}
