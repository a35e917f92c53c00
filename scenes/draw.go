package scenes

import (
	"image/color"
	"math"

	"github.com/automoto/gaitkit/components"
	cfg "github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/automoto/gaitkit/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	boneWidth   = 3
	jointRadius = 2.5
	headRadius  = 0.11 // metres
)

// drawGround draws the terrain map, or a flat floor at y=0 without one.
func (vs *ViewerScene) drawGround(e *ecs.ECS, screen *ebiten.Image) {
	if vs.terrain == nil {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		_, y := vs.project(mgl64.Vec3{}, screen)
		vector.FillRect(screen, 0, y, float32(w), float32(h)-y, cfg.Viewer.GroundColor, false)
		return
	}

	tags.Terrain.Each(e.World, func(entry *donburi.Entry) {
		obj := components.Object.Get(entry)
		if obj.SlopeType == "" {
			x0, y0 := vs.project(vs.terrain.ToWorld(obj.X, obj.Y), screen)
			x1, y1 := vs.project(vs.terrain.ToWorld(obj.X+obj.W, obj.Y+obj.H), screen)
			vector.FillRect(screen, x0, y0, x1-x0, y1-y0, cfg.Viewer.GroundColor, false)
			return
		}

		// Ramps: the surface line over the outline of the tile.
		left := vs.terrain.ToWorld(obj.X, gamemath.SlopeSurfaceY(obj.X, obj.Object, tags.Slope45UpRight, tags.Slope45UpLeft))
		right := vs.terrain.ToWorld(obj.X+obj.W, gamemath.SlopeSurfaceY(obj.X+obj.W, obj.Object, tags.Slope45UpRight, tags.Slope45UpLeft))
		base := vs.terrain.ToWorld(obj.X, obj.Y+obj.H)

		lx, ly := vs.project(left, screen)
		rx, ry := vs.project(right, screen)
		_, by := vs.project(base, screen)

		vector.StrokeLine(screen, lx, by, rx, by, 1, cfg.Viewer.RampColor, false)
		vector.StrokeLine(screen, lx, ly, lx, by, 1, cfg.Viewer.RampColor, false)
		vector.StrokeLine(screen, rx, ry, rx, by, 1, cfg.Viewer.RampColor, false)
		vector.StrokeLine(screen, lx, ly, rx, ry, 2, cfg.Viewer.GroundColor, true)
	})
}

// drawFootprints marks where the last steps landed, fading with age.
func (vs *ViewerScene) drawFootprints(_ *ecs.ECS, screen *ebiten.Image) {
	n := len(vs.footprints)
	for i, f := range vs.footprints {
		x, y := vs.project(f.position, screen)
		c := fade(cfg.Viewer.FootprintColor, math.Max(0.2, float64(i+1)/float64(n)))

		size := float32(4 + 6*math.Min(1, f.volume))
		if f.side == cfg.StepLeft {
			vector.StrokeRect(screen, x-size, y-2, size*2, 4, 1, c, false)
		} else {
			vector.FillRect(screen, x-size, y-2, size*2, 4, c, false)
		}
	}
}

// drawSkeleton draws the posed stick figure, left limbs and right limbs in
// their own colours.
func (vs *ViewerScene) drawSkeleton(_ *ecs.ECS, screen *ebiten.Image) {
	for _, b := range vs.skeleton.Bones() {
		if b.Parent == "" {
			continue
		}
		from, _ := vs.skeleton.JointPosition(b.Parent)
		to, _ := vs.skeleton.JointPosition(b.Name)
		x0, y0 := vs.project(from, screen)
		x1, y1 := vs.project(to, screen)
		vector.StrokeLine(screen, x0, y0, x1, y1, boneWidth, sideColor(b.Name), true)
	}

	for _, b := range vs.skeleton.Bones() {
		p, _ := vs.skeleton.JointPosition(b.Name)
		x, y := vs.project(p, screen)
		vector.FillCircle(screen, x, y, jointRadius, sideColor(b.Name), true)
	}

	if head, ok := vs.skeleton.JointPosition("Head"); ok {
		x, y := vs.project(head.Add(mgl64.Vec3{0, headRadius, 0}), screen)
		r := float32(headRadius * cfg.Viewer.PixelsPerMeter)
		vector.StrokeCircle(screen, x, y, r, boneWidth, cfg.Viewer.BoneColor, true)
	}
}

// drawDebug shows what the probes see: the ground ray under the hips and
// the obstacle ray ahead.
func (vs *ViewerScene) drawDebug(_ *ecs.ECS, screen *ebiten.Image) {
	if !vs.debug {
		return
	}
	ctx := vs.animator.Context()
	hips := vs.kin.Position
	hx, hy := vs.project(hips, screen)

	if d := ctx.Motion.GroundHit; !math.IsInf(d, 1) {
		gx, gy := vs.project(hips.Sub(mgl64.Vec3{0, d, 0}), screen)
		vector.StrokeLine(screen, hx, hy, gx, gy, 1, cfg.Viewer.DebugColor, false)
		vector.FillCircle(screen, gx, gy, 3, cfg.Viewer.DebugColor, false)
	}

	if d := ctx.Awareness.ObstacleDistance; d > 0 && d < cfg.Awareness.ObstacleProbeDistance {
		facing := vs.kin.Orientation.Rotate(mgl64.Vec3{0, 0, -1})
		ox, oy := vs.project(hips.Add(facing.Mul(d)), screen)
		vector.StrokeLine(screen, hx, hy, ox, oy, 1, cfg.Viewer.RightColor, false)
	}

	if m := vs.pose.Motor; m != nil && m.Timescale < cfg.Motor.VeryLongTime {
		target := hips.Add(vs.kin.Orientation.Rotate(m.Velocity).Mul(0.5))
		tx, ty := vs.project(target, screen)
		vector.StrokeLine(screen, hx, hy, tx, ty, 2, cfg.Viewer.FootprintColor, false)
	}
}

// fade scales a premultiplied colour toward transparent.
func fade(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
