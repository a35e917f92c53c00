// Package scenes holds the interactive viewer: an avatar driven from the
// keyboard or a scripted scenario, drawn as a stick figure over the terrain.
package scenes

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/automoto/gaitkit/animator"
	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/components"
	cfg "github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/internal/log"
	"github.com/automoto/gaitkit/scenario"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/automoto/gaitkit/shared/leveldata"
	"github.com/automoto/gaitkit/systems"
	"github.com/automoto/gaitkit/terrain"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// layerDefault is the only render layer of the viewer.
const layerDefault ecs.LayerID = iota

// keyboard is the scenario slot driven from the input bindings.
const keyboard = "keyboard"

type Options struct {
	Library  *animations.Library
	Watcher  *animations.Watcher
	Level    *leveldata.CollisionData // nil walks on flat ground
	Spawn    int
	Scenario string // empty drives from the keyboard
	Store    *systems.CalibrationStore
	ArmsFree bool
	Debug    bool
}

type footprint struct {
	position mgl64.Vec3
	side     cfg.StepSide
	volume   float64
}

type ViewerScene struct {
	ecs      *ecs.ECS
	animator *animator.Animator
	probe    components.Probe
	terrain  *terrain.Probe
	start    mgl64.Vec3

	scenarios []string
	current   int
	runner    *scenario.Runner
	skeleton  *scenario.Skeleton

	input inputState
	drive mgl64.Vec3
	turn  float64
	kin   components.KinematicsData
	pose  *components.PoseData

	camera     mgl64.Vec2 // world z and y at the centre of the view
	footprints []footprint
	paused     bool
	debug      bool
}

// NewViewerScene builds the world, the animator and the body that drives it.
func NewViewerScene(o Options) (*ViewerScene, error) {
	world := donburi.NewWorld()
	hips := cfg.Locomotion.HipsToFeet

	vs := &ViewerScene{
		probe:     scenario.FlatGround{},
		start:     mgl64.Vec3{0, hips, 0},
		scenarios: append([]string{keyboard}, scenario.Names()...),
		debug:     o.Debug || cfg.Viewer.Debug,
	}

	if o.Level != nil {
		p, err := terrain.Load(world, o.Level)
		if err != nil {
			return nil, err
		}
		ground, ok := p.Spawn(o.Level, o.Spawn)
		if !ok {
			return nil, fmt.Errorf("level %s has no spawn point %d", o.Level.Name, o.Spawn)
		}
		vs.start = ground.Add(mgl64.Vec3{0, hips, 0})
		vs.probe, vs.terrain = p, p
	}

	if o.Scenario != "" {
		found := false
		for i, name := range vs.scenarios {
			if name == o.Scenario {
				vs.current, found = i, true
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown scenario %q", o.Scenario)
		}
	}

	vs.skeleton = scenario.NewSkeleton(vs.start)
	opts := []animator.Option{
		animator.WithWorld(world),
		animator.WithProbe(vs.probe),
		animator.WithJointLocator(vs.skeleton),
		animator.WithArmsFree(o.ArmsFree),
	}
	if o.Store != nil {
		opts = append(opts, animator.WithCalibrationStore(o.Store))
	}
	a, err := animator.New(o.Library, opts...)
	if err != nil {
		return nil, err
	}
	if o.Watcher != nil {
		a.Watch(o.Watcher)
	}
	vs.animator = a
	vs.pose = a.Pose()
	vs.camera = mgl64.Vec2{vs.start.Z(), vs.start.Y() - hips}
	vs.restart(vs.start)

	vs.ecs = ecs.NewECS(world)

	vs.ecs.AddSystem(vs.updateInput)
	vs.ecs.AddSystem(vs.updateControls)
	vs.ecs.AddSystem(vs.updateBody)
	vs.ecs.AddSystem(vs.updateCamera)

	vs.ecs.AddRenderer(layerDefault, vs.drawGround)
	vs.ecs.AddRenderer(layerDefault, vs.drawFootprints)
	vs.ecs.AddRenderer(layerDefault, vs.drawSkeleton)
	vs.ecs.AddRenderer(layerDefault, vs.drawDebug)
	vs.ecs.AddRenderer(layerDefault, vs.drawHUD)

	return vs, nil
}

func (vs *ViewerScene) Update() {
	vs.ecs.Update()
}

func (vs *ViewerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(cfg.Viewer.BackgroundColor)
	vs.ecs.Draw(screen)
}

// Close saves the calibration if the scene has a store.
func (vs *ViewerScene) Close() error {
	return vs.animator.Close()
}

// restart starts the current scenario, or keyboard driving, from position.
func (vs *ViewerScene) restart(position mgl64.Vec3) {
	name := vs.scenarios[vs.current]
	s, _ := scenario.Lookup(name)
	vs.runner = scenario.NewRunner(s, vs.probe, position, vs.animator.Context().Avatar.HipsToFeet)
	vs.drive = mgl64.Vec3{}
	vs.turn = 0
	log.Info("viewer scenario", zap.String("scenario", name))
}

func (vs *ViewerScene) driving() bool {
	return vs.scenarios[vs.current] == keyboard
}

func (vs *ViewerScene) updateInput(_ *ecs.ECS) {
	vs.input.poll()
}

// updateControls handles the toggles that are not part of driving.
func (vs *ViewerScene) updateControls(_ *ecs.ECS) {
	in := &vs.input
	if in.JustPressed(cfg.ActionPause) {
		vs.paused = !vs.paused
	}
	if in.JustPressed(cfg.ActionDebug) {
		vs.debug = !vs.debug
	}
	if in.JustPressed(cfg.ActionPower) {
		vs.animator.SetPower(!vs.animator.Powered())
	}
	if in.JustPressed(cfg.ActionArmsFree) {
		vs.animator.SetArmsFree(!vs.animator.ArmsFree())
	}
	if in.JustPressed(cfg.ActionNextScenario) {
		vs.current = (vs.current + 1) % len(vs.scenarios)
		vs.restart(vs.runner.Position())
	}
	if in.JustPressed(cfg.ActionReset) {
		vs.footprints = vs.footprints[:0]
		vs.restart(vs.start)
	}
}

// steer turns the held actions into a body-local velocity and yaw rate,
// easing horizontal speed toward the target.
func (vs *ViewerScene) steer(dt float64) {
	in := &vs.input
	axis := func(neg, pos cfg.ActionID) float64 {
		v := 0.0
		if in.Pressed(neg) {
			v--
		}
		if in.Pressed(pos) {
			v++
		}
		return v
	}

	speed := cfg.Viewer.WalkSpeed
	if in.Pressed(cfg.ActionRun) {
		speed = cfg.Viewer.RunSpeed
	}
	forward := axis(cfg.ActionBack, cfg.ActionForward) - in.StickY
	side := axis(cfg.ActionStepLeft, cfg.ActionStepRight) + in.StickX
	target := mgl64.Vec3{
		clampUnit(side) * cfg.Viewer.WalkSpeed * 0.5,
		axis(cfg.ActionSink, cfg.ActionRise) * cfg.Viewer.ClimbSpeed,
		-clampUnit(forward) * speed,
	}

	k := math.Min(1, cfg.Viewer.Acceleration*dt)
	for _, i := range []int{0, 2} {
		vs.drive[i] += (target[i] - vs.drive[i]) * k
		if math.Abs(target[i]-vs.drive[i]) < 1e-3 {
			vs.drive[i] = target[i]
		}
	}
	vs.drive[1] = target[1]
	vs.turn = axis(cfg.ActionTurnRight, cfg.ActionTurnLeft) * cfg.Viewer.TurnRate

	vs.runner.Drive(vs.drive, vs.turn)
}

// updateBody moves the body one frame, runs the animator on it and poses
// the skeleton with the result.
func (vs *ViewerScene) updateBody(_ *ecs.ECS) {
	if vs.paused {
		return
	}
	dt := 1 / float64(ebiten.TPS())

	if vs.driving() {
		vs.steer(dt)
	} else if vs.runner.Done() {
		vs.restart(vs.runner.Position())
	}

	vs.kin = vs.runner.Step(dt)
	vs.pose = vs.animator.Update(dt, vs.kin)
	vs.runner.ApplyMotor(vs.pose.Motor)
	vs.skeleton.Apply(vs.kin, vs.pose)

	for _, step := range vs.pose.Footsteps {
		vs.stepDown(step)
	}
}

// stepDown leaves a footprint under the stepping foot and clicks.
func (vs *ViewerScene) stepDown(step components.FootstepEvent) {
	joint := "RightToeBase"
	if step.Side == cfg.StepLeft {
		joint = "LeftToeBase"
	}
	if p, ok := vs.skeleton.JointPosition(joint); ok {
		vs.footprints = append(vs.footprints, footprint{position: p, side: step.Side, volume: step.Volume})
		if n := len(vs.footprints) - cfg.Viewer.FootprintCount; n > 0 {
			vs.footprints = append(vs.footprints[:0], vs.footprints[n:]...)
		}
	}
	playFootstep(step)
}

// updateCamera eases the view toward the avatar's feet.
func (vs *ViewerScene) updateCamera(_ *ecs.ECS) {
	feet := vs.kin.Position.Y() - vs.animator.Context().Avatar.HipsToFeet
	if vs.kin.Orientation.Len() == 0 {
		feet = vs.camera[1]
	}
	lag := cfg.Viewer.CameraLag
	vs.camera[0] = gamemath.Lerp(vs.camera[0], vs.kin.Position.Z(), lag)
	vs.camera[1] = gamemath.Lerp(vs.camera[1], feet, lag)
}

// project maps a world position to screen pixels. The view looks at the
// avatar's right side: forward travel (world -z) runs to the right and
// sideways (x) offsets are drawn foreshortened.
func (vs *ViewerScene) project(p mgl64.Vec3, screen *ebiten.Image) (float32, float32) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	ppm := cfg.Viewer.PixelsPerMeter
	x := float64(w)/2 + (vs.camera[0]-p.Z())*ppm + p.X()*ppm*cfg.Viewer.Depth
	y := float64(h)*cfg.Viewer.GroundLine - (p.Y()-vs.camera[1])*ppm
	return float32(x), float32(y)
}

func sideColor(name string) color.RGBA {
	switch {
	case strings.HasPrefix(name, "Left"):
		return cfg.Viewer.LeftColor
	case strings.HasPrefix(name, "Right"):
		return cfg.Viewer.RightColor
	}
	return cfg.Viewer.BoneColor
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
