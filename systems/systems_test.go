package systems

import (
	"math"
	"testing"

	"github.com/automoto/gaitkit/assets"
	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/automoto/gaitkit/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tidwall/gjson"
	"github.com/yohamta/donburi"
)

const dt = 1.0 / 60

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func newContext(t *testing.T, host components.HostData) *LocomotionContext {
	t.Helper()
	e, err := factory.CreateAvatar(donburi.NewWorld(), assets.MustLoadLibrary(), "male", host)
	if err != nil {
		t.Fatalf("create avatar: %v", err)
	}
	ctx := NewLocomotionContext(e)
	ctx.Frame.Delta = dt
	return ctx
}

type feet struct {
	left, right mgl64.Vec3
}

func (f feet) JointPosition(name string) (mgl64.Vec3, bool) {
	switch name {
	case "LeftFoot":
		return f.left, true
	case "RightFoot":
		return f.right, true
	case "Hips":
		return mgl64.Vec3{0, 1.0, 0}, true
	case "RightToeBase":
		return mgl64.Vec3{0, 0.04, 0}, true
	}
	return mgl64.Vec3{}, false
}

type memItems map[string][]byte

func (m memItems) LoadItem(key string) ([]byte, error) { return m[key], nil }

func (m memItems) SaveItem(key string, data []byte) error {
	m[key] = append([]byte(nil), data...)
	return nil
}

func TestScheduleContinuedMotion(t *testing.T) {
	walk := assets.MustLoadLibrary().Profiles["male"].Animation(config.SlotWalk)
	const stride = 0.9

	tests := []struct {
		name     string
		pos      float64
		elapsed  float64
		wantStop float64
		wantTurn float64
	}{
		{"at stop before half a cycle", 0, 90, 180, 180},
		{"first quadrant", 45, 400, 180, 135},
		{"second quadrant", 135, 400, 180, 45},
		{"third quadrant", 200, 400, 0, 160},
		{"last quadrant", 300, 400, 0, 60},
		{"at stop after a full step", 0, 400, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := components.Transition{
				Last:          config.SlotWalk,
				Next:          config.SlotIdle,
				LastAnimation: walk,
				LastDirection: config.DirectionForwards,
				LastWheelPos:  tt.pos,
				LastElapsed:   tt.elapsed,
				Duration:      0.6,
			}
			scheduleContinuedMotion(&tr, stride)

			if !tr.ContinuedMotion {
				t.Fatal("continued motion not flagged")
			}
			if tr.StopAngle != tt.wantStop || tr.DegreesToTurn != tt.wantTurn {
				t.Fatalf("stop %v turn %v, want %v %v", tr.StopAngle, tr.DegreesToTurn, tt.wantStop, tt.wantTurn)
			}
			if tr.DegreesRemaining != tr.DegreesToTurn {
				t.Fatalf("remaining %v, want %v", tr.DegreesRemaining, tr.DegreesToTurn)
			}
			wantDuration := tt.wantTurn * stride / 180 / config.Locomotion.MaxWalkSpeed
			if !near(tr.ContinuedDuration, wantDuration, 1e-9) {
				t.Fatalf("continued duration %v, want %v", tr.ContinuedDuration, wantDuration)
			}
			if tr.Duration < tr.ContinuedDuration || tr.Duration < 0.6 {
				t.Fatalf("duration %v shorter than the run out", tr.Duration)
			}
		})
	}
}

func TestStrideRecalibration(t *testing.T) {
	measured := feet{left: mgl64.Vec3{0, 0, -0.5}, right: mgl64.Vec3{0, 0, 0.52}}

	tests := []struct {
		name   string
		speed  float64
		wheel  float64
		live   bool
		joints components.JointLocator
		want   float64
	}{
		{"steady at the widest point", 2.55, 90.4, false, measured, 1.02},
		{"below full speed", 2.0, 90, false, measured, 0.9},
		{"outside the window", 2.55, 91.5, false, measured, 0.9},
		{"transition live", 2.55, 90, true, measured, 0.9},
		{"no joint locator", 2.55, 90, false, nil, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(t, components.HostData{Joints: tt.joints})
			ctx.Avatar.Current = config.SlotWalk
			ctx.Motion.Speed = tt.speed
			ctx.Motion.Direction = config.DirectionForwards
			ctx.Motion.Wheel.Position = tt.wheel
			if tt.live {
				ctx.Chain.Push(components.Transition{Last: config.SlotIdle, Next: config.SlotWalk, Duration: 1}, ctx.Motor)
			}

			measureStride(ctx)

			got := ctx.Avatar.StrideLength(config.SlotWalk, config.DirectionForwards)
			if !near(got, tt.want, 1e-9) {
				t.Fatalf("stride %v, want %v", got, tt.want)
			}
			if dirty := tt.want != 0.9; ctx.Avatar.StrideDirty != dirty {
				t.Fatalf("dirty %v, want %v", ctx.Avatar.StrideDirty, dirty)
			}
		})
	}
}

func TestCalibrateHipsToFeetOnce(t *testing.T) {
	ctx := newContext(t, components.HostData{Joints: feet{}})
	calibrateHipsToFeet(ctx)
	if !near(ctx.Avatar.HipsToFeet, 0.96, 1e-9) || !ctx.Avatar.HipsCalibrated {
		t.Fatalf("hips to feet %v calibrated=%v", ctx.Avatar.HipsToFeet, ctx.Avatar.HipsCalibrated)
	}

	ctx.Avatar.HipsToFeet = 2
	calibrateHipsToFeet(ctx)
	if ctx.Avatar.HipsToFeet != 2 {
		t.Fatal("recalibrated a second time")
	}
}

func TestSetTransitionSameSlot(t *testing.T) {
	ctx := newContext(t, components.HostData{})
	if setTransition(ctx, config.SlotIdle, true) {
		t.Fatal("idle to idle started a transition")
	}
	if ctx.Chain.Live() {
		t.Fatal("chain live")
	}
}

func TestRecursionCap(t *testing.T) {
	ctx := newContext(t, components.HostData{})
	slots := []config.AnimationSlot{
		config.SlotWalk, config.SlotSideStepLeft, config.SlotWalk,
		config.SlotSideStepRight, config.SlotIdle, config.SlotWalk,
	}

	for i, slot := range slots {
		if !setTransition(ctx, slot, true) {
			t.Fatalf("step %d: %v did not start", i, slot)
		}
		if d := ctx.Chain.Depth(); d > 4 {
			t.Fatalf("step %d: depth %d", i, d)
		}
	}

	if ctx.Chain.Created != len(slots) {
		t.Fatalf("created %d", ctx.Chain.Created)
	}
	if ctx.Chain.Depth() != 4 {
		t.Fatalf("depth %d, want 4", ctx.Chain.Depth())
	}
	// Only the first was retired.
	if s := ctx.Chain.Node(0).Serial; s != 2 {
		t.Fatalf("oldest serial %d, want 2", s)
	}
	if ctx.Chain.Current().Next != config.SlotWalk || ctx.Avatar.Current != config.SlotWalk {
		t.Fatal("newest transition is not the last requested")
	}
}

func TestTransitionCompletes(t *testing.T) {
	ctx := newContext(t, components.HostData{})
	setTransition(ctx, config.SlotWalk, false)
	duration := ctx.Chain.Current().Duration

	frames := 0
	for ctx.Chain.Live() {
		node := ctx.Chain.Current()
		advanceTransitions(ctx)
		if node.FilteredProgress < 0 || node.FilteredProgress > 1 {
			t.Fatalf("filtered progress %v", node.FilteredProgress)
		}
		frames++
		if frames > 1000 {
			t.Fatal("transition never completed")
		}
	}

	if want := int(math.Ceil(duration / dt)); frames < want-1 || frames > want+1 {
		t.Fatalf("completed after %d frames, want about %d", frames, want)
	}
}

func TestNestedCompletionRetiresAncestors(t *testing.T) {
	ctx := newContext(t, components.HostData{})
	ctx.Chain.Push(components.Transition{Last: config.SlotIdle, Next: config.SlotWalk, Duration: 0.05}, ctx.Motor)
	ctx.Chain.Push(components.Transition{Last: config.SlotWalk, Next: config.SlotIdle, Duration: 1}, ctx.Motor)

	for i := 0; i < 5; i++ {
		advanceTransitions(ctx)
	}

	if ctx.Chain.Len() != 1 {
		t.Fatalf("chain length %d, want 1", ctx.Chain.Len())
	}
	top := ctx.Chain.Current()
	if top.Serial != 2 || top.Progress >= 1 {
		t.Fatalf("surviving node %d progress %v", top.Serial, top.Progress)
	}
}

// hipsCurve animates only the hips: bob and pitch both follow
// amplitude*sin(phase) + offset.
func hipsCurve(amplitude, offset float64) *animations.Animation {
	c := animations.Curve{Amplitude: amplitude, Offset: offset}
	return &animations.Animation{
		Name: "test",
		Joints: map[string]*animations.Joint{
			animations.Hips: {Name: animations.Hips, Bob: c, Pitch: c},
		},
	}
}

func TestBlendCrossFade(t *testing.T) {
	tests := []struct {
		name     string
		last     config.AnimationSlot
		elapsed  float64
		progress float64
		wantBob  float64
		wantRot  float64
	}{
		{"start", config.SlotIdle, 0, 0, 0, 0},
		{"quarter", config.SlotIdle, 0, 0.25, 0.25, 2.5},
		{"done", config.SlotIdle, 0, 1, 1, 10},
		{"short walk", config.SlotWalk, 60, 1, 1, 10 * gamemath.SmoothStep(0.5)},
		{"full walk", config.SlotWalk, 120, 1, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(t, components.HostData{})
			node := ctx.Chain.Push(components.Transition{
				Last:          tt.last,
				Next:          config.SlotHover,
				LastAnimation: hipsCurve(0, 0),
				NextAnimation: hipsCurve(0, 1),
				LastElapsed:   tt.elapsed,
			}, ctx.Motor)
			node.FilteredProgress = tt.progress
			// Pitch offsets are ten times the bob so the two channels differ.
			node.NextAnimation.Joints[animations.Hips].Pitch.Offset = 10

			tr := blendTranslations(ctx, 0, 45, config.DirectionForwards)
			if !near(tr.Y(), tt.wantBob, 1e-9) {
				t.Fatalf("bob %v, want %v", tr.Y(), tt.wantBob)
			}
			rot := blendRotations(ctx, animations.Hips, 0, 45, config.DirectionForwards)
			if !near(rot.X(), tt.wantRot, 1e-6) {
				t.Fatalf("pitch %v, want %v", rot.X(), tt.wantRot)
			}
		})
	}
}

func TestBlendNestedAtFrozenPhase(t *testing.T) {
	ctx := newContext(t, components.HostData{})
	inner := ctx.Chain.Push(components.Transition{
		Last:          config.SlotIdle,
		Next:          config.SlotHover,
		LastAnimation: hipsCurve(0, 2),
		NextAnimation: hipsCurve(1, 0),
	}, ctx.Motor)
	inner.FilteredProgress = 0.5
	outer := ctx.Chain.Push(components.Transition{
		Last:          config.SlotHover,
		Next:          config.SlotIdle,
		NextAnimation: hipsCurve(0, 4),
		LastWheelPos:  90,
	}, ctx.Motor)
	outer.FilteredProgress = 0.25

	// The nested blend is sampled at the outer node's frozen wheel, not at
	// the phase of the animation blending in.
	for _, phase := range []float64{0, 123, 300} {
		got := blendTranslations(ctx, 1, phase, config.DirectionForwards)
		if !near(got.Y(), 0.25*4+0.75*(0.5*1+0.5*2), 1e-9) {
			t.Fatalf("phase %v: bob %v", phase, got.Y())
		}
		rot := blendRotations(ctx, animations.Hips, 1, phase, config.DirectionForwards)
		if !near(rot.X(), got.Y(), 1e-9) {
			t.Fatalf("phase %v: pitch %v, bob %v", phase, rot.X(), got.Y())
		}
	}

	outer.LastWheelPos = 270
	got := blendTranslations(ctx, 1, 0, config.DirectionForwards)
	if !near(got.Y(), 0.25*4+0.75*(0.5*-1+0.5*2), 1e-9) {
		t.Fatalf("bob at wheel 270: %v", got.Y())
	}
}

func TestAdvancePreviousReplaysIncrement(t *testing.T) {
	ctx := newContext(t, components.HostData{})
	ctx.Chain.Push(components.Transition{
		Last: config.SlotHover, Next: config.SlotIdle,
		LastWheelPos: 100, LastIncrement: 2,
	}, ctx.Motor)
	top := ctx.Chain.Push(components.Transition{
		Last: config.SlotIdle, Next: config.SlotHover,
		LastWheelPos: 358, LastIncrement: 5, LastElapsed: 10,
	}, ctx.Motor)

	advancePrevious(ctx, 1, dt)

	if !near(top.LastWheelPos, 3, 1e-9) || !near(top.LastElapsed, 15, 1e-9) {
		t.Fatalf("top wheel %v elapsed %v", top.LastWheelPos, top.LastElapsed)
	}
	if got := ctx.Chain.Node(0).LastWheelPos; !near(got, 102, 1e-9) {
		t.Fatalf("nested wheel %v, want 102", got)
	}
	if ctx.Motor.Changed {
		t.Fatal("replaying an increment touched the motor")
	}
}

func TestRunOutDrivesMotorThenBrakes(t *testing.T) {
	ctx := newContext(t, components.HostData{})
	ctx.Motor.StartMotoring(config.DirectionForwards)
	node := ctx.Chain.Push(components.Transition{
		Last: config.SlotWalk, Next: config.SlotIdle,
		LastDirection:     config.DirectionForwards,
		DegreesRemaining:  90,
		ContinuedDuration: 0.5,
		LastWheelPos:      200,
	}, ctx.Motor)

	advancePrevious(ctx, 0, dt)

	// 90 degrees over 0.5 s is 3 degrees a frame; a 0.9 m stride covers
	// 0.015 m of it, 0.9 m/s.
	if !near(node.LastWheelPos, 203, 1e-9) || !near(node.DegreesRemaining, 87, 1e-9) {
		t.Fatalf("wheel %v remaining %v", node.LastWheelPos, node.DegreesRemaining)
	}
	if v := ctx.Motor.Command.Velocity.Z(); !near(v, -0.9, 1e-9) {
		t.Fatalf("motor z %v, want -0.9", v)
	}
	if !ctx.Motor.Motoring {
		t.Fatal("motor stopped early")
	}

	node.DegreesRemaining = 0
	advancePrevious(ctx, 0, dt)
	if !near(node.LastWheelPos, 203, 1e-9) {
		t.Fatalf("wheel moved after the run-out: %v", node.LastWheelPos)
	}
	if ctx.Motor.Motoring || !ctx.Motor.Braking {
		t.Fatalf("motor not braked: %+v", ctx.Motor)
	}
}

func TestProgressClamped(t *testing.T) {
	ctx := newContext(t, components.HostData{})
	node := ctx.Chain.Push(components.Transition{Duration: 0.05}, ctx.Motor)

	if !updateProgress(ctx, 0, 0.2) {
		t.Fatal("transition did not complete")
	}
	if node.Progress != 1 {
		t.Fatalf("progress %v, want 1", node.Progress)
	}
}

func TestLandingCapsMotorAlongTravel(t *testing.T) {
	tests := []struct {
		name  string
		vz    float64
		wantZ float64
	}{
		{"forwards", -4, -config.Locomotion.MaxWalkSpeed},
		{"backwards", 4, config.Locomotion.MaxWalkSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(t, components.HostData{})
			m := ctx.Motion
			// Falling faster than travelling, so the dominant direction is DOWN.
			m.Velocity = mgl64.Vec3{0, -5, tt.vz}
			m.Speed = m.Velocity.Len()
			m.Direction = config.DirectionDown
			m.LastDistanceToGround = 1
			m.DistanceToGround = 0.3

			senseSurroundings(ctx)

			if z := ctx.Motor.Command.Velocity.Z(); !near(z, tt.wantZ, 1e-9) {
				t.Fatalf("motor z %v, want %v", z, tt.wantZ)
			}
			if !ctx.Actions.Has(config.Actions.LandOnSurface) {
				t.Fatal("no landing action")
			}
		})
	}
}

func TestLandingActionNotStacked(t *testing.T) {
	ctx := newContext(t, components.HostData{})
	m := ctx.Motion
	m.Velocity = mgl64.Vec3{0, -2, -1}
	m.Speed = m.Velocity.Len()
	m.Direction = config.DirectionDown

	for i := 0; i < 3; i++ {
		m.LastDistanceToGround = 0.6
		m.DistanceToGround = 0.4
		senseSurroundings(ctx)
	}

	if n := ctx.Actions.Count(); n != 1 {
		t.Fatalf("%d live actions, want 1", n)
	}
}

func TestSideStepFallsBackToWalking(t *testing.T) {
	tests := []struct {
		dir  config.Direction
		want config.LocomotionMode
	}{
		{config.DirectionLeft, config.SideStep},
		{config.DirectionRight, config.SideStep},
		{config.DirectionForwards, config.Walking},
		{config.DirectionNone, config.Walking},
		{config.DirectionDown, config.Walking},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			ctx := newContext(t, components.HostData{})
			ctx.Locomotion.Mode = config.SideStep
			m := ctx.Motion
			// Airborne and slow but landing: neither standing nor flying.
			m.Moving = true
			m.WalkingSpeed = true
			m.Landing = true
			m.Direction = tt.dir

			determineMode(ctx)
			if ctx.Locomotion.Mode != tt.want {
				t.Fatalf("mode %v, want %v", ctx.Locomotion.Mode, tt.want)
			}
		})
	}
}

func TestQuickStopSuppressesActionsOnlyWhenRewalking(t *testing.T) {
	ctx := newContext(t, components.HostData{})
	lib := ctx.Avatar.Library
	for _, pair := range []animations.SlotPair{
		{Last: config.SlotWalk, Next: config.SlotIdle},
		{Last: config.SlotIdle, Next: config.SlotWalk},
	} {
		spec := lib.Transition(pair.Last, pair.Next)
		spec.Actions = []string{config.Actions.LandOnSurface}
		lib.Transitions[pair] = spec
	}
	ctx.Avatar.Current = config.SlotWalk
	ctx.Motion.OnGround = true
	ctx.Locomotion.Mode = config.Standing

	selectAnimation(ctx)
	stop := ctx.Chain.Current()
	if stop == nil || stop.Next != config.SlotIdle || len(stop.Actions) != 1 {
		t.Fatalf("walk to idle: %+v", stop)
	}

	ctx.Motion.Direction = config.DirectionForwards
	ctx.Locomotion.Mode = config.Walking
	selectAnimation(ctx)
	rewalk := ctx.Chain.Current()
	if rewalk.Next != config.SlotWalk || len(rewalk.Actions) != 0 {
		t.Fatalf("walking again over a quick stop played %d actions", len(rewalk.Actions))
	}
}

func TestOverlay(t *testing.T) {
	got := overlay(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 4, 0}, 0.5)
	if got != (mgl64.Vec3{1, 3, 3}) {
		t.Fatalf("overlay %v", got)
	}
	if got := overlay(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{5, 5, 5}, 1); got != (mgl64.Vec3{5, 5, 5}) {
		t.Fatalf("full strength overlay %v", got)
	}
}

func TestFootstepsAlternate(t *testing.T) {
	ctx := newContext(t, components.HostData{})
	ctx.Avatar.Current = config.SlotWalk
	ctx.Motion.OnGround = true
	ctx.Motion.Speed = 1.3
	ctx.Kinematics.Position = mgl64.Vec3{2, 1.35, -4}

	steps := func(phase float64) []components.FootstepEvent {
		ctx.Pose.Reset()
		ctx.Motion.Wheel.Position = phase
		emitFootsteps(ctx)
		return ctx.Pose.Footsteps
	}

	if got := steps(60); len(got) != 0 {
		t.Fatalf("step before the right foot lands: %+v", got)
	}
	got := steps(100)
	if len(got) != 1 || got[0].Side != config.StepRight {
		t.Fatalf("right step: %+v", got)
	}
	if !near(got[0].Position.Y(), 0, 1e-9) || got[0].Position.X() != 2 {
		t.Fatalf("footstep at %v", got[0].Position)
	}
	wantVolume := config.Footsteps.LoudScale * 1.3 / config.Locomotion.MaxWalkSpeed
	if !near(got[0].Volume, wantVolume, 1e-9) {
		t.Fatalf("volume %v, want %v", got[0].Volume, wantVolume)
	}
	if got := steps(120); len(got) != 0 {
		t.Fatalf("right foot stepped twice: %+v", got)
	}
	if got := steps(280); len(got) != 1 || got[0].Side != config.StepLeft {
		t.Fatalf("left step: %+v", got)
	}
	if ctx.Avatar.NextStep != config.StepRight {
		t.Fatalf("next step %v", ctx.Avatar.NextStep)
	}
}

func TestEulerToQuat(t *testing.T) {
	forward := mgl64.Vec3{0, 0, -1}

	yawed := EulerToQuat(mgl64.Vec3{0, 90, 0}).Rotate(forward)
	if yawed.Sub(mgl64.Vec3{-1, 0, 0}).Len() > 1e-9 {
		t.Fatalf("yaw 90 turned forward to %v", yawed)
	}
	pitched := EulerToQuat(mgl64.Vec3{90, 0, 0}).Rotate(forward)
	if pitched.Sub(mgl64.Vec3{0, 1, 0}).Len() > 1e-9 {
		t.Fatalf("pitch 90 turned forward to %v", pitched)
	}
}

func TestCalibrationStoreRoundTrip(t *testing.T) {
	items := memItems{
		config.Storage.CalibrationKey: []byte(`{"female":{"hips_to_feet":0.9}}`),
	}
	store := NewCalibrationStore(items)

	ctx := newContext(t, components.HostData{})
	ctx.Avatar.HipsToFeet = 1.02
	ctx.Avatar.HipsCalibrated = true
	ctx.Avatar.SetStrideLength(config.SlotWalk, config.DirectionForwards, 0.93)
	ctx.Avatar.SetStrideLength(config.SlotSideStepLeft, config.DirectionLeft, 0.41)
	if err := store.Save(ctx.Avatar); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ctx.Avatar.StrideDirty {
		t.Fatal("still dirty after save")
	}

	doc := items[config.Storage.CalibrationKey]
	if got := gjson.GetBytes(doc, "female.hips_to_feet").Float(); got != 0.9 {
		t.Fatalf("other profile lost: %s", doc)
	}
	if got := gjson.GetBytes(doc, "male.strides.walk.forwards").Float(); got != 0.93 {
		t.Fatalf("walk stride not saved: %s", doc)
	}

	fresh := newContext(t, components.HostData{})
	if err := store.Load(fresh.Avatar); err != nil {
		t.Fatalf("load: %v", err)
	}
	a := fresh.Avatar
	if a.HipsToFeet != 1.02 || !a.HipsCalibrated {
		t.Fatalf("hips to feet %v calibrated=%v", a.HipsToFeet, a.HipsCalibrated)
	}
	if got := a.StrideLength(config.SlotWalk, config.DirectionForwards); got != 0.93 {
		t.Fatalf("walk stride %v", got)
	}
	if got := a.StrideLength(config.SlotSideStepLeft, config.DirectionLeft); got != 0.41 {
		t.Fatalf("side-step stride %v", got)
	}
	if a.StrideDirty {
		t.Fatal("dirty after load")
	}
}

func TestCalibrationStoreRejectsGarbage(t *testing.T) {
	items := memItems{config.Storage.CalibrationKey: []byte("{not json")}
	ctx := newContext(t, components.HostData{})
	if err := NewCalibrationStore(items).Load(ctx.Avatar); err == nil {
		t.Fatal("malformed document accepted")
	}
}
