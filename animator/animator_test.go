package animator

import (
	"math"
	"testing"

	"github.com/automoto/gaitkit/assets"
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/systems"
	"github.com/go-gl/mathgl/mgl64"
)

const dt = 1.0 / 60

// flatGround answers straight-down rays against the plane y=0.
type flatGround struct{}

func (flatGround) Raycast(origin, direction mgl64.Vec3, maxDistance float64) (float64, bool) {
	if direction.Y() >= 0 || math.Abs(direction.X())+math.Abs(direction.Z()) > 1e-9 {
		return 0, false
	}
	d := origin.Y()
	if d < 0 || d > maxDistance {
		return 0, false
	}
	return d, true
}

type memItems map[string][]byte

func (m memItems) LoadItem(key string) ([]byte, error) { return m[key], nil }

func (m memItems) SaveItem(key string, data []byte) error {
	m[key] = append([]byte(nil), data...)
	return nil
}

func newAnimator(t *testing.T, opts ...Option) *Animator {
	t.Helper()
	opts = append([]Option{WithProbe(flatGround{})}, opts...)
	a, err := New(assets.MustLoadLibrary(), opts...)
	if err != nil {
		t.Fatalf("new animator: %v", err)
	}
	return a
}

// grounded is the host state of an avatar standing on the plane with the
// given world velocity.
func grounded(v mgl64.Vec3) components.KinematicsData {
	return components.KinematicsData{
		Position:    mgl64.Vec3{0, config.Locomotion.HipsToFeet, 0},
		Orientation: mgl64.QuatIdent(),
		Velocity:    v,
	}
}

func forwards(speed float64) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, -speed}
}

func TestRestStaysIdle(t *testing.T) {
	a := newAnimator(t)

	for i := 0; i < 10; i++ {
		pose := a.Update(dt, grounded(mgl64.Vec3{}))
		if a.Mode() != config.Standing {
			t.Fatalf("frame %d: mode %v", i, a.Mode())
		}
		if len(pose.Joints) == 0 {
			t.Fatalf("frame %d: empty pose", i)
		}
		if pose.Motor != nil {
			t.Fatalf("frame %d: unexpected motor command %+v", i, *pose.Motor)
		}
	}

	ctx := a.Context()
	if ctx.Chain.Live() || ctx.Chain.Created != 0 {
		t.Fatalf("transitions created at rest: live=%v created=%d", ctx.Chain.Live(), ctx.Chain.Created)
	}
	if a.Slot() != config.SlotIdle {
		t.Fatalf("slot %v, want idle", a.Slot())
	}
	if ctx.Frame.Count != 10 {
		t.Fatalf("frame count %d", ctx.Frame.Count)
	}
}

func TestAccelerateStartsOneWalkTransition(t *testing.T) {
	a := newAnimator(t)
	ctx := a.Context()

	walkedAt := -1
	for k := 0; k <= 60; k++ {
		speed := 3.0 * float64(k) / 60
		a.Update(dt, grounded(forwards(speed)))

		if a.Mode() == config.Walking && walkedAt < 0 {
			walkedAt = k
			node := ctx.Chain.Current()
			if node == nil {
				t.Fatalf("frame %d: walking without a transition", k)
			}
			if node.Last != config.SlotIdle || node.Next != config.SlotWalk {
				t.Fatalf("transition %v -> %v, want idle -> walk", node.Last, node.Next)
			}
		}
	}

	if walkedAt != 2 {
		t.Fatalf("started walking at frame %d, want 2", walkedAt)
	}
	if ctx.Chain.Created != 1 {
		t.Fatalf("created %d transitions, want 1", ctx.Chain.Created)
	}
	if a.Slot() != config.SlotWalk {
		t.Fatalf("slot %v, want walk", a.Slot())
	}
}

func TestStopRunsOutWithMotor(t *testing.T) {
	a := newAnimator(t)
	ctx := a.Context()

	for k := 0; k <= 30; k++ {
		a.Update(dt, grounded(forwards(2.0*float64(k)/30)))
	}
	for k := 0; k < 60; k++ {
		a.Update(dt, grounded(forwards(2.0)))
	}
	if a.Mode() != config.Walking {
		t.Fatalf("mode %v before stopping, want WALKING", a.Mode())
	}

	var commands []components.MotorCommand
	stopped := false
	for k := 1; k <= 12; k++ {
		pose := a.Update(dt, grounded(forwards(2.0*float64(12-k)/12)))
		if pose.Motor != nil {
			commands = append(commands, *pose.Motor)
		}
		if !stopped && a.Mode() == config.Standing {
			stopped = true
			node := ctx.Chain.Current()
			if node == nil || node.Last != config.SlotWalk || node.Next != config.SlotIdle {
				t.Fatalf("stopping without a walk -> idle transition")
			}
			if !node.ContinuedMotion || node.DegreesToTurn <= 0 {
				t.Fatalf("continued motion not scheduled: %+v", node)
			}
			if !ctx.Motor.Motoring {
				t.Fatal("motor not started on stop")
			}
		}
	}
	if !stopped {
		t.Fatal("never stopped")
	}

	for k := 0; k < 180; k++ {
		if pose := a.Update(dt, grounded(mgl64.Vec3{})); pose.Motor != nil {
			commands = append(commands, *pose.Motor)
		}
	}

	if len(commands) == 0 || commands[0].Velocity.Z() >= 0 {
		t.Fatalf("first motor command should drive forwards: %+v", commands)
	}
	braked := false
	for _, c := range commands {
		if c.Timescale == config.Motor.VeryShortTime {
			braked = true
		}
	}
	if !braked {
		t.Fatalf("motor never braked: %+v", commands)
	}
	if ctx.Motor.Motoring || ctx.Chain.Live() {
		t.Fatalf("still running out: motoring=%v live=%v", ctx.Motor.Motoring, ctx.Chain.Live())
	}
	if a.Mode() != config.Standing || a.Slot() != config.SlotIdle {
		t.Fatalf("ended in %v/%v", a.Mode(), a.Slot())
	}
}

func TestOverlappingTransitionsStayBounded(t *testing.T) {
	a := newAnimator(t)
	ctx := a.Context()

	for k := 0; k <= 20; k++ {
		a.Update(dt, grounded(forwards(float64(k)/20)))
	}
	if a.Mode() != config.Walking {
		t.Fatalf("mode %v, want WALKING", a.Mode())
	}

	sequence := []mgl64.Vec3{
		{-1, 0, 0}, forwards(1), {1, 0, 0}, forwards(1),
		{-1, 0, 0}, forwards(1), {1, 0, 0}, forwards(1),
	}
	before := ctx.Chain.Created
	for i, v := range sequence {
		a.Update(dt, grounded(v))

		if d := ctx.Chain.Depth(); d > config.Locomotion.MaxTransitionRecursion {
			t.Fatalf("step %d: depth %d", i, d)
		}
		// Retirement is oldest first, so the live nodes are always the
		// most recent ones.
		oldest := ctx.Chain.Node(0)
		if want := ctx.Chain.Created - ctx.Chain.Len() + 1; oldest.Serial != want {
			t.Fatalf("step %d: oldest live serial %d, want %d", i, oldest.Serial, want)
		}
	}

	if got := ctx.Chain.Created - before; got != len(sequence) {
		t.Fatalf("created %d transitions, want %d", got, len(sequence))
	}
	if ctx.Chain.Depth() != config.Locomotion.MaxTransitionRecursion {
		t.Fatalf("depth %d after %d nested transitions", ctx.Chain.Depth(), len(sequence))
	}
}

func TestVerticalMotionFlies(t *testing.T) {
	a := newAnimator(t)

	a.Update(dt, grounded(mgl64.Vec3{}))
	a.Update(dt, grounded(mgl64.Vec3{0, 1, 0}))

	if a.Mode() != config.Flying {
		t.Fatalf("mode %v, want FLYING", a.Mode())
	}
	if a.Slot() != config.SlotFlyBlend {
		t.Fatalf("slot %v, want fly_blend", a.Slot())
	}
	for i := 0; i < 30; i++ {
		if pose := a.Update(dt, grounded(mgl64.Vec3{0, 1, 0})); len(pose.Joints) == 0 {
			t.Fatalf("frame %d: empty flying pose", i)
		}
	}
}

func TestPowerOffFreezesPose(t *testing.T) {
	a := newAnimator(t)
	for k := 0; k < 20; k++ {
		a.Update(dt, grounded(forwards(float64(k)/20)))
	}

	a.SetPower(false)
	frozen := append([]components.JointPose(nil), a.Pose().Joints...)
	count := a.Context().Frame.Count

	for k := 0; k < 10; k++ {
		a.Update(dt, grounded(forwards(2)))
	}

	pose := a.Pose()
	if len(pose.Joints) != len(frozen) {
		t.Fatalf("joint count changed while off: %d -> %d", len(frozen), len(pose.Joints))
	}
	for i := range frozen {
		if pose.Joints[i] != frozen[i] {
			t.Fatalf("joint %s changed while off", frozen[i].Name)
		}
	}
	if a.Context().Frame.Count != count {
		t.Fatal("frames counted while off")
	}

	a.SetPower(true)
	a.Update(dt, grounded(forwards(2)))
	if a.Context().Frame.Count != count+1 {
		t.Fatal("frame not counted after power on")
	}
}

func TestPowerOffResetsSmoothing(t *testing.T) {
	a := newAnimator(t)
	ctx := a.Context()
	ctx.Lean.Pitch.Process(30)
	ctx.Lean.Roll.Process(-30)
	ctx.Avatar.FlyUpFilter.Process(1)
	ctx.Avatar.SoarFilter.Process(1)

	a.SetPower(false)

	if p, r := ctx.Lean.Pitch.Process(0), ctx.Lean.Roll.Process(0); p != 0 || r != 0 {
		t.Fatalf("lean filters kept history: pitch %v roll %v", p, r)
	}
	if up, soar := ctx.Avatar.FlyUpFilter.Process(0), ctx.Avatar.SoarFilter.Process(0); up != 0 || soar != 0 {
		t.Fatalf("flight filters kept history: up %v soar %v", up, soar)
	}
}

func TestArmsFreeSkipsArms(t *testing.T) {
	a := newAnimator(t, WithArmsFree(true))
	pose := a.Update(dt, grounded(mgl64.Vec3{}))

	lib := a.Context().Avatar.Library
	for _, j := range pose.Joints {
		if lib.IsArm(j.Name) {
			t.Fatalf("arm joint %s posed with arms free", j.Name)
		}
	}
	if _, ok := pose.Joint("Hips"); !ok {
		t.Fatal("hips missing")
	}
}

func TestReloadLibraryKeepsState(t *testing.T) {
	a := newAnimator(t)
	for k := 0; k < 10; k++ {
		a.Update(dt, grounded(forwards(float64(k)/10)))
	}
	a.Context().Avatar.SetStrideLength(config.SlotWalk, config.DirectionForwards, 0.95)

	if err := a.ReloadLibrary(assets.MustLoadLibrary()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	ctx := a.Context()
	if ctx.Chain.Live() || ctx.Actions.Count() != 0 {
		t.Fatal("transitions or actions survived reload")
	}
	if a.Slot() != config.SlotWalk {
		t.Fatalf("slot %v after reload", a.Slot())
	}
	if got := ctx.Avatar.StrideLength(config.SlotWalk, config.DirectionForwards); got != 0.95 {
		t.Fatalf("stride %v after reload", got)
	}
	if pose := a.Update(dt, grounded(forwards(1))); len(pose.Joints) == 0 {
		t.Fatal("empty pose after reload")
	}
}

func TestCalibrationPersists(t *testing.T) {
	items := memItems{}

	a := newAnimator(t, WithCalibrationStore(systems.NewCalibrationStore(items)))
	a.Context().Avatar.SetStrideLength(config.SlotWalk, config.DirectionBackwards, 0.66)
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b := newAnimator(t, WithCalibrationStore(systems.NewCalibrationStore(items)))
	avatar := b.Context().Avatar
	if got := avatar.StrideLength(config.SlotWalk, config.DirectionBackwards); got != 0.66 {
		t.Fatalf("backwards stride %v, want 0.66", got)
	}
	if got := avatar.StrideLength(config.SlotWalk, config.DirectionForwards); got != 0.9 {
		t.Fatalf("forwards stride %v, want the library's 0.9", got)
	}
}
