package scenario

import (
	"math"

	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
)

const gravity = 9.81

var down = mgl64.Vec3{0, -1, 0}

// FlatGround is a ground plane at Height that answers straight-down rays.
type FlatGround struct {
	Height float64
}

func (g FlatGround) Raycast(origin, direction mgl64.Vec3, maxDistance float64) (float64, bool) {
	if direction.Y() >= 0 || math.Abs(direction.X())+math.Abs(direction.Z()) > 1e-9 {
		return 0, false
	}
	d := (origin.Y() - g.Height) / -direction.Y()
	if d < 0 || d > maxDistance {
		return 0, false
	}
	return d, true
}

// Runner plays a scenario as host kinematics. It integrates position,
// rests the hips at hipsHeight above whatever the probe reports below,
// and lets a motor command take over forward travel while it is in force.
type Runner struct {
	scenario Scenario
	index    int
	tweens   [3]*gween.Tween
	elapsed  float64

	probe      components.Probe
	hipsHeight float64

	position   mgl64.Vec3
	yaw        float64
	yawRate    float64
	local      mgl64.Vec3
	fall       float64
	angularVel mgl64.Vec3

	motor components.MotorCommand

	driving bool
	drive   mgl64.Vec3
}

// NewRunner places the hips at start. A nil probe means flat ground at y=0.
func NewRunner(s Scenario, probe components.Probe, start mgl64.Vec3, hipsHeight float64) *Runner {
	if probe == nil {
		probe = FlatGround{}
	}
	r := &Runner{
		scenario:   s,
		probe:      probe,
		hipsHeight: hipsHeight,
		position:   start,
		motor:      components.MotorCommand{Timescale: config.Motor.VeryLongTime},
	}
	r.startSegment(0)
	return r
}

func (r *Runner) startSegment(i int) {
	r.index = i
	if i >= len(r.scenario.Segments) {
		return
	}
	seg := r.scenario.Segments[i]
	for k := 0; k < 3; k++ {
		r.tweens[k] = gween.New(float32(seg.From[k]), float32(seg.To[k]), float32(seg.Duration), seg.Ease)
	}
	r.yawRate = seg.YawRate
}

// Done reports whether every segment has played.
func (r *Runner) Done() bool {
	return r.index >= len(r.scenario.Segments)
}

func (r *Runner) Elapsed() float64 {
	return r.elapsed
}

// Segment is the index of the segment playing.
func (r *Runner) Segment() int {
	return r.index
}

// Drive replaces the script with a commanded body-local velocity and yaw
// rate, held until the next call. A zero vertical velocity lets the body
// fall.
func (r *Runner) Drive(local mgl64.Vec3, yawRate float64) {
	r.driving = true
	r.drive = local
	r.yawRate = yawRate
}

// Position is where the hips are.
func (r *Runner) Position() mgl64.Vec3 {
	return r.position
}

// ApplyMotor hands the runner the animator's latest motor command.
func (r *Runner) ApplyMotor(cmd *components.MotorCommand) {
	if cmd != nil {
		r.motor = *cmd
	}
}

func (r *Runner) motoring() bool {
	return r.motor.Timescale < config.Motor.VeryLongTime
}

// scripted samples the segment tweens, moving on to the next segment when
// the current one finishes.
func (r *Runner) scripted(dt float64) mgl64.Vec3 {
	if r.Done() {
		r.yawRate = 0
		return mgl64.Vec3{}
	}
	var v mgl64.Vec3
	finished := true
	for k := 0; k < 3; k++ {
		cur, done := r.tweens[k].Update(float32(dt))
		v[k] = float64(cur)
		finished = finished && done
	}
	if finished {
		r.startSegment(r.index + 1)
	}
	return v
}

// Step advances the body by dt and returns the kinematics for the frame.
func (r *Runner) Step(dt float64) components.KinematicsData {
	r.elapsed += dt
	want := r.drive
	if !r.driving {
		want = r.scripted(dt)
	}

	if r.motoring() {
		k := 1.0
		if r.motor.Timescale > dt {
			k = dt / r.motor.Timescale
		}
		target := r.motor.Velocity
		r.local = mgl64.Vec3{
			gamemath.Lerp(r.local.X(), target.X(), k),
			want.Y(),
			gamemath.Lerp(r.local.Z(), target.Z(), k),
		}
	} else {
		r.local = want
	}

	r.yaw += r.yawRate * dt
	orientation := mgl64.QuatRotate(r.yaw, mgl64.Vec3{0, 1, 0})
	velocity := orientation.Rotate(r.local)

	floor, grounded := r.floor()
	if r.local.Y() == 0 && r.position.Y() > floor+1e-6 {
		r.fall -= gravity * dt
	} else {
		r.fall = 0
	}
	velocity[1] += r.fall

	r.position = r.position.Add(velocity.Mul(dt))
	if grounded && r.position.Y() < floor {
		r.position[1] = floor
		if velocity.Y() < 0 {
			velocity[1] = 0
		}
		r.fall = 0
	}

	angular := mgl64.Vec3{0, r.yawRate, 0}
	var angularAcc mgl64.Vec3
	if dt > 0 {
		angularAcc = angular.Sub(r.angularVel).Mul(1 / dt)
	}
	r.angularVel = angular

	return components.KinematicsData{
		Position:            r.position,
		Orientation:         orientation,
		Velocity:            velocity,
		AngularVelocity:     angular,
		AngularAcceleration: angularAcc,
	}
}

// floor is the hips height resting on the ground below, if there is any.
func (r *Runner) floor() (float64, bool) {
	d, hit := r.probe.Raycast(r.position, down, config.Awareness.GroundProbeDistance)
	if !hit {
		return 0, false
	}
	return r.position.Y() - d + r.hipsHeight, true
}
