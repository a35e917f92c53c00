package systems

import (
	"math"

	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// UpdatePose renders the frame: hip offset, body lean, footsteps, joint
// rotations and any motor command raised along the way.
func UpdatePose(w donburi.World) {
	eachPowered(w, renderPose)
}

func renderPose(ctx *LocomotionContext) {
	pose := ctx.Pose
	pose.Reset()

	avatar := ctx.Avatar
	m := ctx.Motion
	anim := avatar.CurrentAnimation()
	phase := m.Wheel.Position
	dir := m.Direction
	top := ctx.Chain.Len() - 1

	leanPitch := leanPitch(ctx)
	leanRoll := leanRoll(ctx)
	pose.LeanPitch, pose.LeanRoll = leanPitch, leanRoll

	var hips mgl64.Vec3
	if top >= 0 {
		hips = blendTranslations(ctx, top, phase, dir)
	} else {
		hips = animations.EvaluateTranslation(anim, phase, dir)
	}
	for _, a := range ctx.Actions.Actions {
		hips = overlay(hips, animations.EvaluateTranslation(a.ReachPose, phase, dir), gamemath.SmoothStep(a.Level))
	}
	pose.HipsTranslation = hips

	limit := config.Locomotion.MaxSkeletonOffset
	offset := hips
	offset[2] += avatar.HipsToFeet * math.Sin(mgl64.DegToRad(leanPitch))
	offset[0] += avatar.HipsToFeet * math.Sin(mgl64.DegToRad(leanRoll))
	for k := range offset {
		offset[k] = gamemath.ClampMagnitude(offset[k], limit)
	}
	pose.SkeletonOffset = offset

	emitFootsteps(ctx)

	lib := avatar.Library
	for _, ref := range lib.Joints {
		if avatar.ArmsFree && lib.IsArm(ref.Name) {
			continue
		}
		if _, ok := anim.Joint(ref.Name); !ok {
			continue
		}

		var rot mgl64.Vec3
		if top >= 0 {
			rot = blendRotations(ctx, ref.Name, top, phase, dir)
		} else {
			rot, _ = animations.EvaluateRotation(ref.Name, anim, phase, dir)
		}
		for _, a := range ctx.Actions.Actions {
			if p, ok := animations.EvaluateRotation(ref.Name, a.ReachPose, phase, dir); ok {
				rot = overlay(rot, p, gamemath.SmoothStep(a.Level))
			}
		}
		if ref.Name == animations.Hips {
			rot[0] += leanPitch
			rot[2] += leanRoll
		}

		pose.Joints = append(pose.Joints, components.JointPose{
			Name:     ref.Name,
			Euler:    rot,
			Rotation: EulerToQuat(rot),
		})
	}

	if ctx.Motor.Changed {
		cmd := ctx.Motor.Command
		pose.Motor = &cmd
		ctx.Motor.Changed = false
	}
}

// EulerToQuat converts (pitch, yaw, roll) degrees to a rotation applied
// roll first, then pitch, then yaw.
func EulerToQuat(euler mgl64.Vec3) mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(euler[1]),
		mgl64.DegToRad(euler[0]),
		mgl64.DegToRad(euler[2]),
		mgl64.YXZ,
	)
}

// leanPitch tilts the body into forward travel.
func leanPitch(ctx *LocomotionContext) float64 {
	m := ctx.Motion
	progress := 0.0
	switch m.Direction {
	case config.DirectionLeft, config.DirectionRight, config.DirectionUp:
	default:
		progress = -m.Velocity.Z() / config.Locomotion.TopSpeed
	}
	return config.Lean.PitchMax * ctx.Lean.Pitch.Process(progress)
}

// leanRoll banks the body into turns, more so the faster it travels.
func leanRoll(ctx *LocomotionContext) float64 {
	m := ctx.Motion
	yawRate := mgl64.RadToDeg(ctx.Kinematics.AngularVelocity.Y())

	linear := 0.0
	if m.Speed > 0 {
		linear = math.Max(0, (math.Log(m.Speed/config.Locomotion.TopSpeed)+8)/8)
	}
	angular := math.Abs(yawRate) / config.Lean.AngularVelocityMax
	progress := gamemath.SmoothStep(math.Min(1, linear*angular))

	sign := -1.0
	if yawRate < 0.001 {
		sign = 1
	}
	if m.Direction == config.DirectionBackwards || m.Direction == config.DirectionLeft {
		sign = -sign
	}
	return config.Lean.RollMax * ctx.Lean.Roll.Process(sign*progress)
}

// emitFootsteps raises a footstep each time the wheel passes the next
// foot's down angle, alternating feet.
func emitFootsteps(ctx *LocomotionContext) {
	if !config.Footsteps.Enabled || !ctx.Motion.OnGround {
		return
	}
	avatar := ctx.Avatar
	anim, phase, ok := footstepSource(ctx)
	if !ok {
		return
	}
	left := anim.Calibration.FootDownLeft
	right := anim.Calibration.FootDownRight

	switch avatar.NextStep {
	case config.StepLeft:
		if left < phase {
			addFootstep(ctx, config.StepLeft)
		}
	case config.StepRight:
		if right < phase && left > phase {
			addFootstep(ctx, config.StepRight)
		}
	}
}

// footstepSource picks the cycle whose feet are on the ground: the walk or
// side-step being blended out, else the stride-driven cycle playing now.
func footstepSource(ctx *LocomotionContext) (*animations.Animation, float64, bool) {
	avatar := ctx.Avatar
	top := ctx.Chain.Current()
	if top != nil && top.Last.Cyclic() && top.LastAnimation != nil {
		return top.LastAnimation, top.LastWheelPos, true
	}
	if avatar.Current.Cyclic() {
		if anim := avatar.CurrentAnimation(); anim != nil {
			return anim, ctx.Motion.Wheel.Position, true
		}
	}
	return nil, 0, false
}

func addFootstep(ctx *LocomotionContext, side config.StepSide) {
	cfg := config.Footsteps
	speed := ctx.Motion.Speed
	volume := cfg.QuietVolume
	if speed > cfg.LoudSpeed {
		volume = cfg.LoudScale * speed / config.Locomotion.MaxWalkSpeed
	}
	feet := ctx.Kinematics.Position.Sub(mgl64.Vec3{0, ctx.Avatar.HipsToFeet, 0})
	ctx.Pose.Footsteps = append(ctx.Pose.Footsteps, components.FootstepEvent{
		Side:     side,
		Volume:   volume,
		Position: feet,
	})
	ctx.Avatar.NextStep = side.Other()
}
