package systems

import (
	"math"

	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/internal/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// UpdatePhaseWheel turns the avatar's wheel and the wheels of the
// animations still being blended out.
func UpdatePhaseWheel(w donburi.World) {
	eachPowered(w, turnWheels)
}

func turnWheels(ctx *LocomotionContext) {
	avatar := ctx.Avatar
	m := ctx.Motion
	dt := ctx.Dt()

	advance := wheelIncrement(avatar, m, dt)

	if top := ctx.Chain.Current(); top != nil {
		// Hold a walk that has reached its stop angle for the rest of the
		// transition.
		if top.Last == config.SlotWalk {
			tol := top.LastIncrement + config.Locomotion.StopAngleTolerance
			if top.LastWheelPos > top.StopAngle-tol && top.LastWheelPos < top.StopAngle+tol {
				top.LastIncrement = 0
			}
		}
		advancePrevious(ctx, ctx.Chain.Len()-1, dt)
	}

	m.AdvancePhaseWheel(advance)
}

// wheelIncrement is the wheel angle for this frame. Stride-driven cycles
// roll the stride around a wheel of circumference twice the stride, so
// one revolution is two steps.
func wheelIncrement(avatar *components.AvatarData, m *components.MotionData, dt float64) float64 {
	cur := avatar.Current
	if cur.Cyclic() {
		stride := avatar.StrideLength(cur, m.Direction)
		if stride <= 0 {
			return 0
		}
		radius := stride / math.Pi
		return mgl64.RadToDeg(dt * m.Speed / radius)
	}
	anim := avatar.CurrentAnimation()
	if anim == nil {
		return 0
	}
	return mgl64.RadToDeg(anim.Calibration.Frequency * dt)
}

// UpdateStrideLength measures the stride from the feet when the avatar is
// at full walking speed, the feet are at their widest and nothing is being
// blended.
func UpdateStrideLength(w donburi.World) {
	eachPowered(w, measureStride)
}

func measureStride(ctx *LocomotionContext) {
	avatar := ctx.Avatar
	m := ctx.Motion
	cur := avatar.Current
	if !cur.Cyclic() || ctx.Host.Joints == nil || ctx.Chain.Live() {
		return
	}
	if m.Speed/config.Locomotion.MaxWalkSpeed < config.Locomotion.AtMaxSpeedRatio {
		return
	}
	if cur == config.SlotWalk && m.Direction != config.DirectionForwards && m.Direction != config.DirectionBackwards {
		return
	}

	maxAt := components.StrideMaxAt(avatar.CurrentAnimation(), cur, m.Direction)
	if math.Abs(m.Wheel.Position-maxAt) >= config.Locomotion.StrideMaxTolerance {
		return
	}

	left, ok := ctx.Host.Joints.JointPosition("LeftFoot")
	if !ok {
		return
	}
	right, ok := ctx.Host.Joints.JointPosition("RightFoot")
	if !ok {
		return
	}
	if d := left.Sub(right).Len(); d > 0 {
		avatar.SetStrideLength(cur, m.Direction, d)
		log.Debug("stride measured",
			zap.Stringer("slot", cur),
			zap.Stringer("direction", m.Direction),
			zap.Float64("metres", d))
	}
}
