package systems

import (
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/internal/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

var down = mgl64.Vec3{0, -1, 0}

// UpdateCalibration measures the hips-to-feet height once, on the first
// powered frame that has a joint locator.
func UpdateCalibration(w donburi.World) {
	eachPowered(w, calibrateHipsToFeet)
}

func calibrateHipsToFeet(ctx *LocomotionContext) {
	avatar := ctx.Avatar
	if avatar.HipsCalibrated || ctx.Host.Joints == nil {
		return
	}
	avatar.HipsCalibrated = true

	hips, ok := ctx.Host.Joints.JointPosition("Hips")
	if !ok {
		return
	}
	toe, ok := ctx.Host.Joints.JointPosition("RightToeBase")
	if !ok {
		return
	}
	if h := hips.Y() - toe.Y(); h > 0 {
		avatar.HipsToFeet = h
		log.Debug("hips to feet calibrated", zap.Float64("metres", h))
	}
}

// UpdateMotion classifies the avatar's motion for the frame.
func UpdateMotion(w donburi.World) {
	eachPowered(w, refreshMotion)
}

func refreshMotion(ctx *LocomotionContext) {
	if ctx.Motor.Braking {
		ctx.Motor.StopBraking()
	}
	kin := ctx.Kinematics
	ctx.Motion.Refresh(ctx.Dt(), kin.Orientation, kin.Velocity, probeGround(ctx), ctx.Avatar.HipsToFeet)
}

func probeGround(ctx *LocomotionContext) components.GroundSample {
	if ctx.Host.Probe == nil {
		return components.GroundSample{}
	}
	d, hit := ctx.Host.Probe.Raycast(ctx.Kinematics.Position, down, config.Awareness.GroundProbeDistance)
	return components.GroundSample{Distance: d, Hit: hit}
}

// UpdateHistory commits the frame so the next one can difference against it.
func UpdateHistory(w donburi.World) {
	eachPowered(w, func(ctx *LocomotionContext) {
		ctx.Motion.CommitHistory()
		ctx.Frame.Elapsed += ctx.Dt()
		ctx.Frame.Count++
	})
}
