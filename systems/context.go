package systems

import (
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/tags"
	"github.com/yohamta/donburi"
)

// LocomotionContext gathers the components of one avatar so the stages of
// a frame can share them without reaching for globals.
type LocomotionContext struct {
	Entry      *donburi.Entry
	Frame      *components.FrameData
	Kinematics *components.KinematicsData
	Host       *components.HostData
	Motion     *components.MotionData
	Locomotion *components.LocomotionData
	Avatar     *components.AvatarData
	Motor      *components.MotorData
	Chain      *components.TransitionChainData
	Actions    *components.LiveActionsData
	Awareness  *components.AwarenessData
	Lean       *components.LeanData
	Pose       *components.PoseData
}

func NewLocomotionContext(e *donburi.Entry) *LocomotionContext {
	return &LocomotionContext{
		Entry:      e,
		Frame:      components.Frame.Get(e),
		Kinematics: components.Kinematics.Get(e),
		Host:       components.Host.Get(e),
		Motion:     components.Motion.Get(e),
		Locomotion: components.Locomotion.Get(e),
		Avatar:     components.Avatar.Get(e),
		Motor:      components.Motor.Get(e),
		Chain:      components.TransitionChain.Get(e),
		Actions:    components.LiveActions.Get(e),
		Awareness:  components.Awareness.Get(e),
		Lean:       components.Lean.Get(e),
		Pose:       components.Pose.Get(e),
	}
}

// Dt is the frame time in seconds.
func (ctx *LocomotionContext) Dt() float64 {
	return ctx.Frame.Delta
}

// eachPowered runs fn for every avatar whose animator is switched on.
func eachPowered(w donburi.World, fn func(ctx *LocomotionContext)) {
	tags.Avatar.Each(w, func(e *donburi.Entry) {
		if !components.Locomotion.Get(e).Power {
			return
		}
		fn(NewLocomotionContext(e))
	})
}
