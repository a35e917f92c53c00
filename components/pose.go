package components

import (
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// JointPose is one evaluated joint. Euler is (pitch, yaw, roll) in degrees.
type JointPose struct {
	Name     string
	Euler    mgl64.Vec3
	Rotation mgl64.Quat
}

type FootstepEvent struct {
	Side     config.StepSide
	Volume   float64
	Position mgl64.Vec3
}

// PoseData is the animator's output for one frame.
type PoseData struct {
	Joints          []JointPose
	HipsTranslation mgl64.Vec3
	SkeletonOffset  mgl64.Vec3
	LeanPitch       float64
	LeanRoll        float64
	Motor           *MotorCommand
	Footsteps       []FootstepEvent
}

var Pose = donburi.NewComponentType[PoseData]()

// Reset clears the frame's output, keeping allocated storage.
func (p *PoseData) Reset() {
	p.Joints = p.Joints[:0]
	p.Footsteps = p.Footsteps[:0]
	p.HipsTranslation = mgl64.Vec3{}
	p.SkeletonOffset = mgl64.Vec3{}
	p.LeanPitch, p.LeanRoll = 0, 0
	p.Motor = nil
}

// Joint returns the named joint of the pose.
func (p *PoseData) Joint(name string) (JointPose, bool) {
	for _, j := range p.Joints {
		if j.Name == name {
			return j, true
		}
	}
	return JointPose{}, false
}

// LeanData holds the body-lean smoothing filters.
type LeanData struct {
	Pitch *gamemath.Butterworth
	Roll  *gamemath.Butterworth
}

var Lean = donburi.NewComponentType[LeanData]()

// Reset returns both lean filters to rest.
func (l *LeanData) Reset() {
	l.Pitch.Reset()
	l.Roll.Reset()
}

func NewLeanData() LeanData {
	return LeanData{
		Pitch: gamemath.NewButterworth(config.Lean.FilterCutoff, config.Lean.SampleRate),
		Roll:  gamemath.NewButterworth(config.Lean.FilterCutoff, config.Lean.SampleRate),
	}
}
