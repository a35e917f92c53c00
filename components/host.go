package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Probe answers ray queries against the host's world geometry. A miss
// reports hit=false and is treated as infinitely far.
type Probe interface {
	Raycast(origin, direction mgl64.Vec3, maxDistance float64) (distance float64, hit bool)
}

// JointLocator reports world-space joint positions of the rendered skeleton.
type JointLocator interface {
	JointPosition(name string) (mgl64.Vec3, bool)
}

// KinematicsData is the avatar state the host feeds in each frame. Velocity
// is in world space (m/s); angular quantities are in radians.
type KinematicsData struct {
	Position            mgl64.Vec3
	Orientation         mgl64.Quat
	Velocity            mgl64.Vec3
	AngularVelocity     mgl64.Vec3
	AngularAcceleration mgl64.Vec3
}

var Kinematics = donburi.NewComponentType[KinematicsData]()

// HostData holds the optional host services. Either may be nil.
type HostData struct {
	Probe  Probe
	Joints JointLocator
}

var Host = donburi.NewComponentType[HostData]()
