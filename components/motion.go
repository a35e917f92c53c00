package components

import (
	"math"

	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// GroundSample is the result of the downward terrain probe.
type GroundSample struct {
	Distance float64
	Hit      bool
}

// PhaseWheel is the angular clock (degrees) that drives cyclic curves.
type PhaseWheel struct {
	Position float64
	Elapsed  float64

	increments []float64
	next       int
	filled     int
	Average    float64
}

// NewPhaseWheel returns a wheel that averages the last history increments.
func NewPhaseWheel(history int) PhaseWheel {
	if history < 1 {
		history = 1
	}
	return PhaseWheel{increments: make([]float64, history)}
}

// Advance turns the wheel by angle degrees.
func (w *PhaseWheel) Advance(angle float64) {
	if w.increments == nil {
		*w = NewPhaseWheel(config.Locomotion.WheelHistory)
	}
	w.Elapsed += angle
	w.Position = gamemath.WrapDegrees(w.Position + angle)

	w.increments[w.next] = angle
	w.next = (w.next + 1) % len(w.increments)
	if w.filled < len(w.increments) {
		w.filled++
	}
	sum := 0.0
	for i := 0; i < w.filled; i++ {
		sum += w.increments[i]
	}
	w.Average = sum / float64(w.filled)
}

// MotionData is the avatar's kinematic classification for the frame.
type MotionData struct {
	Velocity              mgl64.Vec3 // avatar-local
	Speed                 float64
	Acceleration          mgl64.Vec3
	AccelerationMagnitude float64
	DirectedAcceleration  float64
	Direction             config.Direction

	Moving           bool
	WalkingSpeed     bool
	FlyingSpeed      bool
	Accelerating     bool
	Decelerating     bool
	DeceleratingFast bool
	GoingUp          bool
	GoingDown        bool
	UnderGravity     bool
	OnGround         bool
	Landing          bool
	TakingOff        bool

	GroundHit        float64 // raw probe distance, +Inf on a miss
	DistanceToGround float64

	Wheel PhaseWheel

	LastVelocity         mgl64.Vec3
	LastSpeed            float64
	LastAcceleration     mgl64.Vec3
	LastDirection        config.Direction
	LastDistanceToGround float64
	primed               bool
}

var Motion = donburi.NewComponentType[MotionData]()

// NewMotionData returns kinematics at rest with an empty phase wheel.
func NewMotionData() MotionData {
	return MotionData{
		Wheel:                NewPhaseWheel(config.Locomotion.WheelHistory),
		GroundHit:            math.Inf(1),
		DistanceToGround:     math.Inf(1),
		LastDistanceToGround: math.Inf(1),
	}
}

// Refresh recomputes the kinematics for the frame. Acceleration is always
// the first difference of the local velocity; the first refresh after
// creation reports none.
func (m *MotionData) Refresh(dt float64, orientation mgl64.Quat, velocity mgl64.Vec3, ground GroundSample, hipsToFeet float64) {
	cfg := config.Locomotion

	if orientation.Len() == 0 {
		orientation = mgl64.QuatIdent()
	}
	m.Velocity = orientation.Normalize().Inverse().Rotate(velocity)
	m.Speed = m.Velocity.Len()

	if m.primed && dt > 0 {
		m.Acceleration = m.Velocity.Sub(m.LastVelocity).Mul(1 / dt)
	} else {
		m.Acceleration = mgl64.Vec3{}
	}
	m.AccelerationMagnitude = m.Acceleration.Len()

	m.Moving = m.Speed >= cfg.MoveThreshold
	m.WalkingSpeed = m.Moving && m.Speed < cfg.MaxWalkSpeed
	m.FlyingSpeed = m.Speed >= cfg.MaxWalkSpeed

	m.Direction = dominantDirection(m.Velocity, m.Moving)
	m.DirectedAcceleration = directedAcceleration(m.Acceleration, m.Direction)
	m.Accelerating = m.DirectedAcceleration < cfg.AccelerationThreshold
	m.Decelerating = m.DirectedAcceleration > cfg.DecelerationThreshold
	m.DeceleratingFast = m.DirectedAcceleration > cfg.FastDecelerationThreshold

	m.GoingUp = m.Velocity.Y() > cfg.MoveThreshold
	m.GoingDown = m.Velocity.Y() < -cfg.MoveThreshold

	if ground.Hit {
		m.GroundHit = ground.Distance
		m.DistanceToGround = ground.Distance - hipsToFeet
	} else {
		m.GroundHit = math.Inf(1)
		m.DistanceToGround = math.Inf(1)
	}
	m.OnGround = m.DistanceToGround < cfg.OnSurfaceThreshold
	m.UnderGravity = m.GroundHit < cfg.GravityThreshold
	m.Landing = m.UnderGravity && m.GoingDown
	m.TakingOff = m.UnderGravity && m.GoingUp
}

func dominantDirection(v mgl64.Vec3, moving bool) config.Direction {
	if !moving {
		return config.DirectionNone
	}
	ax, ay, az := math.Abs(v.X()), math.Abs(v.Y()), math.Abs(v.Z())
	switch {
	case ax >= ay && ax >= az:
		if v.X() < 0 {
			return config.DirectionLeft
		}
		return config.DirectionRight
	case ay >= az:
		if v.Y() > 0 {
			return config.DirectionUp
		}
		return config.DirectionDown
	case v.Z() < 0:
		return config.DirectionForwards
	default:
		return config.DirectionBackwards
	}
}

// directedAcceleration is negative while speeding up along the direction
// of travel and positive while slowing down.
func directedAcceleration(a mgl64.Vec3, dir config.Direction) float64 {
	switch dir {
	case config.DirectionForwards:
		return a.Z()
	case config.DirectionBackwards:
		return -a.Z()
	case config.DirectionLeft:
		return a.X()
	case config.DirectionRight:
		return -a.X()
	}
	return 0
}

// AdvancePhaseWheel turns the wheel by angle degrees.
func (m *MotionData) AdvancePhaseWheel(angle float64) {
	m.Wheel.Advance(angle)
}

// CommitHistory stores this frame's values for next frame's differences.
func (m *MotionData) CommitHistory() {
	m.LastVelocity = m.Velocity
	m.LastSpeed = m.Speed
	m.LastAcceleration = m.Acceleration
	m.LastDirection = m.Direction
	m.LastDistanceToGround = m.DistanceToGround
	m.primed = true
}
