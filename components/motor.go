package components

import (
	"github.com/automoto/gaitkit/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// MotorCommand is the avatar-local drive the host applies to the body.
type MotorCommand struct {
	Velocity  mgl64.Vec3
	Timescale float64
}

// MotorData carries the continued-motion drive. Changed marks a command
// that has not yet been handed to the host.
type MotorData struct {
	Command  MotorCommand
	Motoring bool
	Braking  bool
	Changed  bool
}

var Motor = donburi.NewComponentType[MotorData]()

// StartMotoring drives the avatar at walking speed along dir.
func (m *MotorData) StartMotoring(dir config.Direction) {
	m.Motoring = true
	m.Braking = false
	m.SetSpeed(config.Locomotion.MaxWalkSpeed, config.Motor.ShortTime, dir)
}

// SetSpeed sets the forward drive. Avatar-local forwards is -z.
func (m *MotorData) SetSpeed(speed, timescale float64, dir config.Direction) {
	if dir == config.DirectionForwards {
		speed = -speed
	}
	m.Command = MotorCommand{Velocity: mgl64.Vec3{0, 0, speed}, Timescale: timescale}
	m.Changed = true
}

// ApplyBrakes stops the drive almost immediately.
func (m *MotorData) ApplyBrakes() {
	m.Command = MotorCommand{Timescale: config.Motor.VeryShortTime}
	m.Motoring = false
	m.Braking = true
	m.Changed = true
}

// StopBraking releases the brake by making the drive ineffective.
func (m *MotorData) StopBraking() {
	m.Command = MotorCommand{Timescale: config.Motor.VeryLongTime}
	m.Braking = false
	m.Changed = true
}
