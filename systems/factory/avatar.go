package factory

import (
	"github.com/automoto/gaitkit/archetypes"
	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/yohamta/donburi"
)

// CreateAvatar spawns a powered avatar standing idle, bound to the named
// profile of the library.
func CreateAvatar(w donburi.World, lib *animations.Library, profile string, host components.HostData) (*donburi.Entry, error) {
	avatarData, err := components.NewAvatarData(lib, profile)
	if err != nil {
		return nil, err
	}

	avatar := archetypes.Avatar.Spawn(w)
	components.Avatar.SetValue(avatar, avatarData)
	components.Host.SetValue(avatar, host)
	components.Motion.SetValue(avatar, components.NewMotionData())
	components.Lean.SetValue(avatar, components.NewLeanData())
	components.Locomotion.SetValue(avatar, components.LocomotionData{
		Mode:         config.Standing,
		PreviousMode: config.Standing,
		Power:        true,
	})
	components.Motor.SetValue(avatar, components.MotorData{
		Command: components.MotorCommand{Timescale: config.Motor.VeryLongTime},
	})

	return avatar, nil
}
