package components

import (
	"github.com/automoto/gaitkit/config"
	"github.com/yohamta/donburi"
)

type LocomotionData struct {
	Mode         config.LocomotionMode
	PreviousMode config.LocomotionMode
	Power        bool
}

var Locomotion = donburi.NewComponentType[LocomotionData]()
