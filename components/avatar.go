package components

import (
	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/yohamta/donburi"
)

// StrideKey identifies a measured stride. Side-steps are measured without
// regard to direction.
type StrideKey struct {
	Slot      config.AnimationSlot
	Backwards bool
}

func strideKey(slot config.AnimationSlot, dir config.Direction) StrideKey {
	return StrideKey{Slot: slot, Backwards: slot == config.SlotWalk && dir == config.DirectionBackwards}
}

type AvatarData struct {
	Library  *animations.Library
	Profile  *animations.Profile
	FlyBlend *animations.Animation
	Current  config.AnimationSlot

	HipsToFeet     float64
	HipsCalibrated bool
	ArmsFree       bool
	NextStep       config.StepSide

	Strides     map[StrideKey]float64
	StrideDirty bool

	FlyUpFilter   *gamemath.MovingAverage
	FlyDownFilter *gamemath.MovingAverage
	SoarFilter    *gamemath.MovingAverage
}

var Avatar = donburi.NewComponentType[AvatarData]()

// NewAvatarData binds the avatar to a profile of the library.
func NewAvatarData(lib *animations.Library, profile string) (AvatarData, error) {
	p, err := lib.Profile(profile)
	if err != nil {
		return AvatarData{}, err
	}
	a := AvatarData{
		Library:       lib,
		Current:       config.SlotIdle,
		HipsToFeet:    config.Locomotion.HipsToFeet,
		ArmsFree:      config.Locomotion.ArmsFree,
		NextStep:      config.StepRight,
		Strides:       make(map[StrideKey]float64),
		FlyUpFilter:   gamemath.NewMovingAverage(config.Fly.UpDownSmoothing),
		FlyDownFilter: gamemath.NewMovingAverage(config.Fly.UpDownSmoothing),
		SoarFilter:    gamemath.NewMovingAverage(config.Fly.SoaringSmoothing),
	}
	a.Bind(lib, p)
	return a, nil
}

// Bind swaps the animation set. Measured strides survive the swap.
func (a *AvatarData) Bind(lib *animations.Library, p *animations.Profile) {
	a.Library = lib
	a.Profile = p
	if fly := p.Animation(config.SlotFly); fly != nil {
		a.FlyBlend = fly.Scratch(config.SlotFlyBlend.String())
	}
}

// ResetFlightFilters clears the smoothing of the flight blend weights.
func (a *AvatarData) ResetFlightFilters() {
	a.FlyUpFilter.Reset()
	a.FlyDownFilter.Reset()
	a.SoarFilter.Reset()
}

// Animation returns the animation playing in the slot.
func (a *AvatarData) Animation(slot config.AnimationSlot) *animations.Animation {
	if slot == config.SlotFlyBlend {
		return a.FlyBlend
	}
	if a.Profile == nil {
		return nil
	}
	return a.Profile.Animation(slot)
}

// CurrentAnimation returns the animation of the current slot.
func (a *AvatarData) CurrentAnimation() *animations.Animation {
	return a.Animation(a.Current)
}

// StrideLength returns the measured stride for the slot, falling back to
// the animation's calibration.
func (a *AvatarData) StrideLength(slot config.AnimationSlot, dir config.Direction) float64 {
	if v, ok := a.Strides[strideKey(slot, dir)]; ok {
		return v
	}
	anim := a.Animation(slot)
	if anim == nil {
		return 0
	}
	c := anim.Calibration
	if slot == config.SlotWalk {
		if dir == config.DirectionBackwards {
			return c.StrideLengthBackwards
		}
		return c.StrideLengthForwards
	}
	return c.StrideLength
}

// SetStrideLength records a measured stride.
func (a *AvatarData) SetStrideLength(slot config.AnimationSlot, dir config.Direction, length float64) {
	if a.Strides == nil {
		a.Strides = make(map[StrideKey]float64)
	}
	key := strideKey(slot, dir)
	if a.Strides[key] == length {
		return
	}
	a.Strides[key] = length
	a.StrideDirty = true
}

// StrideMaxAt returns the wheel angle at which the feet are furthest apart.
func StrideMaxAt(anim *animations.Animation, slot config.AnimationSlot, dir config.Direction) float64 {
	if anim == nil {
		return 0
	}
	c := anim.Calibration
	if slot == config.SlotWalk {
		if dir == config.DirectionBackwards {
			return c.StrideMaxAtBackwards
		}
		return c.StrideMaxAtForwards
	}
	return c.StrideMaxAt
}

// StartAngle returns the wheel angle a cycle starts from.
func StartAngle(anim *animations.Animation, slot config.AnimationSlot, dir config.Direction) float64 {
	if anim == nil {
		return 0
	}
	c := anim.Calibration
	if slot == config.SlotWalk {
		if dir == config.DirectionBackwards {
			return c.StartAngleBackwards
		}
		return c.StartAngleForwards
	}
	return c.StartAngle
}

// StopAngle returns the wheel angle a walk comes to rest at.
func StopAngle(anim *animations.Animation, dir config.Direction) float64 {
	if anim == nil {
		return 0
	}
	if dir == config.DirectionBackwards {
		return anim.Calibration.StopAngleBackwards
	}
	return anim.Calibration.StopAngleForwards
}
