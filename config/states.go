package config

import "fmt"

// LocomotionMode is the top-level state of the locomotion state machine.
type LocomotionMode int

const (
	Standing LocomotionMode = iota
	Walking
	SideStep
	Flying
)

func (m LocomotionMode) String() string {
	switch m {
	case Standing:
		return "STANDING"
	case Walking:
		return "WALKING"
	case SideStep:
		return "SIDE_STEP"
	case Flying:
		return "FLYING"
	}
	return fmt.Sprintf("LocomotionMode(%d)", int(m))
}

// Direction is the dominant axis of avatar-local travel.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
	DirectionForwards
	DirectionBackwards
)

var directionNames = map[Direction]string{
	DirectionNone:      "NONE",
	DirectionUp:        "UP",
	DirectionDown:      "DOWN",
	DirectionLeft:      "LEFT",
	DirectionRight:     "RIGHT",
	DirectionForwards:  "FORWARDS",
	DirectionBackwards: "BACKWARDS",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Vertical reports whether the direction is UP or DOWN.
func (d Direction) Vertical() bool {
	return d == DirectionUp || d == DirectionDown
}

// Lateral reports whether the direction is LEFT or RIGHT.
func (d Direction) Lateral() bool {
	return d == DirectionLeft || d == DirectionRight
}

// AnimationSlot identifies the logical role an animation plays for the avatar.
// Slots are compared by value; the animation bound to a slot comes from the
// active profile.
type AnimationSlot int

const (
	SlotNone AnimationSlot = iota
	SlotIdle
	SlotWalk
	SlotSideStepLeft
	SlotSideStepRight
	SlotFly
	SlotFlyUp
	SlotFlyDown
	SlotHover
	SlotRapidFly
	SlotSoarFly
	SlotFlyBlend
)

// SlotNames maps each slot to the key used in animation library files.
var SlotNames = map[AnimationSlot]string{
	SlotIdle:          "idle",
	SlotWalk:          "walk",
	SlotSideStepLeft:  "sidestep_left",
	SlotSideStepRight: "sidestep_right",
	SlotFly:           "fly",
	SlotFlyUp:         "fly_up",
	SlotFlyDown:       "fly_down",
	SlotHover:         "hover",
	SlotRapidFly:      "rapid_fly",
	SlotSoarFly:       "soar_fly",
	SlotFlyBlend:      "fly_blend",
}

func (s AnimationSlot) String() string {
	if name, ok := SlotNames[s]; ok {
		return name
	}
	return "none"
}

// ParseSlot returns the slot for a library key.
func ParseSlot(name string) (AnimationSlot, bool) {
	for slot, n := range SlotNames {
		if n == name {
			return slot, true
		}
	}
	return SlotNone, false
}

// Cyclic reports whether the slot's phase wheel is driven by stride length
// rather than by the animation's base frequency.
func (s AnimationSlot) Cyclic() bool {
	return s == SlotWalk || s == SlotSideStepLeft || s == SlotSideStepRight
}

// SideStepping reports whether the slot is one of the side-step cycles.
func (s AnimationSlot) SideStepping() bool {
	return s == SlotSideStepLeft || s == SlotSideStepRight
}

// StepSide is the foot expected to strike next.
type StepSide int

const (
	StepRight StepSide = iota
	StepLeft
)

func (s StepSide) String() string {
	if s == StepLeft {
		return "LEFT"
	}
	return "RIGHT"
}

// Other returns the opposite foot.
func (s StepSide) Other() StepSide {
	if s == StepLeft {
		return StepRight
	}
	return StepLeft
}
