package animations

import "errors"

var (
	// ErrUnknownAnimation is returned when a profile names an animation the
	// library does not contain.
	ErrUnknownAnimation = errors.New("unknown animation")

	// ErrUnknownSlot is returned for slot keys that are not animation slots.
	ErrUnknownSlot = errors.New("unknown animation slot")

	// ErrMissingSlot is returned when a profile leaves a required slot empty.
	ErrMissingSlot = errors.New("profile missing slot")

	// ErrNoProfile is returned when the requested profile does not exist.
	ErrNoProfile = errors.New("no such profile")

	// ErrUnknownJoint is returned for joints absent from the reference skeleton.
	ErrUnknownJoint = errors.New("unknown joint")

	// ErrUnknownReachPose is returned when an action names a missing reach pose.
	ErrUnknownReachPose = errors.New("unknown reach pose")

	// ErrUnknownAction is returned when a transition lists an undefined action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnknownFilter is returned for filter types the evaluator cannot build.
	ErrUnknownFilter = errors.New("unknown filter type")
)
