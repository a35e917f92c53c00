package config

// ActionID represents a logical viewer action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionForward
	ActionBack
	ActionStepLeft
	ActionStepRight
	ActionTurnLeft
	ActionTurnRight
	ActionRise
	ActionSink
	ActionRun
	ActionPause
	ActionPower
	ActionArmsFree
	ActionNextScenario
	ActionReset
	ActionDebug
	ActionCount // Must be last - used for array sizing
)

// InputConfig holds the device-independent input settings
type InputConfig struct {
	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		AnalogDeadzone: 0.25,
	}
}
