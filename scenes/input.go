package scenes

import (
	"math"

	cfg "github.com/automoto/gaitkit/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// inputState is the double-buffered action state of the viewer.
type inputState struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool

	// Left stick, deadzone applied. Up is negative.
	StickX, StickY float64
}

func (in *inputState) Pressed(a cfg.ActionID) bool {
	return in.Current[a]
}

func (in *inputState) JustPressed(a cfg.ActionID) bool {
	return in.Current[a] && !in.Previous[a]
}

// poll swaps the buffers and reads the keyboard and every standard gamepad.
func (in *inputState) poll() {
	in.Previous = in.Current
	in.Current = [cfg.ActionCount]bool{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	for actionID, binding := range Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				in.Current[actionID] = true
			}
		}

		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					in.Current[actionID] = true
				}
			}
		}
	}

	in.StickX, in.StickY = analogStick(gamepadIDs)
}

// analogStick reads the left stick of the first gamepad pushed past the
// deadzone.
func analogStick(gamepads []ebiten.GamepadID) (x, y float64) {
	deadzone := cfg.Input.AnalogDeadzone

	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}

		horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		vertical := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)
		x, y = applyDeadzone(horizontal, deadzone), applyDeadzone(vertical, deadzone)
		if x != 0 || y != 0 {
			return x, y
		}
	}
	return 0, 0
}

// applyDeadzone zeroes v inside the deadzone and rescales the rest to 0..1.
func applyDeadzone(v, deadzone float64) float64 {
	if math.Abs(v) <= deadzone {
		return 0
	}
	return math.Copysign((math.Abs(v)-deadzone)/(1-deadzone), v)
}
