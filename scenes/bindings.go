package scenes

import (
	cfg "github.com/automoto/gaitkit/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// InputBinding represents a single key or button binding for an action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Bindings maps every viewer action to its keys and gamepad buttons
var Bindings map[cfg.ActionID]InputBinding

func init() {
	Bindings = map[cfg.ActionID]InputBinding{
		cfg.ActionForward: {
			Keys: []ebiten.Key{ebiten.KeyUp, ebiten.KeyW},
			// D-pad Up (analog stick handled separately)
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonLeftTop,
			},
		},
		cfg.ActionBack: {
			Keys: []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonLeftBottom,
			},
		},
		cfg.ActionStepLeft: {
			Keys: []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonLeftLeft,
			},
		},
		cfg.ActionStepRight: {
			Keys: []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonLeftRight,
			},
		},
		cfg.ActionTurnLeft: {
			Keys: []ebiten.Key{ebiten.KeyQ},
			// Left bumper
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonFrontTopLeft,
			},
		},
		cfg.ActionTurnRight: {
			Keys: []ebiten.Key{ebiten.KeyE},
			// Right bumper
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonFrontTopRight,
			},
		},
		cfg.ActionRise: {
			Keys: []ebiten.Key{ebiten.KeySpace},
			// A / Cross button
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonRightBottom,
			},
		},
		cfg.ActionSink: {
			Keys: []ebiten.Key{ebiten.KeyC},
			// B / Circle button
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonRightRight,
			},
		},
		cfg.ActionRun: {
			Keys: []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
			// X / Square button
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonRightLeft,
			},
		},
		cfg.ActionPause: {
			Keys: []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
			// Start / Options button
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonCenterRight,
			},
		},
		cfg.ActionPower: {
			Keys: []ebiten.Key{ebiten.KeyO},
		},
		cfg.ActionArmsFree: {
			Keys: []ebiten.Key{ebiten.KeyF},
			// Y / Triangle button
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonRightTop,
			},
		},
		cfg.ActionNextScenario: {
			Keys: []ebiten.Key{ebiten.KeyTab, ebiten.KeyN},
			// Back / Share button
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonCenterLeft,
			},
		},
		cfg.ActionReset: {
			Keys: []ebiten.Key{ebiten.KeyR},
		},
		cfg.ActionDebug: {
			Keys: []ebiten.Key{ebiten.KeyF3},
		},
	}
}
