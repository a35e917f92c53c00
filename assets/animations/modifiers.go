package animations

import "github.com/automoto/gaitkit/config"

// ModifierSpec is the optional per-joint modifier data of an asset. Nil
// fields keep the identity value.
type ModifierSpec struct {
	PitchSign       *float64 `yaml:"pitch_sign"`
	YawSign         *float64 `yaml:"yaw_sign"`
	RollSign        *float64 `yaml:"roll_sign"`
	PitchOffsetSign *float64 `yaml:"pitch_offset_sign"`
	YawOffsetSign   *float64 `yaml:"yaw_offset_sign"`
	RollOffsetSign  *float64 `yaml:"roll_offset_sign"`

	PitchFrequencyMultiplier  *float64 `yaml:"pitch_frequency_multiplier"`
	YawFrequencyMultiplier    *float64 `yaml:"yaw_frequency_multiplier"`
	RollFrequencyMultiplier   *float64 `yaml:"roll_frequency_multiplier"`
	SwayFrequencyMultiplier   *float64 `yaml:"sway_frequency_multiplier"`
	BobFrequencyMultiplier    *float64 `yaml:"bob_frequency_multiplier"`
	ThrustFrequencyMultiplier *float64 `yaml:"thrust_frequency_multiplier"`

	// Applied only while travelling backwards.
	PitchReverseInvert   *float64 `yaml:"pitch_reverse_invert"`
	PitchReverseModifier *float64 `yaml:"pitch_reverse_modifier"`
	YawReverseModifier   *float64 `yaml:"yaw_reverse_modifier"`
	RollReverseModifier  *float64 `yaml:"roll_reverse_modifier"`
	BobReverseModifier   *float64 `yaml:"bob_reverse_modifier"`
}

// JointModifiers are the resolved sign, frequency and phase adjustments of a
// joint for one travel direction.
type JointModifiers struct {
	PitchSign, YawSign, RollSign                   float64
	PitchOffsetSign, YawOffsetSign, RollOffsetSign float64

	PitchFrequency, YawFrequency, RollFrequency float64
	SwayFrequency, BobFrequency, ThrustFrequency float64

	PitchReverseInvert float64
	PitchReverse       float64
	YawReverse         float64
	RollReverse        float64
	BobReverse         float64
}

// IdentityModifiers leaves every curve untouched.
var IdentityModifiers = JointModifiers{
	PitchSign: 1, YawSign: 1, RollSign: 1,
	PitchOffsetSign: 1, YawOffsetSign: 1, RollOffsetSign: 1,
	PitchFrequency: 1, YawFrequency: 1, RollFrequency: 1,
	SwayFrequency: 1, BobFrequency: 1, ThrustFrequency: 1,
	PitchReverseInvert: 1,
}

// Resolve returns the modifiers for the given direction.
func (s ModifierSpec) Resolve(dir config.Direction) JointModifiers {
	m := IdentityModifiers
	override(&m.PitchSign, s.PitchSign)
	override(&m.YawSign, s.YawSign)
	override(&m.RollSign, s.RollSign)
	override(&m.PitchOffsetSign, s.PitchOffsetSign)
	override(&m.YawOffsetSign, s.YawOffsetSign)
	override(&m.RollOffsetSign, s.RollOffsetSign)

	override(&m.PitchFrequency, s.PitchFrequencyMultiplier)
	override(&m.YawFrequency, s.YawFrequencyMultiplier)
	override(&m.RollFrequency, s.RollFrequencyMultiplier)
	override(&m.SwayFrequency, s.SwayFrequencyMultiplier)
	override(&m.BobFrequency, s.BobFrequencyMultiplier)
	override(&m.ThrustFrequency, s.ThrustFrequencyMultiplier)

	if dir == config.DirectionBackwards {
		override(&m.PitchReverseInvert, s.PitchReverseInvert)
		override(&m.PitchReverse, s.PitchReverseModifier)
		override(&m.YawReverse, s.YawReverseModifier)
		override(&m.RollReverse, s.RollReverseModifier)
		override(&m.BobReverse, s.BobReverseModifier)
	}
	return m
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
