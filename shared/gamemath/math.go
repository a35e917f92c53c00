// Package gamemath holds the pure signal and angle helpers shared by the
// animation evaluator and the locomotion systems. Nothing here keeps state
// except the filters, which are owned by whoever creates them.
package gamemath

import "math"

// ClampMagnitude clamps a value to [-max, max].
func ClampMagnitude(v, max float64) float64 {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}

// WrapDegrees maps an angle onto [0, 360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Round3 rounds to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Ratio returns num/den, or 0 when den is zero or either side is not finite.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Lerp interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
