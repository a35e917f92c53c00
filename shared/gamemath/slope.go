package gamemath

import (
	"math"

	"github.com/solarlune/resolv"
)

// SlopeSurfaceY returns the ramp's surface height (map pixels, y down) at
// map x. upRightTag and upLeftTag are the resolv tags naming the slope
// direction; untagged ramps are flat at their top edge.
func SlopeSurfaceY(x float64, ramp *resolv.Object, upRightTag, upLeftTag string) float64 {
	relativeX := math.Max(0, math.Min(x-ramp.X, ramp.W))
	slope := Ratio(relativeX, ramp.W)

	if ramp.HasTags(upRightTag) {
		return ramp.Y + ramp.H*(1-slope)
	}
	if ramp.HasTags(upLeftTag) {
		return ramp.Y + ramp.H*slope
	}
	return ramp.Y
}
