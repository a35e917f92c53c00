package gamemath

import "github.com/go-gl/mathgl/mgl64"

var (
	bezierStart = mgl64.Vec2{0, 0}
	bezierEnd   = mgl64.Vec2{1, 1}
)

// BezierEase maps t in [0,1] through the cubic Bezier easing curve running
// from (0,0) to (1,1) with control points lower and upper. The curve is
// evaluated at the parameter whose x coordinate equals t, so control points
// with x in [0,1] give a monotonic easing.
func BezierEase(t float64, lower, upper mgl64.Vec2) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	lo, hi := 0.0, 1.0
	s := t
	for i := 0; i < 32; i++ {
		x := mgl64.CubicBezierCurve2D(s, bezierStart, lower, upper, bezierEnd).X()
		if mgl64.FloatEqualThreshold(x, t, 1e-9) {
			break
		}
		if x < t {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return mgl64.CubicBezierCurve2D(s, bezierStart, lower, upper, bezierEnd).Y()
}

// SmoothStep is the ease-in-out curve used to shape action strengths and
// the short-step attenuation.
func SmoothStep(t float64) float64 {
	return BezierEase(t, mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1})
}
