// Package scenario scripts host motion for driving an animator without a
// physics engine: velocity profiles eased between keyframes, plus a simple
// body that follows motor commands and falls onto the ground.
package scenario

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// Segment eases the avatar-local velocity from From to To over Duration
// seconds. Local axes: x right, y up, -z forwards.
type Segment struct {
	Duration float64
	From, To mgl64.Vec3
	Ease     ease.TweenFunc
	YawRate  float64 // rad/s, positive turns left
}

// Scenario is a named list of segments played in order.
type Scenario struct {
	Name     string
	Segments []Segment
}

// Duration is the scripted length in seconds.
func (s Scenario) Duration() float64 {
	total := 0.0
	for _, seg := range s.Segments {
		total += seg.Duration
	}
	return total
}

func fwd(speed float64) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, -speed}
}

func hold(d float64, v mgl64.Vec3) Segment {
	return Segment{Duration: d, From: v, To: v, Ease: ease.Linear}
}

func ramp(d float64, from, to mgl64.Vec3, fn ease.TweenFunc) Segment {
	return Segment{Duration: d, From: from, To: to, Ease: fn}
}

var zero = mgl64.Vec3{}

var scenarios = map[string]Scenario{
	"rest": {
		Name:     "rest",
		Segments: []Segment{hold(3, zero)},
	},
	"walk": {
		Name: "walk",
		Segments: []Segment{
			hold(0.5, zero),
			ramp(1, zero, fwd(1.4), ease.InOutQuad),
			hold(4, fwd(1.4)),
			ramp(0.3, fwd(1.4), zero, ease.OutQuad),
			hold(2, zero),
		},
	},
	"stride": {
		Name: "stride",
		Segments: []Segment{
			hold(0.5, zero),
			ramp(1.5, zero, fwd(2.55), ease.InOutQuad),
			hold(6, fwd(2.55)),
			ramp(0.5, fwd(2.55), zero, ease.OutQuad),
			hold(2, zero),
		},
	},
	"stop": {
		Name: "stop",
		Segments: []Segment{
			ramp(0.8, zero, fwd(1.6), ease.OutQuad),
			hold(2, fwd(1.6)),
			ramp(0.15, fwd(1.6), zero, ease.Linear),
			hold(3, zero),
		},
	},
	"backwards": {
		Name: "backwards",
		Segments: []Segment{
			hold(0.5, zero),
			ramp(1, zero, fwd(-0.9), ease.InOutQuad),
			hold(3, fwd(-0.9)),
			ramp(0.3, fwd(-0.9), zero, ease.OutQuad),
			hold(2, zero),
		},
	},
	"sidestep": {
		Name: "sidestep",
		Segments: []Segment{
			hold(0.5, zero),
			ramp(0.5, zero, mgl64.Vec3{-0.8, 0, 0}, ease.OutQuad),
			hold(2, mgl64.Vec3{-0.8, 0, 0}),
			ramp(0.3, mgl64.Vec3{-0.8, 0, 0}, zero, ease.OutQuad),
			hold(0.5, zero),
			ramp(0.5, zero, mgl64.Vec3{0.8, 0, 0}, ease.OutQuad),
			hold(2, mgl64.Vec3{0.8, 0, 0}),
			ramp(0.3, mgl64.Vec3{0.8, 0, 0}, zero, ease.OutQuad),
			hold(1, zero),
		},
	},
	"turn": {
		Name: "turn",
		Segments: []Segment{
			ramp(1, zero, fwd(1.4), ease.InOutQuad),
			{Duration: 4, From: fwd(1.4), To: fwd(1.4), Ease: ease.Linear, YawRate: 1.2},
			{Duration: 4, From: fwd(1.4), To: fwd(1.4), Ease: ease.Linear, YawRate: -1.2},
			ramp(0.3, fwd(1.4), zero, ease.OutQuad),
			hold(1.5, zero),
		},
	},
	"jump": {
		Name: "jump",
		Segments: []Segment{
			ramp(1, zero, fwd(1.5), ease.InOutQuad),
			hold(1, fwd(1.5)),
			ramp(0.7, mgl64.Vec3{0, 3.4, -1.5}, mgl64.Vec3{0, -3.4, -1.5}, ease.Linear),
			hold(1.5, fwd(1.5)),
			ramp(0.3, fwd(1.5), zero, ease.OutQuad),
			hold(2, zero),
		},
	},
	"fly": {
		Name: "fly",
		Segments: []Segment{
			hold(0.5, zero),
			ramp(1, zero, mgl64.Vec3{0, 2, 0}, ease.OutQuad),
			ramp(2, mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 0.5, -8}, ease.InOutQuad),
			{Duration: 3, From: fwd(8), To: fwd(12), Ease: ease.InOutSine, YawRate: 0.8},
			ramp(2, fwd(12), mgl64.Vec3{0, -1.5, -2}, ease.OutCubic),
			hold(3, mgl64.Vec3{0, -1.5, -1.2}),
			ramp(0.5, fwd(1.2), zero, ease.OutQuad),
			hold(2, zero),
		},
	},
}

// Lookup returns the named scenario.
func Lookup(name string) (Scenario, bool) {
	s, ok := scenarios[name]
	return s, ok
}

// Names lists the built-in scenarios in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
