package animations

import (
	"github.com/automoto/gaitkit/shared/gamemath"
)

// Hips is the root joint; it is the only joint whose translation channels
// are evaluated.
const Hips = "Hips"

// Curve is one oscillating channel of a joint:
// amplitude * wave(phase) + offset.
type Curve struct {
	Amplitude float64
	Phase     float64
	Offset    float64

	// Wave is resolved from the asset's optional filter when the library is
	// loaded. Nil means sine.
	Wave gamemath.Wave
}

func (c *Curve) wave() gamemath.Wave {
	if c.Wave == nil {
		return gamemath.Sine
	}
	return c.Wave
}

func (c *Curve) zero() {
	c.Amplitude, c.Phase, c.Offset = 0, 0, 0
}

func (c *Curve) add(src Curve, weight float64) {
	c.Amplitude += weight * src.Amplitude
	c.Phase += weight * src.Phase
	c.Offset += weight * src.Offset
}

// LowPass is the optional trough clip and Butterworth stage of the hip bob.
type LowPass struct {
	Peak       float64
	Strength   float64
	Cutoff     float64
	SampleRate float64

	filter *gamemath.Butterworth
}

func newLowPass(peak, strength, cutoff, sampleRate float64) *LowPass {
	return &LowPass{
		Peak:       peak,
		Strength:   strength,
		Cutoff:     cutoff,
		SampleRate: sampleRate,
		filter:     gamemath.NewButterworth(cutoff, sampleRate),
	}
}

// Process clips the trough of a bob sample and low-pass filters it.
func (lp *LowPass) Process(v float64) float64 {
	return lp.filter.Process(gamemath.ClipTrough(v, lp.Peak, lp.Strength))
}

// Joint holds the curves of a single skeleton joint.
type Joint struct {
	Name string

	Pitch Curve
	Yaw   Curve
	Roll  Curve

	// Translation channels, read for Hips only.
	Sway   Curve
	Bob    Curve
	Thrust Curve

	BobLowPass *LowPass

	Modifiers ModifierSpec
}

func (j *Joint) clone() *Joint {
	c := *j
	if j.BobLowPass != nil {
		lp := j.BobLowPass
		c.BobLowPass = newLowPass(lp.Peak, lp.Strength, lp.Cutoff, lp.SampleRate)
	}
	return &c
}

// Calibration holds the per-animation constants that tie the curves to the
// avatar's gait.
type Calibration struct {
	// Frequency drives the phase wheel (rad/s) for slots that are not
	// stride-driven.
	Frequency float64

	StrideLength          float64
	StrideLengthForwards  float64
	StrideLengthBackwards float64

	StrideMaxAt          float64
	StrideMaxAtForwards  float64
	StrideMaxAtBackwards float64

	StartAngle          float64
	StartAngleForwards  float64
	StartAngleBackwards float64

	StopAngleForwards  float64
	StopAngleBackwards float64

	FootDownLeft  float64
	FootDownRight float64
}

// Animation is a named bundle of joint curves plus calibration. Animations
// loaded from a library are treated as read-only; only scratch copies made
// with Scratch are mutated.
type Animation struct {
	Name        string
	Calibration Calibration
	Joints      map[string]*Joint
}

// Joint returns the named joint, if the animation animates it.
func (a *Animation) Joint(name string) (*Joint, bool) {
	if a == nil {
		return nil, false
	}
	j, ok := a.Joints[name]
	return j, ok
}

// Clone returns a deep copy with fresh filter state.
func (a *Animation) Clone() *Animation {
	c := &Animation{
		Name:        a.Name,
		Calibration: a.Calibration,
		Joints:      make(map[string]*Joint, len(a.Joints)),
	}
	for name, j := range a.Joints {
		c.Joints[name] = j.clone()
	}
	return c
}

// Scratch returns a copy suitable as a blend target: same joints, modifiers
// and calibration, but plain sine curves and no bob filtering.
func (a *Animation) Scratch(name string) *Animation {
	c := a.Clone()
	c.Name = name
	for _, j := range c.Joints {
		j.Pitch.Wave, j.Yaw.Wave, j.Roll.Wave = nil, nil, nil
		j.Sway.Wave, j.Bob.Wave, j.Thrust.Wave = nil, nil, nil
		j.BobLowPass = nil
	}
	return c
}
