package animations

import (
	"github.com/automoto/gaitkit/config"
	"github.com/go-gl/mathgl/mgl64"
)

func (c *Curve) at(phaseDeg float64) float64 {
	return c.Amplitude * c.wave()(mgl64.DegToRad(phaseDeg))
}

// EvaluateTranslation returns the hip translation (x sway, y bob, z thrust)
// of the animation at the given phase. Animations without a Hips joint
// contribute nothing.
func EvaluateTranslation(a *Animation, phaseDeg float64, dir config.Direction) mgl64.Vec3 {
	hips, ok := a.Joint(Hips)
	if !ok {
		return mgl64.Vec3{}
	}
	m := hips.Modifiers.Resolve(dir)

	sway := hips.Sway.at(phaseDeg*m.SwayFrequency+hips.Sway.Phase) + hips.Sway.Offset

	bob := hips.Bob.at(phaseDeg*m.BobFrequency+hips.Bob.Phase+m.BobReverse) + hips.Bob.Offset
	if hips.BobLowPass != nil && hips.Bob.Wave == nil {
		bob = hips.BobLowPass.Process(bob)
	}

	thrust := hips.Thrust.at(phaseDeg*m.ThrustFrequency+hips.Thrust.Phase) + hips.Thrust.Offset

	return mgl64.Vec3{sway, bob, thrust}
}

// EvaluateRotation returns the joint's Euler rotation in degrees (x pitch,
// y yaw, z roll) at the given phase. ok is false when the animation does not
// animate the joint.
func EvaluateRotation(joint string, a *Animation, phaseDeg float64, dir config.Direction) (rot mgl64.Vec3, ok bool) {
	j, ok := a.Joint(joint)
	if !ok {
		return mgl64.Vec3{}, false
	}
	m := j.Modifiers.Resolve(dir)

	pitch := m.PitchReverseInvert * (m.PitchSign*j.Pitch.at(phaseDeg*m.PitchFrequency+j.Pitch.Phase+m.PitchReverse) +
		m.PitchOffsetSign*j.Pitch.Offset)
	yaw := m.YawSign*j.Yaw.at(phaseDeg*m.YawFrequency+j.Yaw.Phase+m.YawReverse) +
		m.YawOffsetSign*j.Yaw.Offset
	roll := m.RollSign*j.Roll.at(phaseDeg*m.RollFrequency+j.Roll.Phase+m.RollReverse) +
		m.RollOffsetSign*j.Roll.Offset

	return mgl64.Vec3{pitch, yaw, roll}, true
}

// ZeroAnimation clears the blendable parameters of a scratch animation:
// rotation curves of every joint plus the hip translation curves.
func ZeroAnimation(target *Animation) {
	for name, j := range target.Joints {
		j.Pitch.zero()
		j.Yaw.zero()
		j.Roll.zero()
		if name == Hips {
			j.Sway.zero()
			j.Bob.zero()
			j.Thrust.zero()
		}
	}
}

// BlendAnimation accumulates weight*source into target for every joint the
// two share. Callers zero the target first and keep the weights of one pass
// bounded.
func BlendAnimation(source, target *Animation, weight float64) {
	for name, j := range target.Joints {
		src, ok := source.Joint(name)
		if !ok {
			continue
		}
		j.Pitch.add(src.Pitch, weight)
		j.Yaw.add(src.Yaw, weight)
		j.Roll.add(src.Roll, weight)
		if name == Hips {
			j.Sway.add(src.Sway, weight)
			j.Bob.add(src.Bob, weight)
			j.Thrust.add(src.Thrust, weight)
		}
	}
}
