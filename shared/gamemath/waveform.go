package gamemath

import "math"

// Wave is a periodic function of a phase in radians.
type Wave func(radians float64) float64

// Sine is the default joint curve.
func Sine(radians float64) float64 {
	return math.Sin(radians)
}

// WaveShape selects the additive synthesis recipe of a Synth wave.
type WaveShape int

const (
	ShapeSine WaveShape = iota
	ShapeSawtooth
	ShapeTriangle
	ShapeSquare
)

// Synth returns a band-limited wave built from the first harmonics of the
// shape's Fourier series, scaled to unit peak amplitude.
func Synth(shape WaveShape, harmonics int) Wave {
	if harmonics < 1 {
		harmonics = 1
	}
	switch shape {
	case ShapeSawtooth:
		return func(x float64) float64 {
			sum := 0.0
			for n := 1; n <= harmonics; n++ {
				sum += math.Sin(float64(n)*x) / float64(n)
			}
			return sum * 2 / math.Pi
		}
	case ShapeSquare:
		return func(x float64) float64 {
			sum := 0.0
			for k := 0; k < harmonics; k++ {
				n := float64(2*k + 1)
				sum += math.Sin(n*x) / n
			}
			return sum * 4 / math.Pi
		}
	case ShapeTriangle:
		return func(x float64) float64 {
			sum := 0.0
			sign := 1.0
			for k := 0; k < harmonics; k++ {
				n := float64(2*k + 1)
				sum += sign * math.Sin(n*x) / (n * n)
				sign = -sign
			}
			return sum * 8 / (math.Pi * math.Pi)
		}
	}
	return Sine
}

// Harmonics returns sum(magnitudes[n] * cos(n*x - phases[n])). Missing phase
// angles are treated as zero.
func Harmonics(magnitudes, phases []float64) Wave {
	mags := append([]float64(nil), magnitudes...)
	ph := make([]float64, len(mags))
	copy(ph, phases)
	return func(x float64) float64 {
		sum := 0.0
		for n, m := range mags {
			sum += m * math.Cos(float64(n)*x-ph[n])
		}
		return sum
	}
}
