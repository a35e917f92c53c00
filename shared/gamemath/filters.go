package gamemath

import "math"

// Butterworth is a second order low-pass filter, designed by bilinear
// transform for a fixed sample rate. Unity gain at DC.
type Butterworth struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

// NewButterworth returns a low-pass filter with the given -3dB cutoff.
// A cutoff at or above Nyquist yields a pass-through filter.
func NewButterworth(cutoffHz, sampleRateHz float64) *Butterworth {
	if cutoffHz <= 0 || sampleRateHz <= 0 || cutoffHz >= sampleRateHz/2 {
		return &Butterworth{b0: 1}
	}
	k := math.Tan(math.Pi * cutoffHz / sampleRateHz)
	norm := 1 / (1 + math.Sqrt2*k + k*k)
	b0 := k * k * norm
	return &Butterworth{
		b0: b0,
		b1: 2 * b0,
		b2: b0,
		a1: 2 * (k*k - 1) * norm,
		a2: (1 - math.Sqrt2*k + k*k) * norm,
	}
}

// Process feeds one sample and returns the filtered value.
func (f *Butterworth) Process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// Reset clears the filter history.
func (f *Butterworth) Reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

// MovingAverage averages the last N samples. The window starts filled with
// zeros so the output ramps in from rest.
type MovingAverage struct {
	values []float64
	next   int
	sum    float64
}

// NewMovingAverage returns an averaging filter over length samples.
// Lengths below one behave as a pass-through.
func NewMovingAverage(length int) *MovingAverage {
	if length < 1 {
		length = 1
	}
	return &MovingAverage{values: make([]float64, length)}
}

// Process pushes a sample and returns the current mean.
func (m *MovingAverage) Process(v float64) float64 {
	m.sum += v - m.values[m.next]
	m.values[m.next] = v
	m.next = (m.next + 1) % len(m.values)
	return m.sum / float64(len(m.values))
}

// Len is the window length.
func (m *MovingAverage) Len() int {
	return len(m.values)
}

// Reset zeroes the window.
func (m *MovingAverage) Reset() {
	for i := range m.values {
		m.values[i] = 0
	}
	m.next, m.sum = 0, 0
}

// ClipTrough scales a value and clips it from below at -peak.
func ClipTrough(v, peak, strength float64) float64 {
	out := v * strength
	if out < -peak {
		out = -peak
	}
	return out
}
