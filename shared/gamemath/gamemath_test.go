package gamemath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func floatEquals(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{725, 5},
		{-10, 350},
		{-360, 0},
	}
	for _, tt := range tests {
		if got := WrapDegrees(tt.in); !floatEquals(got, tt.want, 1e-9) {
			t.Errorf("WrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRatioGuardsZero(t *testing.T) {
	if got := Ratio(3, 0); got != 0 {
		t.Errorf("Ratio(3, 0) = %v, want 0", got)
	}
	if got := Ratio(3, 2); got != 1.5 {
		t.Errorf("Ratio(3, 2) = %v, want 1.5", got)
	}
}

func TestButterworthUnityDCGain(t *testing.T) {
	f := NewButterworth(2, 60)
	var y float64
	for i := 0; i < 600; i++ {
		y = f.Process(1)
	}
	if !floatEquals(y, 1, 1e-6) {
		t.Errorf("steady-state output = %v, want 1", y)
	}
}

func TestButterworthAttenuatesHighFrequency(t *testing.T) {
	f := NewButterworth(2, 60)
	peak := 0.0
	for i := 0; i < 600; i++ {
		// 20Hz at 60Hz sampling
		y := f.Process(math.Sin(2 * math.Pi * 20 * float64(i) / 60))
		if i > 300 && math.Abs(y) > peak {
			peak = math.Abs(y)
		}
	}
	if peak > 0.05 {
		t.Errorf("20Hz peak after filtering = %v, want < 0.05", peak)
	}
}

func TestMovingAverage(t *testing.T) {
	m := NewMovingAverage(4)
	got := []float64{m.Process(4), m.Process(4), m.Process(4), m.Process(4), m.Process(0)}
	want := []float64{1, 2, 3, 4, 3}
	for i := range want {
		if !floatEquals(got[i], want[i], 1e-12) {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}

	pass := NewMovingAverage(0)
	if got := pass.Process(7); got != 7 {
		t.Errorf("length-0 average = %v, want pass-through", got)
	}
}

func TestFiltersReset(t *testing.T) {
	f := NewButterworth(2, 60)
	m := NewMovingAverage(4)
	for i := 0; i < 10; i++ {
		f.Process(5)
		m.Process(5)
	}

	f.Reset()
	m.Reset()
	if got := f.Process(0); got != 0 {
		t.Errorf("butterworth after reset = %v, want 0", got)
	}
	if got := m.Process(4); got != 1 {
		t.Errorf("average after reset = %v, want 1", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 6, 0.25); got != 3 {
		t.Errorf("Lerp(2,6,0.25) = %v, want 3", got)
	}
	if got := Lerp(2, 6, 1); got != 6 {
		t.Errorf("Lerp(2,6,1) = %v, want 6", got)
	}
}

func TestClipTrough(t *testing.T) {
	if got := ClipTrough(-3, 1, 2); got != -1 {
		t.Errorf("ClipTrough(-3,1,2) = %v, want -1", got)
	}
	if got := ClipTrough(0.25, 1, 2); got != 0.5 {
		t.Errorf("ClipTrough(0.25,1,2) = %v, want 0.5", got)
	}
}

func TestBezierEaseEndpointsAndMonotonic(t *testing.T) {
	lower, upper := mgl64.Vec2{0.5, 0.5}, mgl64.Vec2{0.5, 0.5}
	if got := BezierEase(0, lower, upper); got != 0 {
		t.Errorf("BezierEase(0) = %v", got)
	}
	if got := BezierEase(1, lower, upper); got != 1 {
		t.Errorf("BezierEase(1) = %v", got)
	}
	prev := 0.0
	for i := 1; i < 100; i++ {
		v := BezierEase(float64(i)/100, mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1})
		if v < prev-1e-9 {
			t.Fatalf("not monotonic at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestSmoothStepSymmetric(t *testing.T) {
	if got := SmoothStep(0.5); !floatEquals(got, 0.5, 1e-6) {
		t.Errorf("SmoothStep(0.5) = %v, want 0.5", got)
	}
	a, b := SmoothStep(0.2), SmoothStep(0.8)
	if !floatEquals(a+b, 1, 1e-6) {
		t.Errorf("SmoothStep(0.2)+SmoothStep(0.8) = %v, want 1", a+b)
	}
	if a >= 0.2 {
		t.Errorf("SmoothStep(0.2) = %v, want eased below 0.2", a)
	}
}

func TestSynthShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape WaveShape
		at    float64
		want  float64
		tol   float64
	}{
		{"square quarter", ShapeSquare, math.Pi / 2, 1, 0.1},
		{"triangle quarter", ShapeTriangle, math.Pi / 2, 1, 0.05},
		{"sawtooth zero", ShapeSawtooth, 0, 0, 1e-12},
		{"sine quarter", ShapeSine, math.Pi / 2, 1, 1e-12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Synth(tt.shape, 15)(tt.at)
			if !floatEquals(got, tt.want, tt.tol) {
				t.Errorf("got %v, want %v±%v", got, tt.want, tt.tol)
			}
		})
	}
}

func TestHarmonics(t *testing.T) {
	w := Harmonics([]float64{0.5, 1}, []float64{0, math.Pi / 2})
	// 0.5*cos(0) + 1*cos(x - pi/2) = 0.5 + sin(x)
	for _, x := range []float64{0, 1, 2.5} {
		if got, want := w(x), 0.5+math.Sin(x); !floatEquals(got, want, 1e-12) {
			t.Errorf("w(%v) = %v, want %v", x, got, want)
		}
	}
}
