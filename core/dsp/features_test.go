package dsp

import (
	"math"
	"testing"
)

func sine(freq, amp, fs float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/fs)
	}
	return x
}

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Fatalf("empty RMS = %v, want 0", got)
	}
	// 50 full cycles: the discrete mean of sin^2 is exactly 1/2.
	got := RMS(sine(50, 1, 1000, 1000))
	if math.Abs(got-1/math.Sqrt2) > 1e-9 {
		t.Fatalf("unit sine RMS = %v, want %v", got, 1/math.Sqrt2)
	}
	const c = 0.7071
	x := make([]float64, 50)
	for i := range x {
		x[i] = c
	}
	if got := RMS(x); math.Abs(got-c) > 1e-12 {
		t.Fatalf("constant RMS = %v, want %v", got, c)
	}
}

func TestTHDPureTone(t *testing.T) {
	// 64 samples at 400 Sa/s puts 50 Hz exactly on bin 8: no leakage, and the
	// harmonic bins 16/24/32 hold nothing but float noise.
	x := sine(50, 1, 400, 64)
	if got := THD(x, 400, 50); got > 1e-6 {
		t.Fatalf("pure tone THD = %v, want ~0", got)
	}
}

func TestTHDThirdHarmonic(t *testing.T) {
	x := sine(50, 1, 400, 64)
	h := sine(150, 0.1, 400, 64)
	for i := range x {
		x[i] += h[i]
	}
	// A single 10% harmonic on exact bins reads as exactly 10%.
	if got := THD(x, 400, 50); math.Abs(got-10) > 1e-6 {
		t.Fatalf("THD = %v, want 10", got)
	}
}

func TestTHDDegenerateInputs(t *testing.T) {
	if got := THD(nil, 50, 50); got != 0 {
		t.Fatalf("empty THD = %v, want 0", got)
	}
	if got := THD(make([]float64, 50), 50, 50); got != 0 {
		t.Fatalf("all-zero THD = %v, want 0", got)
	}
	// The nominal PMU case: a 50 Hz tone sampled at 50 Sa/s collapses to a
	// constant; its clamped fundamental bin is empty and every harmonic bin
	// is beyond Nyquist, so the measurement is defined as 0.
	x := make([]float64, 50)
	for i := range x {
		x[i] = math.Sin(math.Pi / 4)
	}
	if got := THD(x, 50, 50); got != 0 {
		t.Fatalf("aliased nominal tone THD = %v, want 0", got)
	}
}

func TestFrequencyDeviation(t *testing.T) {
	if got := FrequencyDeviation(nil, 50); got != 0 {
		t.Fatalf("empty deviation = %v, want 0", got)
	}
	if got := FrequencyDeviation([]float64{50, 50, 50}, 50); got != 0 {
		t.Fatalf("nominal deviation = %v, want 0", got)
	}
	got := FrequencyDeviation([]float64{49.9, 50.1}, 50)
	if math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("deviation = %v, want 0.1", got)
	}
}

func TestMaxAbs(t *testing.T) {
	if got := MaxAbs(nil); got != 0 {
		t.Fatalf("empty MaxAbs = %v, want 0", got)
	}
	if got := MaxAbs([]float64{0.3, -1.4, 0.9}); got != 1.4 {
		t.Fatalf("MaxAbs = %v, want 1.4", got)
	}
}
