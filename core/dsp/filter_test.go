package dsp

import (
	"math"
	"testing"
)

func TestButterBandCoefficients(t *testing.T) {
	b, a, err := butterBand(3, 0.08, 0.12)
	if err != nil {
		t.Fatalf("design failed: %v", err)
	}
	if len(b) != 7 || len(a) != 7 {
		t.Fatalf("got %d/%d coefficients, want 7/7", len(b), len(a))
	}
	if math.Abs(a[0]-1) > 1e-12 {
		t.Fatalf("a[0] = %v, want 1", a[0])
	}
	// The bandpass numerator is k*(z^2-1)^order: odd taps vanish and the even
	// taps follow the binomial pattern 1, -3, 3, -1.
	for _, i := range []int{1, 3, 5} {
		if math.Abs(b[i]) > 1e-12 {
			t.Fatalf("b[%d] = %v, want 0", i, b[i])
		}
	}
	if math.Abs(b[2]+3*b[0]) > 1e-9 || math.Abs(b[6]+b[0]) > 1e-9 {
		t.Fatalf("numerator pattern broken: %v", b)
	}
}

func TestButterBandInvalid(t *testing.T) {
	if _, _, err := butterBand(0, 0.1, 0.2); err == nil {
		t.Fatal("expected error for zero order")
	}
	if _, _, err := butterBand(3, 0.2, 0.1); err == nil {
		t.Fatal("expected error for inverted band")
	}
	if _, _, err := butterBand(3, -0.1, 0.5); err == nil {
		t.Fatal("expected error for negative cutoff")
	}
}

func TestBandpassAboveNyquistPassesThrough(t *testing.T) {
	// The nominal PMU configuration: a 45-55 Hz band cannot exist below the
	// 25 Hz Nyquist limit of a 50 Sa/s signal.
	x := sine(5, 1, 50, 50)
	got, filtered := Bandpass(x, 45, 55, 50, 3)
	if filtered {
		t.Fatal("expected passthrough for band above Nyquist")
	}
	for i := range x {
		if got[i] != x[i] {
			t.Fatalf("sample %d altered in passthrough", i)
		}
	}
}

func TestBandpassShortSignalPassesThrough(t *testing.T) {
	x := sine(50, 1, 1000, 21) // padding needs len > 21 for order 3
	if _, filtered := Bandpass(x, 40, 60, 1000, 3); filtered {
		t.Fatal("expected passthrough for signal shorter than padding")
	}
}

func TestBandpassEmptyInput(t *testing.T) {
	if got, filtered := Bandpass(nil, 40, 60, 1000, 3); filtered || len(got) != 0 {
		t.Fatal("expected empty passthrough")
	}
}

func TestBandpassIsolatesFundamental(t *testing.T) {
	const (
		fs = 1000.0
		n  = 500
	)
	want := sine(50, 1, fs, n)
	x := make([]float64, n)
	noise := sine(300, 0.5, fs, n)
	for i := range x {
		x[i] = want[i] + noise[i] + 0.3 // in-band tone + HF tone + DC offset
	}
	got, filtered := Bandpass(x, 40, 60, fs, 3)
	if !filtered {
		t.Fatal("expected the filter to run")
	}
	if len(got) != n {
		t.Fatalf("length changed: %d", len(got))
	}
	residual := make([]float64, n)
	for i := range got {
		residual[i] = got[i] - want[i]
	}
	if r := RMS(residual) / RMS(want); r > 0.1 {
		t.Fatalf("residual ratio %v after filtering, want < 0.1", r)
	}
}

func TestBandpassZeroPhase(t *testing.T) {
	const fs = 1000.0
	x := sine(50, 1, fs, 500)
	got, filtered := Bandpass(x, 40, 60, fs, 3)
	if !filtered {
		t.Fatal("expected the filter to run")
	}
	// Forward-backward application must not shift or attenuate an in-band
	// tone: away from the edges the output tracks the input sample for
	// sample. Any residual phase lag would show up as a large pointwise gap.
	for i := 100; i < 400; i++ {
		if math.Abs(got[i]-x[i]) > 0.02 {
			t.Fatalf("sample %d: filtered %v vs raw %v", i, got[i], x[i])
		}
	}
}

func TestBandpassRejectsDC(t *testing.T) {
	x := make([]float64, 200)
	for i := range x {
		x[i] = 1
	}
	got, filtered := Bandpass(x, 40, 60, 1000, 3)
	if !filtered {
		t.Fatal("expected the filter to run")
	}
	if r := RMS(got); r > 1e-8 {
		t.Fatalf("DC leaked through: RMS %v", r)
	}
}
