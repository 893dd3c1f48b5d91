// Package dsp holds the deterministic numerical primitives behind feature
// extraction: Butterworth bandpass design, zero-phase filtering, and the
// spectral and time-domain measurements derived from raw waveforms.
package dsp

import (
	"fmt"
	"math"
	"math/cmplx"
)

// butterBand designs a digital Butterworth bandpass filter. low and high are
// cutoffs normalized to the Nyquist frequency, both strictly inside (0, 1).
// The returned transfer-function coefficients b and a have length 2*order+1
// with a[0] == 1. The design path is the classical one: analog lowpass
// prototype, lowpass-to-bandpass transform, then bilinear transform.
func butterBand(order int, low, high float64) (b, a []float64, err error) {
	if order <= 0 {
		return nil, nil, fmt.Errorf("dsp: filter order must be positive, got %d", order)
	}
	if low <= 0 || high >= 1 || low >= high {
		return nil, nil, fmt.Errorf("dsp: normalized band [%g, %g] outside (0, 1)", low, high)
	}

	// Pre-warp the band edges for the bilinear transform (internal rate 2).
	const fs = 2.0
	w1 := 2 * fs * math.Tan(math.Pi*low/fs)
	w2 := 2 * fs * math.Tan(math.Pi*high/fs)
	wo := math.Sqrt(w1 * w2)
	bw := w2 - w1

	// Analog lowpass prototype: poles evenly spaced on the left unit
	// semicircle, no finite zeros, unit gain.
	proto := make([]complex128, order)
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*k+1-order) / float64(2*order)
		proto[k] = -cmplx.Exp(complex(0, theta))
	}

	// Lowpass-to-bandpass: each prototype pole splits into a conjugate pair
	// around the center frequency; the zeros land at the origin.
	poles := make([]complex128, 0, 2*order)
	for _, p := range proto {
		ps := p * complex(bw/2, 0)
		d := cmplx.Sqrt(ps*ps - complex(wo*wo, 0))
		poles = append(poles, ps+d, ps-d)
	}
	zeros := make([]complex128, order) // at s = 0
	gain := math.Pow(bw, float64(order))

	// Bilinear transform to the z-domain. The analog zeros at the origin map
	// to z = 1; the excess pole count adds zeros at z = -1.
	fs2 := complex(2*fs, 0)
	zd := make([]complex128, 0, 2*order)
	num := complex(1, 0)
	den := complex(1, 0)
	for _, z := range zeros {
		zd = append(zd, (fs2+z)/(fs2-z))
		num *= fs2 - z
	}
	pd := make([]complex128, len(poles))
	for i, p := range poles {
		pd[i] = (fs2 + p) / (fs2 - p)
		den *= fs2 - p
	}
	for i := len(zeros); i < len(poles); i++ {
		zd = append(zd, -1)
	}
	gd := gain * real(num/den)

	bc := polyFromRoots(zd)
	ac := polyFromRoots(pd)
	b = make([]float64, len(bc))
	a = make([]float64, len(ac))
	for i, c := range bc {
		b[i] = gd * real(c)
	}
	for i, c := range ac {
		a[i] = real(c)
	}
	return b, a, nil
}

// polyFromRoots expands prod(x - r_i) into descending-power coefficients.
// Roots come in conjugate pairs, so the imaginary parts cancel.
func polyFromRoots(roots []complex128) []complex128 {
	coeffs := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}
	return coeffs
}
