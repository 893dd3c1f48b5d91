package dsp

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// RMS returns the root mean square of x, the AC "effective value": a
// unit-amplitude sine measures ~0.7071. Empty input measures 0.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// THD returns total harmonic distortion as a percentage: the energy at the
// 2nd through 5th harmonics of fundamentalHz relative to the fundamental.
// The signal is zero-padded to the next power of two before the FFT for finer
// bin resolution; harmonic bins beyond Nyquist are skipped. A degenerate
// fundamental (zero magnitude, empty input) measures 0.
func THD(x []float64, fs, fundamentalHz float64) float64 {
	n := len(x)
	if n == 0 || fs <= 0 {
		return 0
	}
	nfft := nextPow2(n)
	padded := make([]float64, nfft)
	copy(padded, x)

	fft := fourier.NewFFT(nfft)
	spectrum := fft.Coefficients(nil, padded) // bins 0..nfft/2
	half := nfft / 2

	fundBin := int(math.Round(fundamentalHz * float64(nfft) / fs))
	if fundBin < 1 {
		fundBin = 1
	}
	if fundBin > half {
		fundBin = half
	}
	fundMag := cmplx.Abs(spectrum[fundBin])
	if fundMag <= 0 {
		return 0
	}
	harmonics := 0.0
	for h := 2; h <= 5; h++ {
		bin := h * fundBin
		if bin > half {
			break
		}
		mag := cmplx.Abs(spectrum[bin])
		harmonics += mag * mag
	}
	return 100 * math.Sqrt(harmonics) / fundMag
}

// FrequencyDeviation returns the mean absolute deviation of the frequency
// trace from nominalHz. Empty input measures 0.
func FrequencyDeviation(f []float64, nominalHz float64) float64 {
	if len(f) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range f {
		sum += math.Abs(v - nominalHz)
	}
	return sum / float64(len(f))
}

// MaxAbs returns the largest magnitude in x, 0 for empty input.
func MaxAbs(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
