package dsp

// Bandpass isolates the [lowHz, highHz] band of x with a Butterworth filter
// of the given order, applied zero-phase so peak positions are not shifted.
// The second return value reports whether filtering was actually applied:
// when the band is invalid for the sampling rate (outside (0, Nyquist)), the
// signal is too short for zero-phase padding, or the design degenerates
// numerically, the input is returned unchanged with false. Callers treat the
// passthrough case as an effectively unfiltered signal, not an error.
func Bandpass(x []float64, lowHz, highHz, fs float64, order int) ([]float64, bool) {
	if len(x) == 0 || fs <= 0 {
		return x, false
	}
	nyq := fs / 2
	low := lowHz / nyq
	high := highHz / nyq
	if low <= 0 || low >= 1 || high <= 0 || high >= 1 {
		return x, false
	}
	b, a, err := butterBand(order, low, high)
	if err != nil {
		return x, false
	}
	y, err := filtfilt(b, a, x)
	if err != nil {
		return x, false
	}
	return y, true
}
