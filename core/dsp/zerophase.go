package dsp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// filtfilt applies the IIR filter b/a forward and backward so the net phase
// response is zero. The signal is extended at both ends by odd reflection
// (3 * filter length samples) and each pass starts from the filter's
// steady-state response to the first sample, which suppresses edge
// transients. Fails if the signal is not longer than the padding.
func filtfilt(b, a, x []float64) ([]float64, error) {
	bb, aa, err := normalizeTF(b, a)
	if err != nil {
		return nil, err
	}
	padLen := 3 * len(aa)
	if len(x) <= padLen {
		return nil, fmt.Errorf("dsp: signal length %d too short for zero-phase padding %d", len(x), padLen)
	}
	zi, err := steadyState(bb, aa)
	if err != nil {
		return nil, err
	}

	ext := oddExt(x, padLen)
	y := lfilter(bb, aa, ext, scaled(zi, ext[0]))
	reverse(y)
	y = lfilter(bb, aa, y, scaled(zi, y[0]))
	reverse(y)
	return y[padLen : len(y)-padLen], nil
}

// normalizeTF pads b and a to equal length and scales both so a[0] == 1.
func normalizeTF(b, a []float64) (bb, aa []float64, err error) {
	if len(a) == 0 || a[0] == 0 {
		return nil, nil, fmt.Errorf("dsp: denominator leading coefficient must be nonzero")
	}
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	bb = make([]float64, n)
	aa = make([]float64, n)
	for i := range b {
		bb[i] = b[i] / a[0]
	}
	for i := range a {
		aa[i] = a[i] / a[0]
	}
	return bb, aa, nil
}

// lfilter runs the direct-form II transposed difference equation over x with
// initial state zi (length len(b)-1). b and a must be normalized and of equal
// length.
func lfilter(b, a, x, zi []float64) []float64 {
	n := len(b)
	d := make([]float64, n-1)
	copy(d, zi)
	y := make([]float64, len(x))
	for i, xi := range x {
		yi := b[0]*xi + d[0]
		for j := 0; j < n-2; j++ {
			d[j] = b[j+1]*xi + d[j+1] - a[j+1]*yi
		}
		d[n-2] = b[n-1]*xi - a[n-1]*yi
		y[i] = yi
	}
	return y
}

// steadyState solves for the filter state that makes the step response
// immediately settled, i.e. the initial conditions for which a constant input
// produces a constant output. Derived from the companion-matrix fixed point
// (I - A^T) zi = B.
func steadyState(b, a []float64) ([]float64, error) {
	m := len(a) - 1
	sys := mat.NewDense(m, m, nil)
	rhs := mat.NewVecDense(m, nil)
	for r := 0; r < m; r++ {
		for c := 0; c < m; c++ {
			v := 0.0
			if r == c {
				v = 1
			}
			// Transposed companion matrix of a.
			switch {
			case c == 0:
				v -= -a[r+1]
			case r == c-1:
				v -= 1
			}
			sys.Set(r, c, v)
		}
		rhs.SetVec(r, b[r+1]-a[r+1]*b[0])
	}
	var zi mat.VecDense
	if err := zi.SolveVec(sys, rhs); err != nil {
		return nil, fmt.Errorf("dsp: steady-state solve: %w", err)
	}
	return zi.RawVector().Data, nil
}

// oddExt extends x by n samples on each side, reflected through the first and
// last points so the extension is continuous in value and slope.
func oddExt(x []float64, n int) []float64 {
	ext := make([]float64, 0, len(x)+2*n)
	first, last := x[0], x[len(x)-1]
	for i := n; i >= 1; i-- {
		ext = append(ext, 2*first-x[i])
	}
	ext = append(ext, x...)
	for i := len(x) - 2; i >= len(x)-1-n; i-- {
		ext = append(ext, 2*last-x[i])
	}
	return ext
}

func scaled(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * s
	}
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
