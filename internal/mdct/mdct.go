// Package mdct implements the Modified Discrete Cosine Transform used
// by the codec's analysis and synthesis filterbanks: a sine window over
// two frames with 50% overlap, giving time-domain alias cancellation
// and one frame of algorithmic delay.
//
// The basis is evaluated from a table precomputed at construction, so
// transform calls are allocation-free and bit-exact across runs on the
// same platform.
package mdct

import "math"

// MDCT holds the precomputed window and cosine basis for one transform
// size. One instance is built per codec instance at setup and reused
// for every frame.
type MDCT struct {
	n     int       // Frequency bins per frame
	win   []float64 // 2n-point sine window
	basis []float64 // n * 2n cosine basis, row k at basis[k*2n:]
	time  []float64 // 2n scratch for synthesis
}

// New builds the window and basis tables for n frequency bins.
func New(n int) *MDCT {
	n2 := 2 * n
	m := &MDCT{
		n:     n,
		win:   make([]float64, n2),
		basis: make([]float64, n*n2),
		time:  make([]float64, n2),
	}
	for i := 0; i < n2; i++ {
		m.win[i] = math.Sin(math.Pi / float64(n2) * (float64(i) + 0.5))
	}
	for k := 0; k < n; k++ {
		row := m.basis[k*n2 : (k+1)*n2]
		for i := 0; i < n2; i++ {
			row[i] = math.Cos(math.Pi / float64(n) *
				(float64(i) + 0.5 + float64(n)/2) * (float64(k) + 0.5))
		}
	}
	return m
}

// Bins returns the number of frequency bins per frame.
func (m *MDCT) Bins() int {
	return m.n
}

// FootprintBytes returns the fixed memory held by the tables and
// scratch, for state-size accounting.
func (m *MDCT) FootprintBytes() int {
	return 8 * (len(m.win) + len(m.basis) + len(m.time))
}

// Forward transforms a 2n-sample analysis window (previous frame
// followed by the current frame) into n coefficients. x is only read;
// coef must hold n values.
func (m *MDCT) Forward(x, coef []float64) {
	n2 := 2 * m.n
	for k := 0; k < m.n; k++ {
		row := m.basis[k*n2 : (k+1)*n2]
		var acc float64
		for i := 0; i < n2; i++ {
			acc += m.win[i] * x[i] * row[i]
		}
		coef[k] = acc * 2 / float64(m.n)
	}
}

// Inverse synthesizes one frame from n coefficients. The first n
// output samples are written to out as the sum of the stored overlap
// and the windowed first half; the windowed second half replaces
// overlap for the next call. out, overlap and coef must each hold n
// values.
func (m *MDCT) Inverse(coef, overlap, out []float64) {
	n2 := 2 * m.n
	for i := 0; i < n2; i++ {
		var acc float64
		for k := 0; k < m.n; k++ {
			acc += coef[k] * m.basis[k*n2+i]
		}
		// The forward transform carries 2/n so coefficients sit near
		// unit scale for quantization; the half here restores the 1/n
		// the reconstruction identity needs.
		m.time[i] = acc / 2
	}
	for i := 0; i < m.n; i++ {
		out[i] = overlap[i] + m.win[i]*m.time[i]
		overlap[i] = m.win[m.n+i] * m.time[m.n+i]
	}
}
