package mdct

import (
	"math"
	"testing"
)

// prng is a fixed-seed LCG so test inputs are reproducible.
type prng uint32

func (p *prng) next() float64 {
	*p = *p*1664525 + 1013904223
	return float64(int32(*p>>8)&0xFFFF)/32768.0 - 1.0
}

// TestPerfectReconstruction runs forward/inverse over a frame sequence
// and checks the synthesis output matches the input delayed by one
// frame, which is the transform's algorithmic delay.
func TestPerfectReconstruction(t *testing.T) {
	for _, n := range []int{20, 80, 160, 480} {
		m := New(n)
		rng := prng(12345)

		const frames = 6
		input := make([]float64, frames*n)
		for i := range input {
			input[i] = rng.next() * 0.8
		}

		window := make([]float64, 2*n)
		coef := make([]float64, n)
		overlap := make([]float64, n)
		out := make([]float64, n)

		for f := 0; f < frames; f++ {
			copy(window[:n], window[n:])
			copy(window[n:], input[f*n:(f+1)*n])
			m.Forward(window, coef)
			m.Inverse(coef, overlap, out)

			// Frame f's output reconstructs input frame f-1. Skip the
			// first two frames while the overlap fills in.
			if f < 2 {
				continue
			}
			ref := input[(f-1)*n : f*n]
			for i := 0; i < n; i++ {
				if math.Abs(out[i]-ref[i]) > 1e-9 {
					t.Fatalf("n=%d frame %d sample %d: got %g, want %g", n, f, i, out[i], ref[i])
				}
			}
		}
	}
}

// TestForward_Deterministic verifies repeated transforms of the same
// input are byte-identical.
func TestForward_Deterministic(t *testing.T) {
	n := 160
	m := New(n)
	x := make([]float64, 2*n)
	for i := range x {
		x[i] = math.Sin(float64(i) * 0.1)
	}
	a := make([]float64, n)
	b := make([]float64, n)
	m.Forward(x, a)
	m.Forward(x, b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("coefficient %d differs: %g vs %g", i, a[i], b[i])
		}
	}
}

// TestForward_Sine checks a pure tone concentrates energy near the
// matching bin.
func TestForward_Sine(t *testing.T) {
	n := 160
	m := New(n)
	bin := 10
	freq := (float64(bin) + 0.5) * 0.5 / float64(n) // Cycles per sample

	x := make([]float64, 2*n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freq * float64(i))
	}
	coef := make([]float64, n)
	m.Forward(x, coef)

	var peak, total float64
	for k, c := range coef {
		e := c * c
		total += e
		if k >= bin-1 && k <= bin+1 {
			peak += e
		}
	}
	if total == 0 || peak/total < 0.9 {
		t.Errorf("tone energy not concentrated: %.3f of total in peak bins", peak/total)
	}
}
