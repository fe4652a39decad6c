// Package resample converts between the caller's PCM rate and the
// codec rate when the two differ. The ratio is fixed at construction,
// frame sizes on both sides are exact, and all filter and interpolation
// state lives in the instance so steady-state processing never
// allocates.
package resample

// Resampler converts fixed-size frames between two sample rates using
// Catmull-Rom cubic interpolation, with a one-pole low-pass applied
// before decimation to limit aliasing. Not safe for concurrent use;
// history mutates on every call.
type Resampler struct {
	inLen  int // Samples per input frame
	outLen int // Samples per output frame

	// Last three input samples of the previous frame, so the
	// interpolation window is continuous across frame boundaries.
	hist [3]float64

	// One-pole low-pass state, used only when decimating.
	useFilter   bool
	filterState float64
	filterAlpha float64

	filtered []float64 // Scratch: filtered input frame
}

// New builds a resampler converting inLen-sample frames to
// outLen-sample frames. When inLen > outLen (decimation) a low-pass
// with cutoff near the output Nyquist is applied first.
func New(inLen, outLen int) *Resampler {
	r := &Resampler{
		inLen:    inLen,
		outLen:   outLen,
		filtered: make([]float64, inLen),
	}
	if inLen > outLen {
		r.useFilter = true
		r.filterAlpha = float64(outLen) / float64(inLen)
	}
	return r
}

// Identity reports whether the resampler is a pass-through.
func (r *Resampler) Identity() bool {
	return r.inLen == r.outLen
}

// FootprintBytes returns the fixed memory held by the scratch buffer,
// for state-size accounting.
func (r *Resampler) FootprintBytes() int {
	return 8 * len(r.filtered)
}

// Reset clears filter and interpolation history.
func (r *Resampler) Reset() {
	r.hist = [3]float64{}
	r.filterState = 0
}

// Process converts one frame. in must hold inLen samples and out must
// hold outLen samples; when the rates match the frame is copied
// through untouched.
func (r *Resampler) Process(in, out []float64) {
	if r.inLen == r.outLen {
		copy(out, in)
		return
	}

	src := in
	if r.useFilter {
		y := r.filterState
		for i, x := range in {
			y += r.filterAlpha * (x - y)
			r.filtered[i] = y
		}
		r.filterState = y
		src = r.filtered
	}

	// Sample positions are exact rationals of the frame lengths, so
	// the phase realigns every frame and output is bit-exact across
	// runs: position of out[i] is i*inLen/outLen input samples.
	for i := 0; i < r.outLen; i++ {
		idx := i * r.inLen / r.outLen
		frac := float64(i*r.inLen%r.outLen) / float64(r.outLen)
		y0 := r.sampleAt(src, idx-1)
		y1 := r.sampleAt(src, idx)
		y2 := r.sampleAt(src, idx+1)
		y3 := r.sampleAt(src, idx+2)
		out[i] = cubic(y0, y1, y2, y3, frac)
	}

	r.hist[0] = r.sampleAt(src, r.inLen-3)
	r.hist[1] = r.sampleAt(src, r.inLen-2)
	r.hist[2] = src[r.inLen-1]
}

// sampleAt reads the frame extended by the previous frame's tail on
// the left and a held edge sample on the right.
func (r *Resampler) sampleAt(src []float64, i int) float64 {
	if i < 0 {
		if i < -3 {
			return 0
		}
		return r.hist[3+i]
	}
	if i >= r.inLen {
		return src[r.inLen-1]
	}
	return src[i]
}

// cubic evaluates a Catmull-Rom spline at fractional position x
// between y1 and y2.
func cubic(y0, y1, y2, y3, x float64) float64 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1
	return a0*x*x*x + a1*x*x + a2*x + a3
}
