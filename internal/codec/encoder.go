package codec

import (
	"github.com/lc3codec/golc3/internal/bits"
	"github.com/lc3codec/golc3/internal/mdct"
	"github.com/lc3codec/golc3/internal/resample"
)

// Encoder is the per-instance encode state machine. Construction
// allocates the full fixed footprint; Encode mutates history in place
// and is not safe for concurrent use.
type Encoder struct {
	cfg Config

	down      *resample.Resampler // PCM rate -> codec rate
	transform *mdct.MDCT

	window []float64 // 2*FrameLen analysis window: previous + current frame
	frame  []float64 // FrameLen scratch: current frame at codec rate
	coef   []float64 // FrameLen MDCT coefficients
	gains  []int     // NumBands gain indices
	alloc  []int     // NumBands coefficient bit widths

	writer bits.Writer
	frames uint64
}

// NewEncoder builds an encoder for the resolved configuration.
func NewEncoder(cfg Config) *Encoder {
	return &Encoder{
		cfg:       cfg,
		down:      resample.New(cfg.PcmLen, cfg.FrameLen),
		transform: mdct.New(cfg.FrameLen),
		window:    make([]float64, 2*cfg.FrameLen),
		frame:     make([]float64, cfg.FrameLen),
		coef:      make([]float64, cfg.FrameLen),
		gains:     make([]int, cfg.NumBands),
		alloc:     make([]int, cfg.NumBands),
	}
}

// Config returns the resolved geometry.
func (e *Encoder) Config() Config {
	return e.cfg
}

// Frames returns the number of frames encoded since construction or
// the last Reset.
func (e *Encoder) Frames() uint64 {
	return e.frames
}

// FootprintBytes returns the fixed state size in bytes. Nothing beyond
// this is ever allocated by Encode.
func (e *Encoder) FootprintBytes() int {
	buffers := 8 * (len(e.window) + len(e.frame) + len(e.coef))
	ints := 8 * (len(e.gains) + len(e.alloc))
	return buffers + ints + e.transform.FootprintBytes() + e.down.FootprintBytes()
}

// Reset clears history for a new stream; geometry is unchanged.
func (e *Encoder) Reset() {
	for i := range e.window {
		e.window[i] = 0
	}
	e.down.Reset()
	e.frames = 0
}

// Encode compresses one frame. pcm holds exactly PcmLen normalized
// samples; out is the exact frame byte budget, already clamped to
// [MinFrameBytes, MaxFrameBytes] by the caller. Every byte of out is
// written. History advances by one frame on every call.
func (e *Encoder) Encode(pcm []float64, out []byte) {
	n := e.cfg.FrameLen

	// Rate-convert into the analysis window, shifting history forward
	// by one frame.
	e.down.Process(pcm, e.frame)
	copy(e.window[:n], e.window[n:])
	copy(e.window[n:], e.frame)

	e.transform.Forward(e.window, e.coef)

	// Band envelope.
	for b := 0; b < e.cfg.NumBands; b++ {
		band := e.coef[e.cfg.BandEdges[b]:e.cfg.BandEdges[b+1]]
		e.gains[b] = indexFromRMS(bandRMS(band))
	}

	allocateBits(&e.cfg, e.gains, len(out), e.alloc)

	// Pack: bandwidth, envelope, then coefficient words per band.
	// Unused trailing bits stay zero from Init.
	e.writer.Init(out)
	e.writer.WriteBits(uint32(e.cfg.SrIndex), bandwidthBits)
	for b := 0; b < e.cfg.NumBands; b++ {
		e.writer.WriteBits(uint32(e.gains[b]), gainBits)
	}
	for b := 0; b < e.cfg.NumBands; b++ {
		a := e.alloc[b]
		if a == 0 {
			continue
		}
		gain := gainFromIndex(e.gains[b])
		levels := (1 << uint(a-1)) - 1
		for i := e.cfg.BandEdges[b]; i < e.cfg.BandEdges[b+1]; i++ {
			q := quantizeCoef(e.coef[i], gain, levels)
			e.writer.WriteBits(uint32(q+levels), a)
		}
	}

	e.frames++
}
