package codec

import (
	"github.com/lc3codec/golc3/internal/bits"
	"github.com/lc3codec/golc3/internal/mdct"
	"github.com/lc3codec/golc3/internal/resample"
)

// Decoder is the per-instance decode state machine. It mirrors the
// encoder and additionally carries concealment state: the last good
// band envelope and a deterministic noise generator. Not safe for
// concurrent use.
type Decoder struct {
	cfg Config

	up        *resample.Resampler // Codec rate -> PCM rate
	transform *mdct.MDCT

	overlap []float64 // FrameLen synthesis overlap
	frame   []float64 // FrameLen scratch at codec rate
	coef    []float64 // FrameLen coefficient scratch
	gains   []int     // NumBands decoded gain indices
	alloc   []int     // NumBands recomputed bit widths

	plc    concealState
	reader bits.Reader

	frames    uint64
	concealed uint64
}

// NewDecoder builds a decoder for the resolved configuration.
func NewDecoder(cfg Config) *Decoder {
	d := &Decoder{
		cfg:       cfg,
		up:        resample.New(cfg.FrameLen, cfg.PcmLen),
		transform: mdct.New(cfg.FrameLen),
		overlap:   make([]float64, cfg.FrameLen),
		frame:     make([]float64, cfg.FrameLen),
		coef:      make([]float64, cfg.FrameLen),
		gains:     make([]int, cfg.NumBands),
		alloc:     make([]int, cfg.NumBands),
	}
	d.plc.init(cfg.NumBands)
	return d
}

// Config returns the resolved geometry.
func (d *Decoder) Config() Config {
	return d.cfg
}

// Frames returns the number of frames produced since construction or
// the last Reset, concealed frames included.
func (d *Decoder) Frames() uint64 {
	return d.frames
}

// Concealed returns how many of those frames were concealed.
func (d *Decoder) Concealed() uint64 {
	return d.concealed
}

// FootprintBytes returns the fixed state size in bytes.
func (d *Decoder) FootprintBytes() int {
	buffers := 8 * (len(d.overlap) + len(d.frame) + len(d.coef))
	ints := 8 * (len(d.gains) + len(d.alloc))
	return buffers + ints + d.transform.FootprintBytes() +
		d.up.FootprintBytes() + d.plc.footprintBytes()
}

// Reset clears history and concealment state for a new stream.
func (d *Decoder) Reset() {
	for i := range d.overlap {
		d.overlap[i] = 0
	}
	d.up.Reset()
	d.plc.reset()
	d.frames = 0
	d.concealed = 0
}

// Decode produces one frame into pcm (PcmLen normalized samples).
// Empty data is the lost-packet signal and conceals silently; a
// structurally invalid frame conceals and reports ErrMalformedFrame.
// Either way pcm is fully written and history advances, keeping the
// synthesis overlap in step with the sender.
//
// The returned flag is true when the frame was concealed.
func (d *Decoder) Decode(data []byte, pcm []float64) (bool, error) {
	if len(data) == 0 {
		d.concealFrame(pcm)
		return true, nil
	}
	if err := d.parse(data); err != nil {
		d.concealFrame(pcm)
		return true, err
	}

	d.transform.Inverse(d.coef, d.overlap, d.frame)
	d.up.Process(d.frame, pcm)

	d.plc.observe(d.gains)
	d.frames++
	return false, nil
}

// parse validates and unpacks one frame into d.coef, or returns
// ErrMalformedFrame leaving the caller to conceal.
func (d *Decoder) parse(data []byte) error {
	if len(data) < MinFrameBytes || len(data) > MaxFrameBytes {
		return ErrMalformedFrame
	}

	d.reader.Init(data)
	bw := int(d.reader.ReadBits(bandwidthBits))
	if bw > d.cfg.SrIndex {
		// Declared bandwidth above the configured Nyquist cannot have
		// been produced for this configuration.
		return ErrMalformedFrame
	}
	for b := 0; b < d.cfg.NumBands; b++ {
		d.gains[b] = int(d.reader.ReadBits(gainBits))
	}
	if d.reader.Overrun() {
		return ErrMalformedFrame
	}

	allocateBits(&d.cfg, d.gains, len(data), d.alloc)

	for i := range d.coef {
		d.coef[i] = 0
	}
	for b := 0; b < d.cfg.NumBands; b++ {
		gain := gainFromIndex(d.gains[b])
		a := d.alloc[b]
		switch {
		case a > 0:
			levels := (1 << uint(a-1)) - 1
			for i := d.cfg.BandEdges[b]; i < d.cfg.BandEdges[b+1]; i++ {
				q := int(d.reader.ReadBits(a)) - levels
				d.coef[i] = dequantizeCoef(q, levels, gain)
			}
		case d.gains[b] != gainIndexSilent:
			// Band squeezed out of the budget: noise-fill from the
			// transmitted envelope.
			d.plc.noiseFill(d.coef[d.cfg.BandEdges[b]:d.cfg.BandEdges[b+1]], gain)
		}
	}
	if d.reader.Overrun() {
		return ErrMalformedFrame
	}
	return nil
}

// concealFrame synthesizes one frame from concealment state and
// advances history exactly like a genuine decode.
func (d *Decoder) concealFrame(pcm []float64) {
	d.plc.synthesize(&d.cfg, d.coef)
	d.transform.Inverse(d.coef, d.overlap, d.frame)
	d.up.Process(d.frame, pcm)
	d.frames++
	d.concealed++
}
