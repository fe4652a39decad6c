// decoder.go implements the public Decoder API.

package golc3

import (
	"github.com/lc3codec/golc3/internal/codec"
	"github.com/lc3codec/golc3/internal/pcmio"
)

// Result reports how a decoded frame was produced, so concealment is
// distinguishable from a genuine decode without being an error.
type Result int

const (
	// FrameDecoded means the compressed frame was unpacked normally.
	FrameDecoded Result = iota

	// FrameConcealed means the frame was synthesized from decoder
	// history, either because the input was empty (lost packet) or
	// structurally invalid.
	FrameConcealed
)

// Decoder decompresses frames into fixed-duration PCM.
//
// A Decoder instance maintains internal history and concealment state
// and is NOT safe for concurrent use. Each goroutine should create its
// own Decoder.
//
// All state is allocated at construction; Decode never allocates.
type Decoder struct {
	dec    *codec.Decoder
	pcmBuf []float64
}

// NewDecoder creates a decoder. Parameters mirror NewEncoder; pcmHz is
// an upsampling option for the output, 0 meaning srHz.
func NewDecoder(dtUs, srHz, pcmHz int) (*Decoder, error) {
	cfg, err := codec.Resolve(dtUs, srHz, pcmHz)
	if err != nil {
		return nil, ErrUnsupportedConfig
	}
	return &Decoder{
		dec:    codec.NewDecoder(cfg),
		pcmBuf: make([]float64, cfg.PcmLen),
	}, nil
}

// Decode produces one full PCM frame into pcm.
//
// data is one compressed frame; nil or empty signals a lost packet and
// triggers concealment, which is a success (FrameConcealed, nil). A
// structurally impossible frame conceals too and additionally reports
// ErrMalformedFrame; the error is call-local, the instance remains
// usable and pcm is still fully written.
//
// pcm receives FrameSamples() samples of the given format, strideBytes
// apart. History always advances by one frame once validation passes,
// keeping the synthesis overlap in step with the sender.
func (d *Decoder) Decode(data []byte, format PcmFormat, pcm []byte, strideBytes int) (Result, error) {
	view, err := pcmView(pcm, format, strideBytes, d.dec.Config().PcmLen)
	if err != nil {
		return FrameDecoded, err
	}

	concealed, decErr := d.dec.Decode(data, d.pcmBuf)
	pcmio.FromInternal(view, d.pcmBuf)

	if decErr != nil {
		return FrameConcealed, ErrMalformedFrame
	}
	if concealed {
		return FrameConcealed, nil
	}
	return FrameDecoded, nil
}

// DecodeInt16 decodes one frame into packed mono int16 samples.
// pcm must hold exactly FrameSamples() values.
func (d *Decoder) DecodeInt16(data []byte, pcm []int16) (Result, error) {
	if len(pcm) != d.dec.Config().PcmLen {
		return FrameDecoded, ErrBadFrame
	}
	concealed, decErr := d.dec.Decode(data, d.pcmBuf)
	for i, v := range d.pcmBuf {
		pcm[i] = float64ToInt16(v)
	}
	if decErr != nil {
		return FrameConcealed, ErrMalformedFrame
	}
	if concealed {
		return FrameConcealed, nil
	}
	return FrameDecoded, nil
}

// DecodeFloat32 decodes one frame into packed mono float32 samples.
// pcm must hold exactly FrameSamples() values.
func (d *Decoder) DecodeFloat32(data []byte, pcm []float32) (Result, error) {
	if len(pcm) != d.dec.Config().PcmLen {
		return FrameDecoded, ErrBadFrame
	}
	concealed, decErr := d.dec.Decode(data, d.pcmBuf)
	for i, v := range d.pcmBuf {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		pcm[i] = float32(v)
	}
	if decErr != nil {
		return FrameConcealed, ErrMalformedFrame
	}
	if concealed {
		return FrameConcealed, nil
	}
	return FrameDecoded, nil
}

// Reset clears decoder history and concealment state for a new stream.
func (d *Decoder) Reset() {
	d.dec.Reset()
}

// ConcealedFrames returns how many frames have been concealed since
// construction or the last Reset.
func (d *Decoder) ConcealedFrames() uint64 {
	return d.dec.Concealed()
}

// FrameSamples returns the PCM samples produced per Decode call, at
// the PCM rate.
func (d *Decoder) FrameSamples() int {
	return d.dec.Config().PcmLen
}

// FrameDuration returns the frame duration in µs.
func (d *Decoder) FrameDuration() int {
	return d.dec.Config().DtUs
}

// SampleRate returns the codec sample rate in Hz.
func (d *Decoder) SampleRate() int {
	return d.dec.Config().SrHz
}

// PcmSampleRate returns the rate of the PCM produced by Decode.
func (d *Decoder) PcmSampleRate() int {
	return d.dec.Config().PcmHz
}

// StateSize returns the fixed state footprint in bytes.
func (d *Decoder) StateSize() int {
	return d.dec.FootprintBytes() + 8*len(d.pcmBuf)
}
