// encoder.go implements the public Encoder API.

package golc3

import (
	"github.com/lc3codec/golc3/internal/codec"
	"github.com/lc3codec/golc3/internal/pcmio"
)

// Encoder compresses fixed-duration PCM frames.
//
// An Encoder instance maintains internal history and is NOT safe for
// concurrent use. Each goroutine should create its own Encoder.
//
// All state is allocated at construction; Encode never allocates.
// Caller buffers are borrowed for the duration of one call only.
type Encoder struct {
	enc    *codec.Encoder
	pcmBuf []float64 // One frame of normalized samples at the PCM rate
}

// NewEncoder creates an encoder.
//
// dtUs is the frame duration in µs: 2500, 5000, 7500 or 10000.
// srHz is the codec sample rate: 8000, 16000, 24000, 32000 or 48000.
// pcmHz is the rate of the PCM fed to Encode; 0 means srHz. When set,
// it must be a supported rate at or above srHz and the input is
// downsampled internally.
func NewEncoder(dtUs, srHz, pcmHz int) (*Encoder, error) {
	cfg, err := codec.Resolve(dtUs, srHz, pcmHz)
	if err != nil {
		return nil, ErrUnsupportedConfig
	}
	return &Encoder{
		enc:    codec.NewEncoder(cfg),
		pcmBuf: make([]float64, cfg.PcmLen),
	}, nil
}

// Encode compresses one frame of PCM into out.
//
// pcm holds FrameSamples() samples of the given format, strideBytes
// apart. len(out) is the frame byte budget: at least MinFrameBytes,
// capped at MaxFrameBytes. Returns the bytes written, which is the
// whole (capped) budget: the codec is strictly constant bitrate for
// a fixed budget.
//
// Validation failures return before any state changes, so the caller
// can fix the input and retry; past validation, history always
// advances by exactly one frame.
func (e *Encoder) Encode(format PcmFormat, pcm []byte, strideBytes int, out []byte) (int, error) {
	view, err := pcmView(pcm, format, strideBytes, e.enc.Config().PcmLen)
	if err != nil {
		return 0, err
	}
	if len(out) < MinFrameBytes {
		return 0, ErrBufferTooSmall
	}
	n := len(out)
	if n > MaxFrameBytes {
		n = MaxFrameBytes
	}

	pcmio.ToInternal(e.pcmBuf, view)
	e.enc.Encode(e.pcmBuf, out[:n])
	return n, nil
}

// EncodeInt16 compresses one frame of packed mono int16 samples.
// pcm must hold exactly FrameSamples() values.
func (e *Encoder) EncodeInt16(pcm []int16, out []byte) (int, error) {
	if len(pcm) != e.enc.Config().PcmLen {
		return 0, ErrBadFrame
	}
	if len(out) < MinFrameBytes {
		return 0, ErrBufferTooSmall
	}
	n := len(out)
	if n > MaxFrameBytes {
		n = MaxFrameBytes
	}
	for i, s := range pcm {
		e.pcmBuf[i] = float64(s) / 32768.0
	}
	e.enc.Encode(e.pcmBuf, out[:n])
	return n, nil
}

// EncodeFloat32 compresses one frame of packed mono float32 samples in
// [-1, 1]. pcm must hold exactly FrameSamples() values.
func (e *Encoder) EncodeFloat32(pcm []float32, out []byte) (int, error) {
	if len(pcm) != e.enc.Config().PcmLen {
		return 0, ErrBadFrame
	}
	if len(out) < MinFrameBytes {
		return 0, ErrBufferTooSmall
	}
	n := len(out)
	if n > MaxFrameBytes {
		n = MaxFrameBytes
	}
	for i, s := range pcm {
		v := float64(s)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		e.pcmBuf[i] = v
	}
	e.enc.Encode(e.pcmBuf, out[:n])
	return n, nil
}

// Reset clears encoder history for a new stream; the configuration is
// unchanged.
func (e *Encoder) Reset() {
	e.enc.Reset()
}

// FrameSamples returns the PCM samples consumed per Encode call, at
// the PCM rate.
func (e *Encoder) FrameSamples() int {
	return e.enc.Config().PcmLen
}

// FrameDuration returns the frame duration in µs.
func (e *Encoder) FrameDuration() int {
	return e.enc.Config().DtUs
}

// SampleRate returns the codec sample rate in Hz.
func (e *Encoder) SampleRate() int {
	return e.enc.Config().SrHz
}

// PcmSampleRate returns the rate of the PCM fed to Encode.
func (e *Encoder) PcmSampleRate() int {
	return e.enc.Config().PcmHz
}

// Delay returns the algorithmic delay in samples at the PCM rate: the
// decoded signal lags the encoder input by one frame due to the
// overlapped transform.
func (e *Encoder) Delay() int {
	return e.enc.Config().PcmLen
}

// StateSize returns the fixed state footprint in bytes.
func (e *Encoder) StateSize() int {
	return e.enc.FootprintBytes() + 8*len(e.pcmBuf)
}
