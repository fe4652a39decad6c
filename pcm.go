// pcm.go defines the external PCM sample formats.

package golc3

import (
	"math"

	"github.com/lc3codec/golc3/internal/pcmio"
)

// PcmFormat identifies the sample encoding of caller-owned PCM
// buffers. All multi-byte layouts are little-endian.
type PcmFormat int

const (
	// FormatS16 is signed 16-bit, in 2-byte words.
	FormatS16 PcmFormat = iota

	// FormatS24 is signed 24-bit in the low three bytes of 4-byte
	// words; the high byte sign-extends bit 23.
	FormatS24

	// FormatS24In3 is signed 24-bit packed in 3 bytes.
	FormatS24In3

	// FormatFloat is 32-bit IEEE float in the range -1 to 1. Float
	// samples are range-checked but not rescaled.
	FormatFloat
)

// Width returns the sample width in bytes, or 0 for an invalid format.
func (f PcmFormat) Width() int {
	return f.internal().Width()
}

// Valid reports whether f is one of the enumerated formats.
func (f PcmFormat) Valid() bool {
	return f.internal().Valid()
}

func (f PcmFormat) internal() pcmio.Format {
	return pcmio.Format(f)
}

func float64ToInt16(sample float64) int16 {
	scaled := sample * 32768.0
	if scaled > 32767.0 {
		return 32767
	}
	if scaled < -32768.0 {
		return -32768
	}
	return int16(math.RoundToEven(scaled))
}

// pcmView validates the buffer geometry for count samples and maps the
// adapter errors onto the public taxonomy.
func pcmView(buf []byte, f PcmFormat, strideBytes, count int) (pcmio.View, error) {
	v, err := pcmio.NewView(buf, f.internal(), strideBytes, count)
	switch err {
	case nil:
		return v, nil
	case pcmio.ErrFormat:
		return pcmio.View{}, ErrUnsupportedFormat
	case pcmio.ErrStride:
		return pcmio.View{}, ErrInvalidStride
	default:
		return pcmio.View{}, ErrBadFrame
	}
}
