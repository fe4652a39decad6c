// Package pcmio converts between caller-owned PCM byte buffers and the
// codec's internal float64 sample representation. Buffers are addressed
// through a bounds-checked strided view so interleaved multi-channel
// layouts can be walked one channel at a time without pointer math.
package pcmio

import "errors"

// Validation errors surfaced through the public API.
var (
	ErrFormat      = errors.New("pcmio: unsupported sample format")
	ErrStride      = errors.New("pcmio: stride smaller than sample width")
	ErrShortBuffer = errors.New("pcmio: buffer too short for stride and count")
)

// Format identifies the external PCM sample encoding.
type Format int

const (
	// FormatS16 is signed 16-bit little-endian, in 2-byte words.
	FormatS16 Format = iota
	// FormatS24 is signed 24-bit in the low three bytes of 4-byte
	// little-endian words; the top byte sign-extends bit 23.
	FormatS24
	// FormatS24In3 is signed 24-bit packed in 3 bytes little-endian.
	FormatS24In3
	// FormatFloat is 32-bit IEEE float little-endian, range -1 to 1.
	FormatFloat
)

// Width returns the sample width in bytes, or 0 for an unknown format.
func (f Format) Width() int {
	switch f {
	case FormatS16:
		return 2
	case FormatS24:
		return 4
	case FormatS24In3:
		return 3
	case FormatFloat:
		return 4
	default:
		return 0
	}
}

// Valid reports whether f is one of the enumerated formats.
func (f Format) Valid() bool {
	return f.Width() != 0
}

// View is a strided window over a caller-owned byte buffer: count
// samples of the given format, each strideBytes apart. The view borrows
// the buffer for the duration of one call and never retains it.
type View struct {
	buf    []byte
	format Format
	stride int
	count  int
}

// NewView validates the geometry and wraps buf. stride is in bytes and
// must be at least the sample width; the buffer must cover the last
// sample in full.
func NewView(buf []byte, format Format, strideBytes, count int) (View, error) {
	w := format.Width()
	if w == 0 {
		return View{}, ErrFormat
	}
	if strideBytes < w {
		return View{}, ErrStride
	}
	if count > 0 && len(buf) < (count-1)*strideBytes+w {
		return View{}, ErrShortBuffer
	}
	return View{buf: buf, format: format, stride: strideBytes, count: count}, nil
}

// Count returns the number of samples addressed by the view.
func (v View) Count() int {
	return v.count
}

func (v View) at(i int) []byte {
	off := i * v.stride
	return v.buf[off : off+v.format.Width()]
}
