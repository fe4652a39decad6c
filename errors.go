// errors.go defines public error types for the golc3 package.

package golc3

import "errors"

// Public error types for configuration, encoding and decoding.
var (
	// ErrUnsupportedConfig indicates the frame duration, sample rate
	// and PCM rate do not form a supported combination. Valid frame
	// durations are 2500, 5000, 7500 and 10000 µs; valid rates are
	// 8000, 16000, 24000, 32000 and 48000 Hz; the PCM rate must be 0
	// (same as the codec rate) or a supported rate at or above it.
	ErrUnsupportedConfig = errors.New("golc3: unsupported configuration")

	// ErrBufferTooSmall indicates the output buffer is below the
	// codec minimum of MinFrameBytes. The call leaves history
	// unchanged; fix the buffer and retry.
	ErrBufferTooSmall = errors.New("golc3: output buffer too small")

	// ErrUnsupportedFormat indicates a PCM format outside the
	// enumerated set.
	ErrUnsupportedFormat = errors.New("golc3: unsupported PCM format")

	// ErrInvalidStride indicates a stride smaller than the sample
	// width of the chosen format.
	ErrInvalidStride = errors.New("golc3: stride smaller than sample width")

	// ErrBadFrame indicates the PCM buffer does not cover one full
	// frame at the given stride. The frame length is fixed by the
	// configuration, not chosen per call.
	ErrBadFrame = errors.New("golc3: PCM buffer does not cover one frame")

	// ErrMalformedFrame indicates a structurally impossible
	// compressed frame. The call conceals the frame and the decoder
	// instance remains usable; the error is informational.
	ErrMalformedFrame = errors.New("golc3: malformed compressed frame")

	// ErrBadHandle indicates a zero, released or stale handle passed
	// to the handle-based API.
	ErrBadHandle = errors.New("golc3: invalid handle")
)
