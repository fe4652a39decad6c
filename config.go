// config.go exposes the frame geometry resolver: pure functions from
// the (frame duration, sample rate, PCM rate) triple to frame lengths
// and fixed state sizes. All of them fail with ErrUnsupportedConfig
// for combinations outside the supported set and have no side effects.

package golc3

import "github.com/lc3codec/golc3/internal/codec"

// Frame byte budget accepted per frame. Encode requires an output
// buffer of at least MinFrameBytes and never writes more than
// MaxFrameBytes.
const (
	MinFrameBytes = codec.MinFrameBytes
	MaxFrameBytes = codec.MaxFrameBytes
)

// FrameSamples returns the number of PCM samples per frame for the
// given duration and rate. This is the sample count every encode and
// decode call consumes or produces at that rate.
func FrameSamples(dtUs, srHz int) (int, error) {
	cfg, err := codec.Resolve(dtUs, srHz, 0)
	if err != nil {
		return 0, ErrUnsupportedConfig
	}
	return cfg.FrameLen, nil
}

// EncoderSize returns the fixed state footprint in bytes of an encoder
// for the configuration. The size is exact for the instance's owned
// buffers and never changes after construction.
func EncoderSize(dtUs, srHz, pcmHz int) (int, error) {
	cfg, err := codec.Resolve(dtUs, srHz, pcmHz)
	if err != nil {
		return 0, ErrUnsupportedConfig
	}
	return codec.NewEncoder(cfg).FootprintBytes(), nil
}

// DecoderSize returns the fixed state footprint in bytes of a decoder
// for the configuration.
func DecoderSize(dtUs, srHz, pcmHz int) (int, error) {
	cfg, err := codec.Resolve(dtUs, srHz, pcmHz)
	if err != nil {
		return 0, ErrUnsupportedConfig
	}
	return codec.NewDecoder(cfg).FootprintBytes(), nil
}

// FrameBytes converts a bitrate in bits per second to the frame byte
// budget for the given duration, clamped to the accepted range.
func FrameBytes(bitrate, dtUs int) int {
	n := bitrate * dtUs / 8 / 1_000_000
	if n < MinFrameBytes {
		return MinFrameBytes
	}
	if n > MaxFrameBytes {
		return MaxFrameBytes
	}
	return n
}

// Bitrate converts a frame byte count back to bits per second for the
// given duration.
func Bitrate(frameBytes, dtUs int) int {
	return frameBytes * 8 * 1_000_000 / dtUs
}
