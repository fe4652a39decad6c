// Package codec implements the frame codec core: frame geometry
// resolution, the band-envelope bitstream, deterministic bit
// allocation, and the encoder and decoder state machines with
// packet-loss concealment.
//
// All state is sized at construction from the resolved geometry; the
// encode and decode paths never allocate.
package codec

import (
	"errors"
	"math"
)

// Core errors, wrapped by the public package.
var (
	ErrUnsupportedConfig = errors.New("codec: unsupported frame duration / sample rate combination")
	ErrMalformedFrame    = errors.New("codec: structurally invalid frame")
)

// Frame byte budget accepted per frame.
const (
	MinFrameBytes = 20
	MaxFrameBytes = 400
)

// maxBands is the band-envelope resolution. Short frames use fewer
// bands, never more than one band per coefficient.
const maxBands = 16

// gainBits is the width of one band gain index; bandwidthBits prefixes
// every frame.
const (
	bandwidthBits = 3
	gainBits      = 6
)

// Supported frame durations in microseconds. 7.5 and 10 ms are the
// classic modes; 2.5 and 5 ms are the short low-latency modes.
var frameDurations = []int{2500, 5000, 7500, 10000}

// Supported sample rates in Hz, indexed by bandwidth.
var sampleRates = []int{8000, 16000, 24000, 32000, 48000}

func durationValid(dtUs int) bool {
	for _, d := range frameDurations {
		if d == dtUs {
			return true
		}
	}
	return false
}

func rateIndex(srHz int) int {
	for i, r := range sampleRates {
		if r == srHz {
			return i
		}
	}
	return -1
}

// Config is the resolved geometry for one encoder or decoder instance.
// It is a value type; all fields derive from the three construction
// parameters and never change afterward.
type Config struct {
	DtUs  int // Frame duration in microseconds
	SrHz  int // Codec sample rate
	PcmHz int // External PCM rate (>= SrHz)

	SrIndex    int   // Bandwidth index of SrHz
	FrameLen   int   // Samples per frame at the codec rate
	PcmLen     int   // Samples per frame at the PCM rate
	NumBands   int   // Envelope bands
	BandEdges  []int // NumBands+1 coefficient offsets, 0..FrameLen
	HeaderBits int   // Bits before coefficient data
}

// Resolve validates the parameter triple and computes the geometry.
// pcmHz == 0 falls back to srHz; otherwise it must be a supported rate
// at or above srHz.
func Resolve(dtUs, srHz, pcmHz int) (Config, error) {
	if !durationValid(dtUs) {
		return Config{}, ErrUnsupportedConfig
	}
	sri := rateIndex(srHz)
	if sri < 0 {
		return Config{}, ErrUnsupportedConfig
	}
	if pcmHz == 0 {
		pcmHz = srHz
	}
	if rateIndex(pcmHz) < 0 || pcmHz < srHz {
		return Config{}, ErrUnsupportedConfig
	}

	cfg := Config{
		DtUs:     dtUs,
		SrHz:     srHz,
		PcmHz:    pcmHz,
		SrIndex:  sri,
		FrameLen: dtUs * srHz / 1_000_000,
		PcmLen:   dtUs * pcmHz / 1_000_000,
	}
	cfg.NumBands = maxBands
	if cfg.FrameLen < cfg.NumBands {
		cfg.NumBands = cfg.FrameLen
	}
	cfg.BandEdges = bandEdges(cfg.FrameLen, cfg.NumBands)
	cfg.HeaderBits = bandwidthBits + cfg.NumBands*gainBits
	return cfg, nil
}

// bandEdges splits n coefficients into nb pseudo-logarithmic bands:
// narrow at low frequencies, wide at the top, each at least one
// coefficient wide.
func bandEdges(n, nb int) []int {
	edges := make([]int, nb+1)
	for b := 1; b < nb; b++ {
		e := int(math.Round(math.Pow(float64(n), float64(b)/float64(nb))))
		if e <= edges[b-1] {
			e = edges[b-1] + 1
		}
		edges[b] = e
	}
	edges[nb] = n
	// The pow curve can overshoot near the top on short frames; force
	// monotonicity from the right.
	for b := nb - 1; b >= 1; b-- {
		if edges[b] >= edges[b+1] {
			edges[b] = edges[b+1] - 1
		}
	}
	return edges
}

// BandWidth returns the coefficient count of band b.
func (c *Config) BandWidth(b int) int {
	return c.BandEdges[b+1] - c.BandEdges[b]
}
