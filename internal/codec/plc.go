package codec

// Packet-loss concealment: hold the last good band envelope and
// synthesize shaped noise through the normal synthesis filterbank,
// decaying the envelope on every consecutive loss so extended outages
// fade to silence instead of looping energy forever.

// energyDecayPerLoss is the linear gain decay applied per lost frame.
const energyDecayPerLoss = 0.85

// hardFadeAfter is the consecutive-loss count past which an extra
// fadePerLoss is applied each frame, driving the output to silence.
const (
	hardFadeAfter = 5
	fadePerLoss   = 0.5
)

// noiseFillGain scales envelope gain to noise amplitude, for both
// concealment and zero-bit band fill.
const noiseFillGain = 0.5

// concealState carries the decoder's concealment memory.
type concealState struct {
	heldGains []float64 // Linear band gains from the last good frame
	lostCount int
	rng       uint32
}

func (s *concealState) init(numBands int) {
	s.heldGains = make([]float64, numBands)
	s.reset()
}

func (s *concealState) reset() {
	for i := range s.heldGains {
		s.heldGains[i] = 0
	}
	s.lostCount = 0
	s.rng = 0x6d1f37c9
}

func (s *concealState) footprintBytes() int {
	return 8 * len(s.heldGains)
}

// observe records the envelope of a successfully decoded frame and
// clears the loss run.
func (s *concealState) observe(gains []int) {
	for b, g := range gains {
		s.heldGains[b] = gainFromIndex(g)
	}
	s.lostCount = 0
}

// nextNoise returns a deterministic pseudo-random value in [-1, 1).
func (s *concealState) nextNoise() float64 {
	s.rng = s.rng*1664525 + 1013904223
	return float64(int32(s.rng>>8)&0x7FFF)/16384.0 - 1.0
}

// noiseFill writes envelope-scaled noise into one band of
// coefficients.
func (s *concealState) noiseFill(coef []float64, gain float64) {
	for i := range coef {
		coef[i] = s.nextNoise() * gain * noiseFillGain
	}
}

// synthesize decays the held envelope by one loss and fills the whole
// coefficient frame with shaped noise. Bands that were silent in the
// last good frame stay silent.
func (s *concealState) synthesize(cfg *Config, coef []float64) {
	s.lostCount++
	fade := energyDecayPerLoss
	if s.lostCount > hardFadeAfter {
		fade *= fadePerLoss
	}
	for b := range s.heldGains {
		s.heldGains[b] *= fade
	}
	for i := range coef {
		coef[i] = 0
	}
	for b := 0; b < cfg.NumBands; b++ {
		g := s.heldGains[b]
		if g == 0 {
			continue
		}
		s.noiseFill(coef[cfg.BandEdges[b]:cfg.BandEdges[b+1]], g)
	}
}
