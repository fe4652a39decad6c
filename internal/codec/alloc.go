package codec

// Coefficient words are 2 to 8 bits; 1 bit cannot carry a sign and a
// magnitude, so bands step from 0 straight to 2.
const (
	minCoefBits = 2
	maxCoefBits = 8
)

// allocPerBitGain is the priority drop per bit already allocated to a
// band, approximating the ~6 dB distortion gain of one extra bit in
// gain-index units (4 indices = 6 dB).
const allocPerBitGain = 4

// allocateBits distributes the frame's coefficient bit budget across
// bands by greedy priority: louder bands (higher gain index) first,
// each allocation round adding one bit per coefficient of the winning
// band. The result depends only on the gain indices and the byte
// budget, so encoder and decoder recompute it identically and no side
// information is transmitted.
//
// alloc must hold cfg.NumBands entries; it is overwritten.
func allocateBits(cfg *Config, gains []int, nbytes int, alloc []int) {
	for b := range alloc {
		alloc[b] = 0
	}
	bitsLeft := nbytes*8 - cfg.HeaderBits

	for {
		best := -1
		bestScore := 0
		for b := 0; b < cfg.NumBands; b++ {
			if gains[b] == gainIndexSilent || alloc[b] >= maxCoefBits {
				continue
			}
			cost := cfg.BandWidth(b)
			if alloc[b] == 0 {
				cost *= minCoefBits
			}
			if cost > bitsLeft {
				continue
			}
			score := gains[b] - allocPerBitGain*alloc[b]
			// Ties resolve to the lowest band.
			if best == -1 || score > bestScore {
				best, bestScore = b, score
			}
		}
		if best == -1 {
			return
		}
		if alloc[best] == 0 {
			alloc[best] = minCoefBits
			bitsLeft -= minCoefBits * cfg.BandWidth(best)
		} else {
			alloc[best]++
			bitsLeft -= cfg.BandWidth(best)
		}
	}
}
