package codec

import "math"

// Band gain indices are 6 bits. Index 0 marks a silent band (zero
// gain, nothing coded, no noise fill); indices 1..63 map to
// gain = 2^((index-32)/4), covering roughly -46 to +46 dB around unity
// in 1.5 dB steps.
const (
	gainIndexSilent = 0
	gainIndexMax    = 63
	gainIndexBias   = 32
	gainIndexStep   = 4 // Indices per doubling
)

// silenceFloor is the band RMS below which a band is coded as silent.
const silenceFloor = 1.0 / 256

// quantHeadroom scales the dequantization range above the band RMS so
// peak coefficients survive quantization.
const quantHeadroom = 4.0

// gainFromIndex returns the linear band gain for an index.
func gainFromIndex(g int) float64 {
	if g == gainIndexSilent {
		return 0
	}
	return math.Exp2(float64(g-gainIndexBias) / gainIndexStep)
}

// indexFromRMS quantizes a band RMS to its gain index.
func indexFromRMS(rms float64) int {
	if rms < silenceFloor {
		return gainIndexSilent
	}
	g := gainIndexBias + int(math.Round(gainIndexStep*math.Log2(rms)))
	if g < 1 {
		g = 1
	}
	if g > gainIndexMax {
		g = gainIndexMax
	}
	return g
}

// bandRMS computes the root-mean-square of one band of coefficients.
func bandRMS(coef []float64) float64 {
	if len(coef) == 0 {
		return 0
	}
	var sum float64
	for _, c := range coef {
		sum += c * c
	}
	return math.Sqrt(sum / float64(len(coef)))
}

// quantizeCoef maps a coefficient to a symmetric integer level in
// [-levels, levels] given the band gain.
func quantizeCoef(c, gain float64, levels int) int {
	u := c / (gain * quantHeadroom)
	if u > 1 {
		u = 1
	} else if u < -1 {
		u = -1
	}
	return int(math.Round(u * float64(levels)))
}

// dequantizeCoef is the inverse mapping.
func dequantizeCoef(q, levels int, gain float64) float64 {
	return float64(q) / float64(levels) * gain * quantHeadroom
}
