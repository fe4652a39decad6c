package pcmio

import (
	"encoding/binary"
	"math"
)

// Integer full-scale values. Internal samples are normalized to [-1, 1).
const (
	scale16 = 32768.0
	scale24 = 8388608.0
)

// ToInternal reads every sample of the view into dst as normalized
// float64. Integer formats are scaled to [-1, 1); float samples are
// clamped to [-1, 1] but otherwise passed through. dst must hold
// v.Count() samples.
func ToInternal(dst []float64, v View) {
	switch v.format {
	case FormatS16:
		for i := 0; i < v.count; i++ {
			s := int16(binary.LittleEndian.Uint16(v.at(i)))
			dst[i] = float64(s) / scale16
		}
	case FormatS24:
		for i := 0; i < v.count; i++ {
			w := binary.LittleEndian.Uint32(v.at(i))
			s := int32(w<<8) >> 8 // sign extend bit 23
			dst[i] = float64(s) / scale24
		}
	case FormatS24In3:
		for i := 0; i < v.count; i++ {
			b := v.at(i)
			u := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
			s := int32(u<<8) >> 8
			dst[i] = float64(s) / scale24
		}
	case FormatFloat:
		for i := 0; i < v.count; i++ {
			f := math.Float32frombits(binary.LittleEndian.Uint32(v.at(i)))
			dst[i] = clamp(float64(f))
		}
	}
}

// FromInternal writes src through the view in the view's format.
// Integer outputs are rounded to even and saturated at full scale;
// float outputs are clamped to [-1, 1]. src must hold v.Count() samples.
func FromInternal(v View, src []float64) {
	switch v.format {
	case FormatS16:
		for i := 0; i < v.count; i++ {
			binary.LittleEndian.PutUint16(v.at(i), uint16(sat16(src[i])))
		}
	case FormatS24:
		for i := 0; i < v.count; i++ {
			s := sat24(src[i])
			// High byte sign-extends bit 23.
			binary.LittleEndian.PutUint32(v.at(i), uint32(s))
		}
	case FormatS24In3:
		for i := 0; i < v.count; i++ {
			s := sat24(src[i])
			b := v.at(i)
			b[0] = byte(s)
			b[1] = byte(s >> 8)
			b[2] = byte(s >> 16)
		}
	case FormatFloat:
		for i := 0; i < v.count; i++ {
			f := float32(clamp(src[i]))
			binary.LittleEndian.PutUint32(v.at(i), math.Float32bits(f))
		}
	}
}

func clamp(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

func sat16(x float64) int16 {
	scaled := x * scale16
	if scaled > 32767 {
		return 32767
	}
	if scaled < -32768 {
		return -32768
	}
	return int16(math.RoundToEven(scaled))
}

func sat24(x float64) int32 {
	scaled := x * scale24
	if scaled > 8388607 {
		return 8388607
	}
	if scaled < -8388608 {
		return -8388608
	}
	return int32(math.RoundToEven(scaled))
}
