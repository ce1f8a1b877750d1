package pcmwav

import "math"

const (
	maxPCMInt8Unsigned = 255
	scalePCMInt16      = 32768.0
	scalePCMInt24      = 8388608.0
	scalePCMInt32      = 2147483648.0
	floatPCM8Scale     = 127.5
	maxPCMInt16        = 32767
	maxPCMInt24        = 8388607
	maxPCMInt32        = 2147483647
)

// QuantizeInt16 converts a normalized sample in [-1, 1] to a 16-bit PCM
// value. Out of range input is clamped.
func QuantizeInt16(value float64) int16 {
	return int16(float32ToPCMInt32(float32(value), 16))
}

func clampFloat32(value, min, max float32) float32 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// float32ToPCMUint8 maps [-1, 1] onto the offset binary 8-bit range.
func float32ToPCMUint8(value float32) uint8 {
	value = clampFloat32(value, -1, 1)

	scaled := int(math.Round(float64((value + 1.0) * floatPCM8Scale)))
	if scaled < 0 {
		return 0
	}

	if scaled > maxPCMInt8Unsigned {
		return maxPCMInt8Unsigned
	}

	return uint8(scaled)
}

func float32ToPCMInt32(value float32, bitDepth int) int32 {
	value = clampFloat32(value, -1, 1)

	switch bitDepth {
	case 16:
		return clampScaledPCM(value, scalePCMInt16, maxPCMInt16)
	case 24:
		return clampScaledPCM(value, scalePCMInt24, maxPCMInt24)
	case 32:
		return clampScaledPCM(value, scalePCMInt32, maxPCMInt32)
	default:
		return 0
	}
}

func clampScaledPCM(value float32, scale float64, max int64) int32 {
	sample := min(int64(math.Round(float64(value)*scale)), max)

	if lowest := int64(-scale); sample < lowest {
		sample = lowest
	}

	return int32(sample)
}
