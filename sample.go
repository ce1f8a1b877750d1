package pcmwav

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/go-audio/audio"
)

// Int24 is a signed 24-bit sample held in an int32. Only the low 24 bits are
// serialized.
type Int24 int32

// Sample lists the element types a sample buffer can hold. Each value is
// serialized little endian at its natural width, Int24 on 3 bytes.
type Sample interface {
	int8 | uint8 | int16 | uint16 | Int24 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// SampleWidth returns the serialized width in bytes of one T.
func SampleWidth[T Sample]() uint16 {
	var zero T

	switch any(zero).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case Int24:
		return 3
	case int32, uint32, float32:
		return 4
	default:
		return 8
	}
}

// EncodeSamples appends the little-endian encoding of samples to dst.
// Element order is preserved and every element takes SampleWidth bytes.
func EncodeSamples[T Sample](dst []byte, samples []T) []byte {
	dst = slices.Grow(dst, len(samples)*int(SampleWidth[T]()))

	switch s := any(samples).(type) {
	case []int8:
		for _, v := range s {
			dst = append(dst, byte(v))
		}
	case []uint8:
		dst = append(dst, s...)
	case []int16:
		for _, v := range s {
			dst = binary.LittleEndian.AppendUint16(dst, uint16(v))
		}
	case []uint16:
		for _, v := range s {
			dst = binary.LittleEndian.AppendUint16(dst, v)
		}
	case []Int24:
		for _, v := range s {
			dst = append(dst, audio.Int32toInt24LEBytes(int32(v))...)
		}
	case []int32:
		for _, v := range s {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(v))
		}
	case []uint32:
		for _, v := range s {
			dst = binary.LittleEndian.AppendUint32(dst, v)
		}
	case []int64:
		for _, v := range s {
			dst = binary.LittleEndian.AppendUint64(dst, uint64(v))
		}
	case []uint64:
		for _, v := range s {
			dst = binary.LittleEndian.AppendUint64(dst, v)
		}
	case []float32:
		for _, v := range s {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
		}
	case []float64:
		for _, v := range s {
			dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
		}
	}

	return dst
}
