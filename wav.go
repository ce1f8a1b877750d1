package pcmwav

import (
	"errors"
	"time"
)

var (
	// ErrFormatMismatch indicates that the declared payload size doesn't match
	// the serialized length of the sample buffer.
	ErrFormatMismatch = errors.New("payload size does not match sample buffer")
	// ErrIOFailure wraps errors returned by the sink a container is written to.
	ErrIOFailure = errors.New("failed to write container")
	// ErrPCMDataNotFound is returned when a container has no data chunk.
	ErrPCMDataNotFound = errors.New("PCM data not found")
)

// FramesForDuration returns the number of frames needed to cover dur at the
// passed sample rate. Partial frames are dropped.
func FramesForDuration(dur time.Duration, sampleRate uint32) int {
	if sampleRate == 0 || dur <= 0 {
		return 0
	}

	rate := int64(sampleRate)
	whole := int64(dur/time.Second) * rate
	frac := int64(dur%time.Second) * rate / int64(time.Second)

	return int(whole + frac)
}

func durationFromBytes(numBytes uint32, byteRate uint32) time.Duration {
	if byteRate == 0 {
		return 0
	}

	return time.Duration(float64(numBytes) / float64(byteRate) * float64(time.Second))
}
