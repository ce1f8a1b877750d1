package pcmwav

import (
	"errors"
	"fmt"
	"math"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrInvalidDescriptor is returned by Validate when a field that must be
	// non-zero is zero.
	ErrInvalidDescriptor = errors.New("invalid format descriptor")
	// ErrHeaderOverflow is returned by Validate when a derived header field
	// doesn't fit its on-disk width.
	ErrHeaderOverflow = errors.New("header field overflow")
)

// FormatDescriptor describes one PCM container: its format parameters and the
// exact size of the payload that follows the header.
type FormatDescriptor struct {
	// AudioPayloadSize is the payload length in bytes, not a sample count.
	AudioPayloadSize uint32
	// NumChans is the number of interleaved channels.
	NumChans uint16
	// SampleRate is the number of frames per second.
	SampleRate uint32
	// BytesPerChannelSample is the width of a single sample of one channel,
	// e.g. 2 for 16-bit audio.
	BytesPerChannelSample uint16
}

// NewFormatDescriptor returns a descriptor for the passed format and payload
// size. No validation is performed, see Validate.
func NewFormatDescriptor(numChans uint16, sampleRate uint32, bytesPerChannelSample uint16, payloadSize uint32) FormatDescriptor {
	return FormatDescriptor{
		AudioPayloadSize:      payloadSize,
		NumChans:              numChans,
		SampleRate:            sampleRate,
		BytesPerChannelSample: bytesPerChannelSample,
	}
}

// DescriptorFor derives the sample width and payload size from samples.
// Buffers longer than 4 GiB truncate AudioPayloadSize; Assemble reports those
// as ErrFormatMismatch.
func DescriptorFor[T Sample](numChans uint16, sampleRate uint32, samples []T) FormatDescriptor {
	width := SampleWidth[T]()

	return NewFormatDescriptor(numChans, sampleRate, width, uint32(uint64(len(samples))*uint64(width)))
}

// BlockAlign is the size in bytes of one frame across all channels.
// The product wraps at 16 bits.
func (d FormatDescriptor) BlockAlign() uint16 {
	return d.BytesPerChannelSample * d.NumChans
}

// ByteRate is the number of payload bytes per second of audio.
// The product wraps at 32 bits.
func (d FormatDescriptor) ByteRate() uint32 {
	return d.SampleRate * uint32(d.BlockAlign())
}

// BitsPerSample is the bit depth of a single channel sample.
func (d FormatDescriptor) BitsPerSample() uint16 {
	return d.BytesPerChannelSample * 8
}

// RIFFSize is the value of the RIFF chunk size field: the container length
// minus the 8 bytes of the RIFF ID and size. The sum wraps at 32 bits.
func (d FormatDescriptor) RIFFSize() uint32 {
	return headerSizeAfterRIFFSize + d.AudioPayloadSize
}

// ContainerSize is the total number of bytes of the assembled container.
func (d FormatDescriptor) ContainerSize() int64 {
	return HeaderSize + int64(d.AudioPayloadSize)
}

// NumFrames is the number of complete frames held by the payload.
func (d FormatDescriptor) NumFrames() int {
	blockAlign := d.BlockAlign()
	if blockAlign == 0 {
		return 0
	}

	return int(d.AudioPayloadSize / uint32(blockAlign))
}

// Duration returns the playback length implied by the descriptor.
func (d FormatDescriptor) Duration() time.Duration {
	return durationFromBytes(d.AudioPayloadSize, d.ByteRate())
}

// String implements the Stringer interface.
func (d FormatDescriptor) String() string {
	return fmt.Sprintf("%d Hz @ %d bits, %d channel(s), %d avg bytes/sec, %d payload bytes",
		d.SampleRate, d.BitsPerSample(), d.NumChans, d.ByteRate(), d.AudioPayloadSize)
}

// Validate reports descriptors that produce a structurally valid but
// meaningless header: zero channels, sample rate or sample width, and derived
// fields that wrap. Header and Assemble never call it.
func (d FormatDescriptor) Validate() error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.NumChans, validation.Required),
		validation.Field(&d.SampleRate, validation.Required),
		validation.Field(&d.BytesPerChannelSample, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	return d.checkOverflow()
}

func (d FormatDescriptor) checkOverflow() error {
	blockAlign := uint64(d.BytesPerChannelSample) * uint64(d.NumChans)
	if blockAlign > math.MaxUint16 {
		return fmt.Errorf("%w: block align %d", ErrHeaderOverflow, blockAlign)
	}

	if bits := uint64(d.BytesPerChannelSample) * 8; bits > math.MaxUint16 {
		return fmt.Errorf("%w: bits per sample %d", ErrHeaderOverflow, bits)
	}

	if byteRate := uint64(d.SampleRate) * blockAlign; byteRate > math.MaxUint32 {
		return fmt.Errorf("%w: byte rate %d", ErrHeaderOverflow, byteRate)
	}

	if riffSize := uint64(headerSizeAfterRIFFSize) + uint64(d.AudioPayloadSize); riffSize > math.MaxUint32 {
		return fmt.Errorf("%w: riff size %d", ErrHeaderOverflow, riffSize)
	}

	return nil
}
