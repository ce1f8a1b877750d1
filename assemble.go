package pcmwav

import (
	"fmt"
	"io"
	"slices"
)

// writeBlockSamples bounds the scratch buffer used by WriteContainer.
const writeBlockSamples = 8192

// Assemble returns the complete container for samples: the header built from
// d followed by the little-endian payload. The result is
// HeaderSize+d.AudioPayloadSize bytes long.
func Assemble[T Sample](d FormatDescriptor, samples []T) ([]byte, error) {
	return AppendContainer(nil, d, samples)
}

// AppendContainer appends the container for samples to dst and returns the
// extended slice. The spare capacity of dst is reused when large enough.
// dst is returned unchanged on error.
func AppendContainer[T Sample](dst []byte, d FormatDescriptor, samples []T) ([]byte, error) {
	err := checkPayloadSize(d, samples)
	if err != nil {
		return dst, err
	}

	hdr := d.Header()

	out := slices.Grow(dst, int(d.ContainerSize()))
	out = append(out, hdr[:]...)

	return EncodeSamples(out, samples), nil
}

// WriteContainer writes the container for samples to w and returns the number
// of bytes written. The payload is encoded in bounded blocks so the sample
// buffer is never copied as a whole. Nothing is written when d doesn't match
// samples. Sink failures wrap ErrIOFailure.
func WriteContainer[T Sample](w io.Writer, d FormatDescriptor, samples []T) (int64, error) {
	err := checkPayloadSize(d, samples)
	if err != nil {
		return 0, err
	}

	hdr := d.Header()

	n, err := w.Write(hdr[:])
	written := int64(n)

	if err != nil {
		return written, fmt.Errorf("%w: header: %w", ErrIOFailure, err)
	}

	blockLen := min(len(samples), writeBlockSamples)
	scratch := make([]byte, 0, blockLen*int(SampleWidth[T]()))

	for start := 0; start < len(samples); start += writeBlockSamples {
		end := min(start+writeBlockSamples, len(samples))
		scratch = EncodeSamples(scratch[:0], samples[start:end])

		n, err := w.Write(scratch)
		written += int64(n)

		if err != nil {
			return written, fmt.Errorf("%w: payload at sample %d: %w", ErrIOFailure, start, err)
		}
	}

	return written, nil
}

func checkPayloadSize[T Sample](d FormatDescriptor, samples []T) error {
	actual := uint64(len(samples)) * uint64(SampleWidth[T]())
	if actual != uint64(d.AudioPayloadSize) {
		return fmt.Errorf("%w: declared %d bytes, samples encode to %d bytes",
			ErrFormatMismatch, d.AudioPayloadSize, actual)
	}

	return nil
}
