// Package pcmwav builds canonical RIFF/WAVE containers for linear PCM audio.
//
// A container is the fixed 44-byte header followed by the raw little-endian
// sample payload. The header is derived from a FormatDescriptor and the
// payload from a sample slice of any fixed-width numeric type:
//
//	samples := []int16{0, 1200, 2400}
//	desc := pcmwav.DescriptorFor(1, 44100, samples)
//	out, err := pcmwav.Assemble(desc, samples)
//
// Persisting the result is left to the caller. WriteContainer streams the
// container to an io.Writer without materializing the whole payload, and
// ReadHeader/Decoder parse a container back.
//
// Only the canonical PCM layout is produced: no compressed formats, no
// extensible fmt chunk and no extra chunks.
package pcmwav
