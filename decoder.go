package pcmwav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	// ErrUnsupportedFormat is returned when the fmt chunk declares anything
	// but linear PCM.
	ErrUnsupportedFormat = errors.New("unsupported wav format")

	errMissingFmtChunk    = errors.New("data chunk found before fmt chunk")
	errShortFmtChunk      = errors.New("fmt chunk too small")
	errUnhandledByteDepth = errors.New("unhandled byte depth")
)

// Decoder reads canonical PCM containers.
// Chunks other than fmt and data are skipped.
type Decoder struct {
	r      io.Reader
	parser *riff.Parser

	fmtChunk *FmtChunk
	err      error
	readInfo bool

	// PCMSize is the exact size of the data chunk, without padding.
	PCMSize int
	// PCMChunk gives access to the payload once the headers are read.
	PCMChunk *riff.Chunk
}

// NewDecoder creates a decoder for the passed reader.
// Note that the reader doesn't get rewinded as the container is processed.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:      r,
		parser: riff.New(r),
	}
}

// ReadHeader parses the container header from r and returns its descriptor.
// The reader is left positioned at the start of the payload.
func ReadHeader(r io.Reader) (FormatDescriptor, error) {
	dec := NewDecoder(r)

	err := dec.ReadInfo()
	if err != nil {
		return FormatDescriptor{}, err
	}

	return dec.Descriptor(), nil
}

// ReadInfo reads the underlying reader up to the start of the payload.
// This method is safe to call multiple times.
func (d *Decoder) ReadInfo() error {
	if d == nil {
		return ErrPCMDataNotFound
	}

	if d.readInfo {
		return d.err
	}

	d.readInfo = true
	d.err = d.readHeaders()

	return d.err
}

// Err returns the first error encountered while reading the headers.
func (d *Decoder) Err() error {
	return d.err
}

// FmtChunk returns a copy of the parsed fmt chunk, if available.
func (d *Decoder) FmtChunk() *FmtChunk {
	if d == nil {
		return nil
	}

	return d.fmtChunk.Clone()
}

// Descriptor returns the format descriptor of the parsed container.
// It is empty until ReadInfo succeeded.
func (d *Decoder) Descriptor() FormatDescriptor {
	if d == nil || d.fmtChunk == nil {
		return FormatDescriptor{}
	}

	return NewFormatDescriptor(d.fmtChunk.NumChannels, d.fmtChunk.SampleRate,
		d.fmtChunk.BytesPerChannelSample(), uint32(d.PCMSize))
}

// Format returns the audio format of the decoded content.
func (d *Decoder) Format() *audio.Format {
	if d == nil || d.fmtChunk == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(d.fmtChunk.NumChannels),
		SampleRate:  int(d.fmtChunk.SampleRate),
	}
}

// Payload returns the raw payload bytes.
// The payload can only be read once.
func (d *Decoder) Payload() ([]byte, error) {
	err := d.ReadInfo()
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(d.PCMChunk)
	if err != nil {
		return data, fmt.Errorf("failed to read PCM data: %w", err)
	}

	if len(data) < d.PCMSize {
		return data, fmt.Errorf("failed to read PCM data: got %d of %d bytes: %w",
			len(data), d.PCMSize, io.ErrUnexpectedEOF)
	}

	return data, nil
}

// FullPCMBuffer decodes the entire payload into an int buffer.
// 8-bit samples are unsigned, all other depths are signed.
func (d *Decoder) FullPCMBuffer() (*audio.IntBuffer, error) {
	data, err := d.Payload()
	if err != nil {
		return nil, err
	}

	bitDepth := int(d.fmtChunk.BitsPerSample)

	decodeF, err := sampleDecodeFunc(bitDepth)
	if err != nil {
		return nil, fmt.Errorf("could not get sample decode func: %w", err)
	}

	width := int(d.fmtChunk.BytesPerChannelSample())
	buf := &audio.IntBuffer{
		Data:           make([]int, 0, len(data)/width),
		Format:         d.Format(),
		SourceBitDepth: bitDepth,
	}

	for i := 0; i+width <= len(data); i += width {
		buf.Data = append(buf.Data, decodeF(data[i:i+width]))
	}

	return buf, nil
}

func (d *Decoder) readHeaders() error {
	if d == nil || d.parser == nil {
		return ErrPCMDataNotFound
	}

	err := d.parser.ParseHeaders()
	if err != nil {
		return fmt.Errorf("failed to read RIFF header: %w", err)
	}

	if d.parser.Format != riff.WavFormatID {
		return fmt.Errorf("%s - %w", d.parser.Format, riff.ErrFmtNotSupported)
	}

	for {
		id, size, err := d.parser.IDnSize()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrPCMDataNotFound
			}

			return fmt.Errorf("error reading chunk header: %w", err)
		}

		if id == riff.DataFormatID {
			if d.fmtChunk == nil {
				return errMissingFmtChunk
			}

			d.PCMSize = int(size)
			d.PCMChunk = &riff.Chunk{
				ID:   id,
				Size: int(size),
				R:    io.LimitReader(d.r, int64(size)),
			}

			return nil
		}

		// all chunks but data are word aligned on read, the size doesn't
		// include the padding byte.
		if size%2 == 1 {
			size++
		}

		chunk := &riff.Chunk{
			ID:   id,
			Size: int(size),
			R:    io.LimitReader(d.r, int64(size)),
		}

		if id == riff.FmtID {
			err := d.processFmtChunk(chunk)
			if err != nil {
				return err
			}

			continue
		}

		chunk.Drain()
	}
}

func (d *Decoder) processFmtChunk(chunk *riff.Chunk) error {
	fmtChunk, err := decodeFmtChunk(chunk)
	if err != nil {
		return fmt.Errorf("failed to decode fmt chunk: %w", err)
	}

	if fmtChunk.FormatTag != wavFormatPCM {
		return fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, fmtChunk.FormatTag)
	}

	d.fmtChunk = fmtChunk

	return nil
}

func decodeFmtChunk(chunk *riff.Chunk) (*FmtChunk, error) {
	if chunk.Size < pcmFmtChunkSize {
		return nil, fmt.Errorf("%w: %d bytes", errShortFmtChunk, chunk.Size)
	}

	fmtChunk := &FmtChunk{}

	err := chunk.ReadLE(&fmtChunk.FormatTag)
	if err != nil {
		return nil, fmt.Errorf("failed to read wav format: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.NumChannels)
	if err != nil {
		return nil, fmt.Errorf("failed to read channels: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample rate: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.AvgBytesPerSec)
	if err != nil {
		return nil, fmt.Errorf("failed to read avg bytes/sec: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.BlockAlign)
	if err != nil {
		return nil, fmt.Errorf("failed to read block align: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.BitsPerSample)
	if err != nil {
		return nil, fmt.Errorf("failed to read bit depth: %w", err)
	}

	// skip cbSize and any extension
	chunk.Drain()

	return fmtChunk, nil
}

// sampleDecodeFunc returns a function converting the little-endian bytes of
// one sample into an int. Note that 8bit samples are unsigned.
func sampleDecodeFunc(bitsPerSample int) (func([]byte) int, error) {
	switch {
	case bitsPerSample > 0 && bitsPerSample <= 8:
		return func(b []byte) int {
			return int(b[0])
		}, nil
	case bitsPerSample > 8 && bitsPerSample <= 16:
		return func(b []byte) int {
			return int(int16(binary.LittleEndian.Uint16(b)))
		}, nil
	case bitsPerSample > 16 && bitsPerSample <= 24:
		return func(b []byte) int {
			return int(audio.Int24LETo32(b))
		}, nil
	case bitsPerSample > 24 && bitsPerSample <= 32:
		return func(b []byte) int {
			return int(int32(binary.LittleEndian.Uint32(b)))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errUnhandledByteDepth, bitsPerSample)
	}
}
