package pcmwav

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
)

var (
	// ErrUnsupportedBitDepth is returned when encoding to a bit depth other
	// than 8, 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

	errNilBuffer = errors.New("can't encode a nil buffer")
	errNilFormat = errors.New("can't encode a buffer without format")
	errNilWriter = errors.New("can't write to a nil writer")
)

// Encoder writes go-audio buffers as canonical PCM containers.
// Every call to Encode produces one complete container, the payload size is
// always known before the header is written.
type Encoder struct {
	w   io.Writer
	buf *bytes.Buffer

	BitDepth int

	// WrittenBytes is the total number of bytes written to the underlying
	// writer.
	WrittenBytes int
}

// NewEncoder returns an encoder writing bitDepth PCM to w.
func NewEncoder(w io.Writer, bitDepth int) *Encoder {
	return &Encoder{
		w:        w,
		buf:      &bytes.Buffer{},
		BitDepth: bitDepth,
	}
}

// Encode converts buf and writes it as a full container.
// Float32 buffers are expected to be normalized to [-1, 1] and get clamped;
// any other buffer is converted with AsIntBuffer and its values are written
// as is, truncated to the bit depth. 8-bit output is unsigned.
func (e *Encoder) Encode(buf audio.Buffer) error {
	if e == nil || e.w == nil {
		return errNilWriter
	}

	if buf == nil {
		return errNilBuffer
	}

	format := buf.PCMFormat()
	if format == nil {
		return errNilFormat
	}

	switch e.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, e.BitDepth)
	}

	e.buf.Reset()

	if fbuf, ok := buf.(*audio.Float32Buffer); ok {
		e.addFloat32Buffer(fbuf)
	} else {
		e.addIntBuffer(buf.AsIntBuffer())
	}

	desc := NewFormatDescriptor(uint16(format.NumChannels), uint32(format.SampleRate),
		uint16(e.BitDepth/8), uint32(e.buf.Len()))

	n, err := WriteContainer(e.w, desc, e.buf.Bytes())
	e.WrittenBytes += int(n)

	return err
}

// addFloat32Buffer and addIntBuffer expect a bit depth checked by Encode.
func (e *Encoder) addFloat32Buffer(buf *audio.Float32Buffer) {
	for _, val := range buf.Data {
		if e.BitDepth == 8 {
			e.buf.WriteByte(float32ToPCMUint8(val))
			continue
		}

		e.addInt(int(float32ToPCMInt32(val, e.BitDepth)))
	}
}

func (e *Encoder) addIntBuffer(buf *audio.IntBuffer) {
	for _, val := range buf.Data {
		if e.BitDepth == 8 {
			e.buf.WriteByte(byte(val))
			continue
		}

		e.addInt(val)
	}
}

func (e *Encoder) addInt(val int) {
	var scratch [4]byte

	switch e.BitDepth {
	case 16:
		e.buf.Write(EncodeSamples(scratch[:0], []int16{int16(val)}))
	case 24:
		e.buf.Write(EncodeSamples(scratch[:0], []Int24{Int24(val)}))
	case 32:
		e.buf.Write(EncodeSamples(scratch[:0], []int32{int32(val)}))
	}
}
