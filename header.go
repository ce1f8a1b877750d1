package pcmwav

import (
	"encoding/binary"

	"github.com/go-audio/riff"
)

const (
	// HeaderSize is the length of the canonical PCM header.
	HeaderSize = 44

	wavFormatPCM = 1
	// pcmFmtChunkSize is the fmt chunk body size for plain PCM.
	pcmFmtChunkSize = 16
	// headerSizeAfterRIFFSize counts the header bytes following the RIFF size
	// field: "WAVE", the fmt chunk and the data chunk header.
	headerSizeAfterRIFFSize = HeaderSize - 8
)

// FmtChunk holds the fields of a PCM fmt chunk.
type FmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
}

// FmtChunk returns the fmt chunk describing d.
func (d FormatDescriptor) FmtChunk() *FmtChunk {
	return &FmtChunk{
		FormatTag:      wavFormatPCM,
		NumChannels:    d.NumChans,
		SampleRate:     d.SampleRate,
		AvgBytesPerSec: d.ByteRate(),
		BlockAlign:     d.BlockAlign(),
		BitsPerSample:  d.BitsPerSample(),
	}
}

// Clone returns a copy of the chunk.
func (f *FmtChunk) Clone() *FmtChunk {
	if f == nil {
		return nil
	}

	out := *f

	return &out
}

// BytesPerChannelSample returns the storage width of one channel sample.
// Bit depths that aren't a multiple of 8 round up.
func (f *FmtChunk) BytesPerChannelSample() uint16 {
	if f == nil || f.BitsPerSample == 0 {
		return 0
	}

	return (f.BitsPerSample-1)/8 + 1
}

// put writes the 16 byte body of the chunk.
func (f *FmtChunk) put(b []byte) {
	binary.LittleEndian.PutUint16(b[0:2], f.FormatTag)
	binary.LittleEndian.PutUint16(b[2:4], f.NumChannels)
	binary.LittleEndian.PutUint32(b[4:8], f.SampleRate)
	binary.LittleEndian.PutUint32(b[8:12], f.AvgBytesPerSec)
	binary.LittleEndian.PutUint16(b[12:14], f.BlockAlign)
	binary.LittleEndian.PutUint16(b[14:16], f.BitsPerSample)
}

// Header serializes the canonical 44-byte header for d.
//
// Fields are written as is: zero channels or sample rate produce a
// structurally valid header, and derived values wrap on overflow (see
// Validate).
func (d FormatDescriptor) Header() [HeaderSize]byte {
	var hdr [HeaderSize]byte

	// RIFF chunk
	copy(hdr[0:4], riff.RiffID[:])
	binary.LittleEndian.PutUint32(hdr[4:8], d.RIFFSize())
	copy(hdr[8:12], riff.WavFormatID[:])

	// fmt chunk
	copy(hdr[12:16], riff.FmtID[:])
	binary.LittleEndian.PutUint32(hdr[16:20], pcmFmtChunkSize)
	d.FmtChunk().put(hdr[20:36])

	// data chunk header, the payload follows
	copy(hdr[36:40], riff.DataFormatID[:])
	binary.LittleEndian.PutUint32(hdr[40:44], d.AudioPayloadSize)

	return hdr
}

// MarshalBinary implements encoding.BinaryMarshaler. It never fails.
func (d FormatDescriptor) MarshalBinary() ([]byte, error) {
	hdr := d.Header()

	return hdr[:], nil
}
