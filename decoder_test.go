package pcmwav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/go-audio/riff"
)

// buildContainer assembles a RIFF/WAVE file from already serialized chunks.
func buildContainer(chunks ...[]byte) []byte {
	body := []byte("WAVE")
	for _, c := range chunks {
		body = append(body, c...)
	}

	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))

	return append(out, body...)
}

func fmtBody(formatTag, numChans uint16, sampleRate uint32, bits uint16) []byte {
	width := (bits + 7) / 8
	chunk := FmtChunk{
		FormatTag:      formatTag,
		NumChannels:    numChans,
		SampleRate:     sampleRate,
		AvgBytesPerSec: sampleRate * uint32(width*numChans),
		BlockAlign:     width * numChans,
		BitsPerSample:  bits,
	}

	b := make([]byte, pcmFmtChunkSize)
	chunk.put(b)

	return b
}

func TestReadHeaderRoundTrip(t *testing.T) {
	samples := []int16{10, -10, 300, -300, 7, 8}
	desc := DescriptorFor(2, 32000, samples)

	out, err := Assemble(desc, samples)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	r := bytes.NewReader(out)

	got, err := ReadHeader(r)
	if err != nil {
		t.Fatalf("read header: %v", err)
	}

	if got != desc {
		t.Fatalf("descriptor=%+v, want %+v", got, desc)
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(rest, out[HeaderSize:]) {
		t.Fatal("expected the reader to be left at the start of the payload")
	}
}

func TestDecoderSkipsUnknownChunks(t *testing.T) {
	payload := []byte{1, 0, 2, 0}
	data := buildContainer(
		chunkBytes("fmt ", fmtBody(1, 1, 8000, 16)),
		chunkBytes("LIST", []byte("INFOx")),
		chunkBytes("data", payload),
	)

	chunks, err := parseWavChunks(data)
	if err != nil {
		t.Fatalf("test container is malformed: %v", err)
	}

	if list, idx := findChunk(chunks, "LIST"); list == nil || idx != 1 {
		t.Fatalf("expected LIST as second chunk, got index %d", idx)
	}

	dec := NewDecoder(bytes.NewReader(data))

	got, err := dec.Payload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}

	if !bytes.Equal(got, payload) {
		t.Fatalf("payload=%v, want %v", got, payload)
	}

	if want := NewFormatDescriptor(1, 8000, 2, 4); dec.Descriptor() != want {
		t.Fatalf("descriptor=%+v, want %+v", dec.Descriptor(), want)
	}
}

func TestDecoderExtendedFmtChunk(t *testing.T) {
	// PCM fmt chunk carrying a zero cbSize
	body := append(fmtBody(1, 2, 44100, 24), 0, 0)
	data := buildContainer(
		chunkBytes("fmt ", body),
		chunkBytes("data", make([]byte, 12)),
	)

	desc, err := ReadHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("read header: %v", err)
	}

	if want := NewFormatDescriptor(2, 44100, 3, 12); desc != want {
		t.Fatalf("descriptor=%+v, want %+v", desc, want)
	}
}

func TestDecoderErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			"not riff",
			append([]byte("RIFX"), make([]byte, 40)...),
			riff.ErrFmtNotSupported,
		},
		{
			"not wave",
			append([]byte("RIFF\x04\x00\x00\x00AVI "), chunkBytes("data", nil)...),
			riff.ErrFmtNotSupported,
		},
		{
			"float format",
			buildContainer(chunkBytes("fmt ", fmtBody(3, 1, 8000, 32)), chunkBytes("data", make([]byte, 4))),
			ErrUnsupportedFormat,
		},
		{
			"missing data",
			buildContainer(chunkBytes("fmt ", fmtBody(1, 1, 8000, 16))),
			ErrPCMDataNotFound,
		},
		{
			"data before fmt",
			buildContainer(chunkBytes("data", make([]byte, 4)), chunkBytes("fmt ", fmtBody(1, 1, 8000, 16))),
			errMissingFmtChunk,
		},
		{
			"short fmt",
			buildContainer(chunkBytes("fmt ", make([]byte, 8)), chunkBytes("data", nil)),
			errShortFmtChunk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := NewDecoder(bytes.NewReader(tt.data))

			err := dec.ReadInfo()
			if err == nil {
				t.Fatal("expected an error")
			}

			// riff formats some of its errors without wrapping them
			if !errors.Is(err, tt.wantErr) && !strings.Contains(err.Error(), tt.wantErr.Error()) {
				t.Fatalf("error=%v, want %v", err, tt.wantErr)
			}

			if again := dec.ReadInfo(); again != err {
				t.Fatalf("second ReadInfo=%v, want the cached %v", again, err)
			}

			if dec.Err() != err {
				t.Fatalf("Err()=%v, want %v", dec.Err(), err)
			}
		})
	}
}

func TestDecoderShortPayload(t *testing.T) {
	samples := []int16{1, 2, 3, 4}

	out, err := Assemble(DescriptorFor(1, 8000, samples), samples)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	dec := NewDecoder(bytes.NewReader(out[:len(out)-3]))

	_, err = dec.Payload()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("error=%v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestDecoderFullPCMBuffer(t *testing.T) {
	tests := []struct {
		name  string
		build func() ([]byte, error)
		want  []int
		bits  int
	}{
		{"8bit", func() ([]byte, error) {
			s := []uint8{0, 128, 255, 1}
			return Assemble(DescriptorFor(1, 8000, s), s)
		}, []int{0, 128, 255, 1}, 8},
		{"16bit", func() ([]byte, error) {
			s := []int16{-32768, 0, 32767, -1}
			return Assemble(DescriptorFor(2, 8000, s), s)
		}, []int{-32768, 0, 32767, -1}, 16},
		{"24bit", func() ([]byte, error) {
			s := []Int24{-8388608, 8388607}
			return Assemble(DescriptorFor(1, 8000, s), s)
		}, []int{-8388608, 8388607}, 24},
		{"32bit", func() ([]byte, error) {
			s := []int32{-2147483648, 2147483647}
			return Assemble(DescriptorFor(1, 8000, s), s)
		}, []int{-2147483648, 2147483647}, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.build()
			if err != nil {
				t.Fatalf("assemble: %v", err)
			}

			buf, err := NewDecoder(bytes.NewReader(data)).FullPCMBuffer()
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			if buf.SourceBitDepth != tt.bits {
				t.Fatalf("bit depth=%d, want %d", buf.SourceBitDepth, tt.bits)
			}

			if len(buf.Data) != len(tt.want) {
				t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(tt.want))
			}

			for i := range tt.want {
				if buf.Data[i] != tt.want[i] {
					t.Fatalf("sample %d=%d, want %d", i, buf.Data[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecoderUnhandledBitDepth(t *testing.T) {
	out, err := Assemble(NewFormatDescriptor(1, 8000, 8, 8), make([]byte, 8))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	_, err = NewDecoder(bytes.NewReader(out)).FullPCMBuffer()
	if !errors.Is(err, errUnhandledByteDepth) {
		t.Fatalf("error=%v, want %v", err, errUnhandledByteDepth)
	}
}

func TestDecoderFmtChunkIsACopy(t *testing.T) {
	out, err := Assemble(NewFormatDescriptor(1, 8000, 2, 0), []byte{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	dec := NewDecoder(bytes.NewReader(out))
	if err := dec.ReadInfo(); err != nil {
		t.Fatalf("read info: %v", err)
	}

	chunk := dec.FmtChunk()
	chunk.SampleRate = 1

	if dec.FmtChunk().SampleRate != 8000 {
		t.Fatal("FmtChunk should return a copy")
	}

	if f := dec.Format(); f.NumChannels != 1 || f.SampleRate != 8000 {
		t.Fatalf("format=%+v, want mono at 8000 Hz", f)
	}
}

func TestDecoderNilReceiver(t *testing.T) {
	var dec *Decoder

	if dec.FmtChunk() != nil {
		t.Fatal("expected nil fmt chunk")
	}

	if dec.Format() != nil {
		t.Fatal("expected nil format")
	}

	if dec.Descriptor() != (FormatDescriptor{}) {
		t.Fatal("expected empty descriptor")
	}

	if err := dec.ReadInfo(); !errors.Is(err, ErrPCMDataNotFound) {
		t.Fatalf("ReadInfo()=%v, want %v", err, ErrPCMDataNotFound)
	}

	if _, err := dec.Payload(); !errors.Is(err, ErrPCMDataNotFound) {
		t.Fatalf("Payload()=%v, want %v", err, ErrPCMDataNotFound)
	}

	if _, err := dec.FullPCMBuffer(); !errors.Is(err, ErrPCMDataNotFound) {
		t.Fatalf("FullPCMBuffer()=%v, want %v", err, ErrPCMDataNotFound)
	}
}
