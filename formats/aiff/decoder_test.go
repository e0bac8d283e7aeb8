package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/formats/pcm"
	goaudio "github.com/go-audio/audio"
)

// mockAiffReader hands out samples in small pieces like the real decoder.
type mockAiffReader struct {
	format  *goaudio.Format
	samples []int
	offset  int
	step    int
	err     error
}

func (m *mockAiffReader) Format() *goaudio.Format { return m.format }

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, nil
	}

	n := min(len(buf.Data), m.step, len(m.samples)-m.offset)
	copy(buf.Data, m.samples[m.offset:m.offset+n])
	m.offset += n

	return n, nil
}

func TestDecoderInvalidInput(t *testing.T) {
	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not AIFF data")))
	if !errors.Is(err, ErrNotAIFF) {
		t.Fatalf("Decode() error = %v, want ErrNotAIFF", err)
	}
}

func TestDecoderEmptyInput(t *testing.T) {
	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); err == nil {
		t.Fatal("Decode() error = nil, want error for empty input")
	}
}

func TestDecodeCollectsAllChunks(t *testing.T) {
	m := &mockAiffReader{
		format:  &goaudio.Format{NumChannels: 2, SampleRate: 22050},
		samples: []int{16384, -16384, 8192, -8192, 0, 32767},
		step:    4,
	}

	snd, err := decode(m, 16)
	if err != nil {
		t.Fatal(err)
	}

	if snd.Rate != 22050 || snd.Len() != 3 {
		t.Fatalf("got rate %d len %d", snd.Rate, snd.Len())
	}
	if snd.Samples[1] != (buffer.Sample{L: 0.25, R: -0.25}) {
		t.Fatalf("second frame = %+v", snd.Samples[1])
	}
}

func TestDecodeMono(t *testing.T) {
	m := &mockAiffReader{
		format:  &goaudio.Format{NumChannels: 1, SampleRate: 8000},
		samples: []int{4194304, -4194304},
		step:    1,
	}

	snd, err := decode(m, 24)
	if err != nil {
		t.Fatal(err)
	}

	if snd.Samples[0] != (buffer.Sample{L: 0.5, R: 0.5}) || snd.Samples[1] != (buffer.Sample{L: -0.5, R: -0.5}) {
		t.Fatalf("samples = %+v", snd.Samples)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		reader *mockAiffReader
		bits   int
		want   error
	}{
		{"no format", &mockAiffReader{}, 16, ErrNoFormat},
		{"bit depth", &mockAiffReader{format: &goaudio.Format{NumChannels: 2, SampleRate: 8000}}, 8, pcm.ErrUnsupportedBitDepth},
		{"channels", &mockAiffReader{format: &goaudio.Format{NumChannels: 4, SampleRate: 8000}, samples: make([]int, 8), step: 8}, 16, pcm.ErrTooManyChannels},
		{"read", &mockAiffReader{format: &goaudio.Format{NumChannels: 2, SampleRate: 8000}, err: io.ErrUnexpectedEOF}, 16, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decode(tt.reader, tt.bits); !errors.Is(err, tt.want) {
				t.Fatalf("decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}
