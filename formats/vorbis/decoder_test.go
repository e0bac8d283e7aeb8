package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/formats/pcm"
	"github.com/jfreymuth/oggvorbis"
)

func TestDecoderInvalidInput(t *testing.T) {
	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("This is not Ogg Vorbis data"))); err == nil {
		t.Fatal("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoderEmptyInput(t *testing.T) {
	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); err == nil {
		t.Fatal("Decode() error = nil, want error for empty input")
	}
}

func TestDecodeUsesStreamFormat(t *testing.T) {
	orig := readAll
	t.Cleanup(func() { readAll = orig })

	readAll = func(io.Reader) ([]float32, *oggvorbis.Format, error) {
		return []float32{0.5, -0.5, 0.25, 0}, &oggvorbis.Format{SampleRate: 48000, Channels: 2}, nil
	}

	snd, err := Decoder{}.Decode(bytes.NewReader(nil))
	if err != nil {
		t.Fatal(err)
	}

	if snd.Rate != 48000 || snd.Len() != 2 {
		t.Fatalf("got rate %d len %d", snd.Rate, snd.Len())
	}
	if snd.Samples[1] != (buffer.Sample{L: 0.25, R: 0}) {
		t.Fatalf("second frame = %+v", snd.Samples[1])
	}
}

func TestFromFormat(t *testing.T) {
	mono, err := fromFormat([]float32{0.5}, &oggvorbis.Format{SampleRate: 8000, Channels: 1})
	if err != nil {
		t.Fatal(err)
	}
	if mono.Samples[0] != (buffer.Sample{L: 0.5, R: 0.5}) {
		t.Fatalf("mono sample = %+v", mono.Samples[0])
	}

	if _, err := fromFormat(nil, nil); !errors.Is(err, ErrNoFormat) {
		t.Fatalf("nil format: err = %v", err)
	}

	surround := &oggvorbis.Format{SampleRate: 48000, Channels: 6}
	if _, err := fromFormat(make([]float32, 12), surround); !errors.Is(err, pcm.ErrTooManyChannels) {
		t.Fatalf("6 channels: err = %v", err)
	}
}
