package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/formats/pcm"
	"github.com/jfreymuth/oggvorbis"
)

// ErrNoFormat is returned when the stream carries no identification header.
var ErrNoFormat = errors.New("vorbis: missing format information")

// readAll is swapped out in tests.
var readAll = oggvorbis.ReadAll

// Decoder decodes Ogg Vorbis input.
type Decoder struct{}

// Decode reads and decodes a whole Ogg Vorbis stream.
func (Decoder) Decode(r io.Reader) (*buffer.Sound, error) {
	data, format, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("decoding vorbis: %w", err)
	}

	return fromFormat(data, format)
}

func fromFormat(data []float32, format *oggvorbis.Format) (*buffer.Sound, error) {
	if format == nil {
		return nil, ErrNoFormat
	}

	return pcm.FromFloat32(format.SampleRate, format.Channels, data)
}
