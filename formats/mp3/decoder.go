package mp3

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/formats/pcm"
	gomp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Reader is the part of gomp3.Decoder used here; tests substitute it.
type mp3Reader interface {
	io.Reader
	SampleRate() int
}

// Decoder decodes MP3 input.
type Decoder struct{}

// Decode reads and decodes a whole MP3 stream.
func (Decoder) Decode(r io.Reader) (*buffer.Sound, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3: %w", err)
	}

	return decode(dec)
}

func decode(dec mp3Reader) (*buffer.Sound, error) {
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}

	return pcm.FromInt16LE(dec.SampleRate(), 2, data)
}
