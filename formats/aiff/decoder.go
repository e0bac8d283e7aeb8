package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/formats/pcm"
	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

var (
	// ErrNotAIFF is returned when the input has no FORM/AIFF header.
	ErrNotAIFF = errors.New("aiff: not an AIFF file")
	// ErrNoFormat is returned when the COMM chunk could not be read.
	ErrNoFormat = errors.New("aiff: missing format information")
)

const readFrames = 4096

// pcmReader is the part of aiff.Decoder used here; tests substitute it.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Decoder decodes AIFF input.
type Decoder struct{}

// Decode reads a whole AIFF stream. Readers that cannot seek are buffered
// in memory first.
func (Decoder) Decode(r io.Reader) (*buffer.Sound, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAIFF
	}
	dec.ReadInfo()

	return decode(dec, int(dec.BitDepth))
}

func decode(dec pcmReader, bitDepth int) (*buffer.Sound, error) {
	format := dec.Format()
	if format == nil {
		return nil, ErrNoFormat
	}

	// Reject before reading the sample data.
	if _, err := pcm.FullScale(bitDepth); err != nil {
		return nil, err
	}

	chunk := &goaudio.IntBuffer{
		Format: format,
		Data:   make([]int, readFrames*max(format.NumChannels, 1)),
	}

	var data []int
	for {
		n, err := dec.PCMBuffer(chunk)
		data = append(data, chunk.Data[:n]...)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding aiff: %w", err)
		}
		if n == 0 || err != nil {
			break
		}
	}

	return pcm.FromInts(format.SampleRate, format.NumChannels, bitDepth, data)
}
