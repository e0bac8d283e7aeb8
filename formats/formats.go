package formats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/formats/aiff"
	"github.com/cwbudde/algo-dynamics/formats/mp3"
	"github.com/cwbudde/algo-dynamics/formats/pcm"
	"github.com/cwbudde/algo-dynamics/formats/vorbis"
	"github.com/cwbudde/algo-dynamics/formats/wav"
)

var (
	// ErrUnknownFormat is returned for file extensions without a decoder.
	ErrUnknownFormat = errors.New("formats: unknown file format")
	// ErrTooManyChannels is returned for sources with more than two channels.
	ErrTooManyChannels = pcm.ErrTooManyChannels
)

// Decoder reads a whole stream into a stereo sound.
type Decoder interface {
	Decode(r io.Reader) (*buffer.Sound, error)
}

var decoders = map[string]Decoder{
	".wav":  wav.Decoder{},
	".wave": wav.Decoder{},
	".aif":  aiff.Decoder{},
	".aiff": aiff.Decoder{},
	".mp3":  mp3.Decoder{},
	".ogg":  vorbis.Decoder{},
	".oga":  vorbis.Decoder{},
}

// ForPath returns the decoder for path's extension, ignoring case.
func ForPath(path string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if d, ok := decoders[ext]; ok {
		return d, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// Extensions lists the supported file extensions.
func Extensions() []string {
	out := make([]string, 0, len(decoders))
	for ext := range decoders {
		out = append(out, ext)
	}
	slices.Sort(out)

	return out
}

// DecodeFile opens and decodes the file at path.
func DecodeFile(path string) (*buffer.Sound, error) {
	dec, err := ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snd, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return snd, nil
}

// EncodeFile writes snd to path as stereo WAV at bitDepth.
func EncodeFile(path string, snd *buffer.Sound, bitDepth int, opts ...wav.EncodeOption) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return wav.Encode(f, snd, bitDepth, opts...)
}
