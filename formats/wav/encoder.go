package wav

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/formats/pcm"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

type encodeOptions struct {
	dither bool
	rng    *rand.Rand
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeOptions)

// WithDither adds triangular dither before quantization. A nil rng draws
// a random seed.
func WithDither(rng *rand.Rand) EncodeOption {
	return func(o *encodeOptions) {
		o.dither = true
		o.rng = rng
	}
}

// Encode writes snd as stereo integer PCM. Samples outside [-1, 1) are
// saturated.
func Encode(w io.WriteSeeker, snd *buffer.Sound, bitDepth int, opts ...EncodeOption) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}

	var o encodeOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var (
		data []int
		err  error
	)
	if o.dither {
		data, err = pcm.ToIntsTPDF(snd, bitDepth, o.rng)
	} else {
		data, err = pcm.ToInts(snd, bitDepth)
	}
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(w, snd.Rate, bitDepth, 2, formatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: snd.Rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}

	return nil
}
