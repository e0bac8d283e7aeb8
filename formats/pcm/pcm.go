package pcm

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrTooManyChannels is returned for sources with more than two channels.
	ErrTooManyChannels = errors.New("pcm: more than two channels")
	// ErrNoChannels is returned when a source reports zero channels.
	ErrNoChannels = errors.New("pcm: no channels")
	// ErrUnsupportedBitDepth is returned for integer widths other than 16,
	// 24 or 32 bits.
	ErrUnsupportedBitDepth = errors.New("pcm: unsupported bit depth")
)

// FullScale returns the magnitude of the most negative integer sample at
// bitDepth, which maps to -1.0.
func FullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

func checkChannels(channels int) error {
	switch {
	case channels < 1:
		return ErrNoChannels
	case channels > 2:
		return fmt.Errorf("%w: %d", ErrTooManyChannels, channels)
	default:
		return nil
	}
}

// Deinterleave builds a sound from interleaved samples. A trailing partial
// frame is dropped.
func Deinterleave(rate, channels int, data []float64) (*buffer.Sound, error) {
	if err := checkChannels(channels); err != nil {
		return nil, err
	}

	snd, err := buffer.NewSound(rate, len(data)/channels)
	if err != nil {
		return nil, err
	}

	if channels == 1 {
		for i, v := range data {
			snd.Samples[i] = buffer.Sample{L: v, R: v}
		}
		return snd, nil
	}

	for i := range snd.Samples {
		snd.Samples[i] = buffer.Sample{L: data[2*i], R: data[2*i+1]}
	}

	return snd, nil
}

// FromInts converts interleaved integer PCM of the given width.
func FromInts(rate, channels, bitDepth int, data []int) (*buffer.Sound, error) {
	full, err := FullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	raw := make([]float64, len(data))
	for i, v := range data {
		raw[i] = float64(v)
	}

	scaled := make([]float64, len(raw))
	vecmath.ScaleBlock(scaled, raw, 1/full)

	return Deinterleave(rate, channels, scaled)
}

// FromInt16LE converts interleaved little-endian 16-bit PCM bytes. A
// trailing odd byte is ignored.
func FromInt16LE(rate, channels int, data []byte) (*buffer.Sound, error) {
	ints := make([]int, len(data)/2)
	for i := range ints {
		ints[i] = int(int16(uint16(data[2*i]) | uint16(data[2*i+1])<<8))
	}

	return FromInts(rate, channels, 16, ints)
}

// FromFloat32 converts interleaved float PCM.
func FromFloat32(rate, channels int, data []float32) (*buffer.Sound, error) {
	f := make([]float64, len(data))
	for i, v := range data {
		f[i] = float64(v)
	}

	return Deinterleave(rate, channels, f)
}

// ToInts interleaves snd into integer PCM of the given width. Values are
// rounded and saturated to the integer range; NaN becomes zero.
func ToInts(snd *buffer.Sound, bitDepth int) ([]int, error) {
	return toInts(snd, bitDepth, nil)
}

// ToIntsTPDF is ToInts with triangular dither of +-1 LSB added before
// rounding. rng makes the noise reproducible.
func ToIntsTPDF(snd *buffer.Sound, bitDepth int, rng *rand.Rand) ([]int, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return toInts(snd, bitDepth, func() float64 {
		return rng.Float64() - rng.Float64()
	})
}

func toInts(snd *buffer.Sound, bitDepth int, noise func() float64) ([]int, error) {
	full, err := FullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	l, r := snd.Channels()
	sl := make([]float64, len(l))
	sr := make([]float64, len(r))
	vecmath.ScaleBlock(sl, l, full)
	vecmath.ScaleBlock(sr, r, full)

	if noise != nil {
		for i := range sl {
			sl[i] += noise()
			sr[i] += noise()
		}
	}

	out := make([]int, 2*len(l))
	for i := range sl {
		out[2*i] = quantize(sl[i], full)
		out[2*i+1] = quantize(sr[i], full)
	}

	return out, nil
}

func quantize(v, full float64) int {
	if math.IsNaN(v) {
		return 0
	}

	v = math.Round(v)
	if v < -full {
		v = -full
	}
	if v > full-1 {
		v = full - 1
	}

	return int(v)
}
