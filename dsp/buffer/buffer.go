package buffer

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// MaxSamples bounds a single allocation. Requests above it fail with
// ErrAllocation instead of reaching the runtime allocator.
const MaxSamples = 1 << 30

// ErrAllocation is returned when sample storage cannot be allocated.
var ErrAllocation = errors.New("buffer: allocation failed")

// Sample is one stereo frame. No range is enforced; [-1, 1] is the usual
// convention but excursions pass through untouched.
type Sample struct {
	L float64
	R float64
}

// Sound is an ordered run of stereo samples at a fixed sample rate.
type Sound struct {
	Rate    int
	Samples []Sample
}

// Alloc returns a zeroed sample slice of length n. Negative or oversize
// lengths, and runtime allocation panics, are reported as ErrAllocation.
func Alloc(n int) (s []Sample, err error) {
	if n < 0 || n > MaxSamples {
		return nil, fmt.Errorf("%w: %d samples", ErrAllocation, n)
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			s = nil
			err = fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()

	return make([]Sample, n), nil
}

// NewSound allocates a silent sound of length samples at rate.
func NewSound(rate, length int) (*Sound, error) {
	samples, err := Alloc(length)
	if err != nil {
		return nil, err
	}

	return &Sound{Rate: rate, Samples: samples}, nil
}

// FromChannels builds a sound from separate left and right slices.
// The shorter slice determines the length.
func FromChannels(rate int, l, r []float64) (*Sound, error) {
	n := min(len(l), len(r))

	snd, err := NewSound(rate, n)
	if err != nil {
		return nil, err
	}

	for i := range n {
		snd.Samples[i] = Sample{L: l[i], R: r[i]}
	}

	return snd, nil
}

// Len returns the number of stereo samples.
func (s *Sound) Len() int {
	if s == nil {
		return 0
	}

	return len(s.Samples)
}

// Duration returns the playing time of the sound.
func (s *Sound) Duration() time.Duration {
	if s == nil || s.Rate <= 0 {
		return 0
	}

	return time.Duration(float64(len(s.Samples)) / float64(s.Rate) * float64(time.Second))
}

// Channels splits the sound into freshly allocated left and right slices.
func (s *Sound) Channels() (l, r []float64) {
	n := s.Len()
	l = make([]float64, n)
	r = make([]float64, n)
	for i := range n {
		l[i] = s.Samples[i].L
		r[i] = s.Samples[i].R
	}

	return l, r
}

// Clone returns a deep copy of the sound.
func (s *Sound) Clone() (*Sound, error) {
	out, err := NewSound(s.Rate, s.Len())
	if err != nil {
		return nil, err
	}

	copy(out.Samples, s.Samples)

	return out, nil
}
