// Package delay provides the stereo lookahead line used to time-align the
// program path with a detector that runs ahead of it.
package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
)

// Line is a circular stereo delay line with a fixed integer delay.
//
// Storage holds delay+1 slots. Each Process call writes the new sample at
// the write cursor and reads the slot after it, which is the oldest one, so
// the read cursor trails the write cursor by one full buffer length.
type Line struct {
	buf      []buffer.Sample
	writePos int
	readPos  int
	pool     *buffer.Pool
}

// SamplesFor converts a delay in seconds to a whole number of samples at
// sampleRate, rounded to nearest. Negative or non-finite results map to 0.
func SamplesFor(sampleRate int, seconds float64) int {
	n := math.Round(float64(sampleRate) * seconds)
	if !(n > 0) || math.IsInf(n, 1) {
		return 0
	}

	return int(n)
}

// New returns a zeroed line delaying by delay samples. Storage is drawn
// from pool when it is non-nil; call Release to hand it back.
func New(delay int, pool *buffer.Pool) (*Line, error) {
	if delay < 0 {
		return nil, fmt.Errorf("delay must be >= 0: %d", delay)
	}

	size := delay + 1

	var (
		buf []buffer.Sample
		err error
	)
	if pool != nil {
		buf, err = pool.Get(size)
	} else {
		buf, err = buffer.Alloc(size)
	}
	if err != nil {
		return nil, fmt.Errorf("delay line: %w", err)
	}

	return &Line{
		buf:     buf,
		readPos: 1 % size,
		pool:    pool,
	}, nil
}

// Delay returns the delay in samples.
func (d *Line) Delay() int {
	return len(d.buf) - 1
}

// Process pushes s into the line and returns the sample written Delay()
// calls earlier (zero until the line has filled).
func (d *Line) Process(s buffer.Sample) buffer.Sample {
	size := len(d.buf)
	d.buf[d.writePos] = s
	out := d.buf[d.readPos]

	d.readPos = (d.readPos + 1) % size
	d.writePos = (d.writePos + 1) % size

	return out
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buf)
	d.writePos = 0
	d.readPos = 1 % len(d.buf)
}

// Release returns storage to the pool the line was built from. The line
// must not be used afterwards.
func (d *Line) Release() {
	if d.pool != nil && d.buf != nil {
		d.pool.Put(d.buf)
	}
	d.buf = nil
}
