package dynamics

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/dsp/delay"
)

// ErrInvalidSound is returned for a nil sound, a non-positive sample rate,
// or a sound whose rate does not match the compressor.
var ErrInvalidSound = errors.New("dynamics: invalid sound")

// Compressor holds the run constants derived from one parameter set at one
// sample rate. It is immutable after construction, so a single Compressor
// may process several sounds concurrently; every Process call owns its own
// envelope state and delay line.
type Compressor struct {
	params     Params
	sampleRate int

	curve   staticCurve
	release releaseCurve

	attackSamplesInv     float64
	satReleaseSamplesInv float64
	dry                  float64
	wet                  float64
	masterGain           float64
	meterRelease         float64
	delay                int
}

// NewCompressor derives the run constants for p at sampleRate.
//
// Parameters are used as given. Values outside the documented domains are
// not clamped; see Params.Validate.
func NewCompressor(p Params, sampleRate int) (*Compressor, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive: %d", ErrInvalidSound, sampleRate)
	}

	rate := float64(sampleRate)
	c := &Compressor{
		params:               p,
		sampleRate:           sampleRate,
		curve:                solveCurve(p.Threshold, p.Knee, p.Ratio),
		attackSamplesInv:     1 / (rate * p.Attack),
		satReleaseSamplesInv: 1 / (rate * satReleaseSeconds),
		dry:                  1 - p.Wet,
		wet:                  p.Wet,
		meterRelease:         1 - math.Exp(-1/(rate*meterFalloffSeconds)),
		delay:                delay.SamplesFor(sampleRate, p.Predelay),
	}
	c.release = solveRelease(rate*p.Release,
		p.ReleaseZone1, p.ReleaseZone2, p.ReleaseZone3, p.ReleaseZone4)
	c.masterGain = masterGain(&c.curve, p.PostGain)

	return c, nil
}

// Params returns the parameter set the compressor was built from.
func (c *Compressor) Params() Params { return c.params }

// SampleRate returns the sample rate in Hz.
func (c *Compressor) SampleRate() int { return c.sampleRate }

// Delay returns the lookahead in samples.
func (c *Compressor) Delay() int { return c.delay }

// MasterGain returns the linear normalization gain including post gain.
func (c *Compressor) MasterGain() float64 { return c.masterGain }

// KneeSharpness returns the solved knee constant k.
func (c *Compressor) KneeSharpness() float64 { return c.curve.k }

// MaxGain is the upper bound of the per-sample gain, dry + wet*MasterGain.
func (c *Compressor) MaxGain() float64 { return c.dry + c.wet*c.masterGain }

// Curve evaluates the static compression curve: input amplitude to
// compressed amplitude, before master gain.
func (c *Compressor) Curve(x float64) float64 { return c.curve.eval(x) }

// OutputLen returns the number of samples Process produces for an input of
// n samples under policy.
func OutputLen(n int, policy TailPolicy) int {
	if n <= 0 {
		return 0
	}
	if policy == TailPad {
		return n
	}

	return n / chunkSize * chunkSize
}

// Process compresses snd into a newly allocated sound. snd is not modified.
//
// The run is chunked by 32 samples: attack/release decisions are made once
// per chunk, detector and gain smoothing once per sample. With the default
// TailTruncate policy the output holds 32*floor(n/32) samples. On
// allocation failure no sound is returned and all storage already drawn is
// given back.
func (c *Compressor) Process(snd *buffer.Sound, opts ...Option) (*buffer.Sound, error) {
	if snd == nil {
		return nil, fmt.Errorf("%w: nil sound", ErrInvalidSound)
	}
	if snd.Rate != c.sampleRate {
		return nil, fmt.Errorf("%w: sound rate %d, compressor rate %d",
			ErrInvalidSound, snd.Rate, c.sampleRate)
	}

	o := applyOptions(opts)

	n := snd.Len()
	outLen := OutputLen(n, o.tail)
	chunks := (outLen + chunkSize - 1) / chunkSize

	line, err := delay.New(c.delay, o.pool)
	if err != nil {
		return nil, fmt.Errorf("compressor pre-delay: %w", err)
	}
	defer line.Release()

	out, err := buffer.NewSound(snd.Rate, outLen)
	if err != nil {
		return nil, fmt.Errorf("compressor output: %w", err)
	}

	env := newEnvelope()
	in := snd.Samples
	pos := 0
	for range chunks {
		env.beginChunk(c)

		for range chunkSize {
			var s buffer.Sample
			if pos < n {
				s = in[pos]
			}

			delayed := line.Process(s)
			gain := env.step(s, c)

			if pos < outLen {
				out.Samples[pos] = buffer.Sample{L: delayed.L * gain, R: delayed.R * gain}
			}
			pos++
		}

		o.meter.Update(env.meterGain)
	}

	return out, nil
}

// Compress runs a compressor built from p over snd.
func Compress(snd *buffer.Sound, p Params, opts ...Option) (*buffer.Sound, error) {
	if snd == nil {
		return nil, fmt.Errorf("%w: nil sound", ErrInvalidSound)
	}

	c, err := NewCompressor(p, snd.Rate)
	if err != nil {
		return nil, err
	}

	return c.Process(snd, opts...)
}
