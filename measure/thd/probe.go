package thd

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/dsp/effects/dynamics"
)

// settleFactor is how many analysis lengths of probe precede the analyzed
// block, giving the envelope time to reach steady state.
const settleFactor = 3

// ProbeSine returns n samples of a sine of amplitude amp at freq Hz on
// both channels.
func ProbeSine(freq, amp float64, rate, n int) (*buffer.Sound, error) {
	snd, err := buffer.NewSound(rate, n)
	if err != nil {
		return nil, err
	}

	step := 2 * math.Pi * freq / float64(rate)
	for i := range snd.Samples {
		v := amp * math.Sin(step*float64(i))
		snd.Samples[i] = buffer.Sample{L: v, R: v}
	}

	return snd, nil
}

// Probe compresses a sine with c and measures the distortion of the last n
// output samples of the left channel. The probe runs for (settleFactor+1)*n
// samples so that attack transients have passed.
func Probe(c *dynamics.Compressor, freq, amp float64, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("thd: probe length must be positive: %d", n)
	}

	in, err := ProbeSine(freq, amp, c.SampleRate(), (settleFactor+1)*n)
	if err != nil {
		return Result{}, err
	}

	out, err := c.Process(in)
	if err != nil {
		return Result{}, err
	}

	if out.Len() < n {
		return Result{}, fmt.Errorf("thd: compressor returned %d samples, need %d", out.Len(), n)
	}

	l, _ := out.Channels()

	return Analyze(l[len(l)-n:], Config{
		SampleRate:      float64(c.SampleRate()),
		FundamentalFreq: freq,
	}), nil
}
