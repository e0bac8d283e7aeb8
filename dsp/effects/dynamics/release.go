package dynamics

import "github.com/cwbudde/algo-dynamics/dsp/core"

// releaseCurve is the cubic a*x^3 + b*x^2 + c*x + d through the four
// release zones placed at x = 0, 1, 2, 3.
type releaseCurve struct {
	a, b, c, d float64
}

// solveRelease fits the release cubic. Each zone is a fraction of the
// release time, so y values are release lengths in samples.
func solveRelease(releaseSamples, zone1, zone2, zone3, zone4 float64) releaseCurve {
	y1 := releaseSamples * zone1
	y2 := releaseSamples * zone2
	y3 := releaseSamples * zone3
	y4 := releaseSamples * zone4

	return releaseCurve{
		a: (-y1 + 3*y2 - 3*y3 + y4) / 6,
		b: y1 - 2.5*y2 + 2*y3 - 0.5*y4,
		c: (-11*y1 + 18*y2 - 9*y3 + 2*y4) / 6,
		d: y1,
	}
}

func (r releaseCurve) eval(x float64) float64 {
	x2 := x * x
	return r.a*x2*x + r.b*x2 + r.c*x + r.d
}

// releaseIndex maps the current compression difference (dB, negative while
// releasing) onto the [0, 3] domain of the release curve. Anything deeper
// than -12 dB releases on the first zone.
func releaseIndex(compDiffDB float64) float64 {
	return (core.Clamp(compDiffDB, -12, 0) + 12) * 0.25
}
