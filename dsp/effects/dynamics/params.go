package dynamics

import (
	"errors"
	"fmt"
	"math"
)

// Params is the immutable parameter set for one compressor run.
//
// The compressor does not validate or clamp these values; behavior outside
// the documented domains is the caller's responsibility. Validate reports
// out-of-domain values for callers that want to reject them up front.
type Params struct {
	Threshold    float64 `json:"threshold"`    // dB, [-100, 0]
	Knee         float64 `json:"knee"`         // dB, [0, 40]
	Ratio        float64 `json:"ratio"`        // [1, 20]
	Attack       float64 `json:"attack"`       // seconds, [0, 1]
	Release      float64 `json:"release"`      // seconds, [0, 1]
	Predelay     float64 `json:"predelay"`     // seconds, >= 0
	ReleaseZone1 float64 `json:"releasezone1"` // (0, 1], ascending
	ReleaseZone2 float64 `json:"releasezone2"`
	ReleaseZone3 float64 `json:"releasezone3"`
	ReleaseZone4 float64 `json:"releasezone4"`
	PostGain     float64 `json:"postgain"` // dB
	Wet          float64 `json:"wet"`      // [0, 1]
}

// DefaultParams is a generally useful configuration: a -24 dB threshold,
// 30 dB soft knee and 12:1 ratio with fast attack and quarter-second release.
var DefaultParams = Params{
	Threshold:    -24.0,
	Knee:         30.0,
	Ratio:        12.0,
	Attack:       0.003,
	Release:      0.250,
	Predelay:     0.006,
	ReleaseZone1: 0.090,
	ReleaseZone2: 0.160,
	ReleaseZone3: 0.420,
	ReleaseZone4: 0.980,
	PostGain:     0.0,
	Wet:          1.0,
}

// Validate reports every parameter outside its documented domain.
func (p Params) Validate() error {
	var errs []error

	check := func(name string, v, lo, hi float64) {
		if math.IsNaN(v) || v < lo || v > hi {
			errs = append(errs, fmt.Errorf("%s must be in [%g, %g]: %g", name, lo, hi, v))
		}
	}

	check("threshold", p.Threshold, -100, 0)
	check("knee", p.Knee, 0, 40)
	check("ratio", p.Ratio, 1, 20)
	check("attack", p.Attack, 0, 1)
	check("release", p.Release, 0, 1)
	check("predelay", p.Predelay, 0, math.MaxFloat64)
	check("wet", p.Wet, 0, 1)

	if math.IsNaN(p.PostGain) || math.IsInf(p.PostGain, 0) {
		errs = append(errs, fmt.Errorf("postgain must be finite: %g", p.PostGain))
	}

	zones := []float64{p.ReleaseZone1, p.ReleaseZone2, p.ReleaseZone3, p.ReleaseZone4}
	for i, z := range zones {
		if math.IsNaN(z) || z <= 0 || z > 1 {
			errs = append(errs, fmt.Errorf("releasezone%d must be in (0, 1]: %g", i+1, z))
		}
		if i > 0 && z < zones[i-1] {
			errs = append(errs, fmt.Errorf("releasezone%d must not be below releasezone%d", i+1, i))
		}
	}

	return errors.Join(errs...)
}
