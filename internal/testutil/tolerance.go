package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
)

// RequireSoundNearlyEqual fails t if the sounds differ in rate or length,
// or if any channel pair differs by more than eps (absolute tolerance).
func RequireSoundNearlyEqual(t *testing.T, got, want *buffer.Sound, eps float64) {
	t.Helper()
	if got.Rate != want.Rate {
		t.Fatalf("rate mismatch: got %d, want %d", got.Rate, want.Rate)
	}
	if got.Len() != want.Len() {
		t.Fatalf("length mismatch: got %d, want %d", got.Len(), want.Len())
	}
	for i := range got.Samples {
		g, w := got.Samples[i], want.Samples[i]
		if math.Abs(g.L-w.L) > eps || math.Abs(g.R-w.R) > eps {
			t.Fatalf("index %d: got %v, want %v (eps %v)", i, g, w, eps)
		}
	}
}

// RequireFinite fails t if any channel value is NaN or Inf.
func RequireFinite(t *testing.T, snd *buffer.Sound) {
	t.Helper()
	for i, s := range snd.Samples {
		if !finite(s.L) || !finite(s.R) {
			t.Fatalf("index %d: non-finite sample %v", i, s)
		}
	}
}

// MaxAbsDiff returns the maximum absolute per-channel difference between
// two sounds. Returns an error if the lengths differ.
func MaxAbsDiff(a, b *buffer.Sound) (float64, error) {
	if a.Len() != b.Len() {
		return 0, fmt.Errorf("length mismatch: %d vs %d", a.Len(), b.Len())
	}
	maxDiff := 0.0
	for i := range a.Samples {
		maxDiff = math.Max(maxDiff, math.Abs(a.Samples[i].L-b.Samples[i].L))
		maxDiff = math.Max(maxDiff, math.Abs(a.Samples[i].R-b.Samples[i].R))
	}
	return maxDiff, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
