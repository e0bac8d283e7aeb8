package level

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/internal/testutil"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}
	return math.Abs(a-b) <= tol
}

// generateSine creates exactly numCycles periods of a sine.
func generateSine(amplitude, freq, sampleRate float64, numCycles int) []float64 {
	samplesPerCycle := int(sampleRate / freq)
	return testutil.DeterministicSine(freq, sampleRate, amplitude, samplesPerCycle*numCycles)
}

func TestAnalyzeEmpty(t *testing.T) {
	got := Analyze(&buffer.Sound{Rate: 44100})

	if got.Length != 0 || !math.IsInf(got.RMS_dB, -1) || !math.IsInf(got.Left.Peak_dB, -1) {
		t.Fatalf("unexpected empty levels: %+v", got)
	}
	if got.CrestFactor != 0 {
		t.Fatalf("CrestFactor = %v, want 0", got.CrestFactor)
	}
}

func TestAnalyzeSine(t *testing.T) {
	x := generateSine(0.5, 1000, 48000, 10)
	got := Analyze(testutil.Mono(48000, x))

	if got.Length != len(x) {
		t.Fatalf("Length = %d, want %d", got.Length, len(x))
	}
	if !almostEqual(got.Peak, 0.5, 1e-12) {
		t.Fatalf("Peak = %v, want 0.5", got.Peak)
	}
	if !almostEqual(got.RMS, 0.5/math.Sqrt2, tolerance) {
		t.Fatalf("RMS = %v, want %v", got.RMS, 0.5/math.Sqrt2)
	}
	if !almostEqual(got.CrestFactor_dB, 20*math.Log10(math.Sqrt2), 1e-9) {
		t.Fatalf("CrestFactor_dB = %v, want ~3.01", got.CrestFactor_dB)
	}
	if !almostEqual(got.Left.DC, 0, tolerance) {
		t.Fatalf("DC = %v, want 0", got.Left.DC)
	}
	if got.Left != got.Right {
		t.Fatalf("mono channels differ: %+v vs %+v", got.Left, got.Right)
	}
}

func TestAnalyzeStereoCombinesChannels(t *testing.T) {
	n := 100
	snd := testutil.Stereo(8000, testutil.DC(1, n), testutil.DC(0, n))
	got := Analyze(snd)

	if got.Left.RMS != 1 || got.Right.RMS != 0 {
		t.Fatalf("channel RMS = %v, %v", got.Left.RMS, got.Right.RMS)
	}
	if !almostEqual(got.RMS, 1/math.Sqrt2, tolerance) {
		t.Fatalf("stereo RMS = %v, want %v", got.RMS, 1/math.Sqrt2)
	}
	if got.Peak != 1 {
		t.Fatalf("Peak = %v, want 1", got.Peak)
	}
	if got.Right.CrestFactor != 0 || !math.IsInf(got.Right.RMS_dB, -1) {
		t.Fatalf("silent channel = %+v", got.Right)
	}
}

func TestPeakPosition(t *testing.T) {
	x := testutil.Impulse(64, 17)
	y := testutil.DC(0, 64)
	y[40] = -2

	got := Analyze(testutil.Stereo(8000, x, y))
	if got.Left.PeakPos != 17 || got.Right.PeakPos != 40 {
		t.Fatalf("PeakPos = %d, %d; want 17, 40", got.Left.PeakPos, got.Right.PeakPos)
	}
	if got.Right.Peak != 2 || got.Peak != 2 {
		t.Fatalf("Peak = %v / %v, want 2", got.Right.Peak, got.Peak)
	}
}

func TestGainChange(t *testing.T) {
	x := testutil.DeterministicNoise(3, 0.8, 4096)
	half := make([]float64, len(x))
	for i, v := range x {
		half[i] = v / 2
	}

	in := Analyze(testutil.Mono(44100, x))
	out := Analyze(testutil.Mono(44100, half))
	got := GainChange(in, out)

	want := 20 * math.Log10(0.5)
	if !almostEqual(got.Peak_dB, want, 1e-9) || !almostEqual(got.RMS_dB, want, 1e-9) {
		t.Fatalf("GainChange = %+v, want %v dB", got, want)
	}
	if !almostEqual(got.CrestFactor_dB, 0, 1e-9) {
		t.Fatalf("CrestFactor_dB change = %v, want 0", got.CrestFactor_dB)
	}
}
