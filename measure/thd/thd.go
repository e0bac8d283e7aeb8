package thd

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-dynamics/dsp/window"
)

const (
	defaultRangeLowerHz = 20.0
	defaultRangeUpperHz = 20000.0
)

// Config holds THD calculation parameters.
type Config struct {
	SampleRate      float64
	FFTSize         int     // 0 selects the next power of two >= len(signal)
	FundamentalFreq float64 // 0 searches for the strongest bin
	RangeLowerFreq  float64
	RangeUpperFreq  float64
	CaptureBins     int         // bins summed either side of a peak; 0 uses the window's main lobe
	MaxHarmonics    int         // 0 means every harmonic inside the range
	WindowType      window.Type // 0 (rectangular) selects Hann
}

// Result holds THD measurement results. Ratios are relative to the
// fundamental amplitude.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64
	THD              float64
	THDN             float64
	THD_dB           float64
	THDN_dB          float64
	OddHD            float64
	EvenHD           float64
	Noise            float64
	Harmonics        []float64 // H2, H3, ...
	SINAD            float64
}

func normalizeConfig(cfg Config) Config {
	if cfg.RangeLowerFreq <= 0 {
		cfg.RangeLowerFreq = defaultRangeLowerHz
	}

	if cfg.RangeUpperFreq <= 0 {
		cfg.RangeUpperFreq = defaultRangeUpperHz
	}

	if cfg.RangeUpperFreq < cfg.RangeLowerFreq {
		cfg.RangeUpperFreq = cfg.RangeLowerFreq
	}

	if cfg.WindowType == 0 {
		cfg.WindowType = window.TypeHann
	}

	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = window.MainLobeBins(cfg.WindowType)
	}

	if cfg.MaxHarmonics < 0 {
		cfg.MaxHarmonics = 0
	}

	return cfg
}

// Analyze windows signal, transforms it and evaluates THD metrics.
// An empty signal or a failed transform yields a zero Result.
func Analyze(signal []float64, cfg Config) Result {
	if len(signal) == 0 {
		return Result{}
	}

	cfg = normalizeConfig(cfg)

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	if fftSize <= 1 {
		return Result{}
	}

	n := min(len(signal), fftSize)
	windowed := make([]float64, n)
	copy(windowed, signal[:n])
	window.Apply(cfg.WindowType, windowed, window.WithPeriodic())

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	magSquared := make([]float64, bins)
	vecmath.Power(magSquared, re, im)

	cfg.FFTSize = fftSize
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = float64(fftSize)
	}

	return AnalyzeMagnitude(magSquared, cfg)
}

// AnalyzeMagnitude computes THD metrics from a squared-magnitude spectrum
// holding the bins [0..Nyquist].
//
//nolint:cyclop,funlen
func AnalyzeMagnitude(magSquared []float64, cfg Config) Result {
	if len(magSquared) <= 1 {
		return Result{}
	}

	cfg = normalizeConfig(cfg)
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = 2 * (len(magSquared) - 1)
	}

	if cfg.SampleRate <= 0 {
		cfg.SampleRate = float64(cfg.FFTSize)
	}

	maxBin := len(magSquared) - 1
	binHz := cfg.SampleRate / float64(cfg.FFTSize)

	lowerBin := clampInt(int(math.Round(cfg.RangeLowerFreq/binHz)), 1, maxBin)
	upperBin := clampInt(int(math.Round(cfg.RangeUpperFreq/binHz)), lowerBin, maxBin)

	fundamentalBin := findFundamentalBin(magSquared, cfg.FundamentalFreq, binHz, lowerBin, upperBin)

	captureBins := cfg.CaptureBins
	if captureBins*2 > fundamentalBin {
		captureBins = fundamentalBin / 2
	}

	fundamentalLevel := binValue(magSquared, fundamentalBin, captureBins)
	if fundamentalLevel <= 0 {
		return Result{FundamentalFreq: float64(fundamentalBin) * binHz}
	}

	var thdAbs, oddAbs, evenAbs float64
	harmonics := make([]float64, 0, 8)

	for k := 2; ; k++ {
		if cfg.MaxHarmonics > 0 && k-1 > cfg.MaxHarmonics {
			break
		}

		bin := k * fundamentalBin
		if bin > upperBin {
			break
		}

		value := binValue(magSquared, bin, captureBins)
		thdAbs += value
		if k%2 == 0 {
			evenAbs += value
		} else {
			oddAbs += value
		}

		harmonics = append(harmonics, value/fundamentalLevel)
	}

	var totalAbs float64
	for i := lowerBin; i <= upperBin; i++ {
		totalAbs += sqrtPositive(magSquared[i])
	}

	thdnAbs := math.Max(totalAbs-fundamentalLevel, 0)
	noiseAbs := math.Max(thdnAbs-thdAbs, 0)

	thd := thdAbs / fundamentalLevel
	thdn := thdnAbs / fundamentalLevel

	sinad := math.Inf(1)
	if thdn > 0 {
		sinad = -ratioToDB(thdn)
	}

	return Result{
		FundamentalFreq:  float64(fundamentalBin) * binHz,
		FundamentalLevel: fundamentalLevel,
		THD:              thd,
		THDN:             thdn,
		THD_dB:           ratioToDB(thd),
		THDN_dB:          ratioToDB(thdn),
		OddHD:            oddAbs / fundamentalLevel,
		EvenHD:           evenAbs / fundamentalLevel,
		Noise:            noiseAbs / fundamentalLevel,
		Harmonics:        harmonics,
		SINAD:            sinad,
	}
}

func findFundamentalBin(magSquared []float64, freq, binHz float64, lowerBin, upperBin int) int {
	if freq > 0 {
		return clampInt(int(math.Round(freq/binHz)), lowerBin, upperBin)
	}

	bestBin := lowerBin
	bestVal := -1.0

	for i := lowerBin; i <= upperBin; i++ {
		if magSquared[i] > bestVal {
			bestVal = magSquared[i]
			bestBin = i
		}
	}

	return bestBin
}

// binValue sums amplitudes over bin +- captureBins.
func binValue(magSquared []float64, bin, captureBins int) float64 {
	lo := max(bin-captureBins, 0)
	hi := min(bin+captureBins, len(magSquared)-1)

	var sum float64
	for i := lo; i <= hi; i++ {
		sum += sqrtPositive(magSquared[i])
	}

	return sum
}

func sqrtPositive(v float64) float64 {
	if v <= 0 {
		return 0
	}

	return math.Sqrt(v)
}

func ratioToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}

	if val > hi {
		return hi
	}

	return val
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
