package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-dynamics/dsp/effects/dynamics"
	"github.com/cwbudde/algo-dynamics/formats"
)

// config is the resolved command line.
type config struct {
	params     dynamics.Params
	tail       dynamics.TailPolicy
	bitDepth   int
	dither     bool
	seed       uint64
	report     bool
	verbose    bool
	dumpPreset bool

	probeFreq float64
	probeAmp  float64
	rate      int

	input  string
	output string
}

var errUsage = errors.New("usage: sfcomp [flags] input output.wav")

// paramFlags maps flag names to the parameter they set.
var paramFlags = []struct {
	name  string
	usage string
	field func(*dynamics.Params) *float64
}{
	{"threshold", "threshold in dB", func(p *dynamics.Params) *float64 { return &p.Threshold }},
	{"knee", "knee width in dB above the threshold", func(p *dynamics.Params) *float64 { return &p.Knee }},
	{"ratio", "compression ratio above the knee", func(p *dynamics.Params) *float64 { return &p.Ratio }},
	{"attack", "attack time in seconds", func(p *dynamics.Params) *float64 { return &p.Attack }},
	{"release", "release time in seconds", func(p *dynamics.Params) *float64 { return &p.Release }},
	{"predelay", "lookahead in seconds", func(p *dynamics.Params) *float64 { return &p.Predelay }},
	{"releasezone1", "adaptive release zone 1", func(p *dynamics.Params) *float64 { return &p.ReleaseZone1 }},
	{"releasezone2", "adaptive release zone 2", func(p *dynamics.Params) *float64 { return &p.ReleaseZone2 }},
	{"releasezone3", "adaptive release zone 3", func(p *dynamics.Params) *float64 { return &p.ReleaseZone3 }},
	{"releasezone4", "adaptive release zone 4", func(p *dynamics.Params) *float64 { return &p.ReleaseZone4 }},
	{"postgain", "makeup gain in dB", func(p *dynamics.Params) *float64 { return &p.PostGain }},
	{"wet", "wet/dry mix, 0 is dry and 1 is fully compressed", func(p *dynamics.Params) *float64 { return &p.Wet }},
}

func parseArgs(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("sfcomp", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var flagParams dynamics.Params
	defaults := dynamics.DefaultParams
	for _, pf := range paramFlags {
		fs.Float64Var(pf.field(&flagParams), pf.name, *pf.field(&defaults), pf.usage)
	}

	preset := fs.String("preset", "", "JSON parameter preset; explicit flags override it")
	tail := fs.String("tail", "truncate", "trailing partial chunk: truncate or pad")
	bits := fs.Int("bits", 16, "output bit depth: 16 or 24")
	dither := fs.Bool("dither", false, "add triangular dither when quantizing the output")
	seed := fs.Uint64("seed", 0, "dither seed; 0 picks a random one")
	report := fs.Bool("report", false, "print level statistics of input and output")
	verbose := fs.Bool("v", false, "debug logging, including the per-chunk gain meter")
	dump := fs.Bool("dump-preset", false, "print the effective parameters as JSON and exit")
	probe := fs.Float64("probe", 0, "measure distortion on a sine of this frequency instead of processing a file")
	amp := fs.Float64("amp", 0.5, "probe amplitude")
	rate := fs.Int("rate", 44100, "probe sample rate in Hz")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sfcomp [flags] input.(wav|aiff|mp3|ogg) output.wav\n")
		fmt.Fprintf(stderr, "       sfcomp [flags] -probe freq\n\n")
		fmt.Fprintf(stderr, "Compresses the dynamic range of a stereo audio file.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &config{
		params:     dynamics.DefaultParams,
		bitDepth:   *bits,
		dither:     *dither,
		seed:       *seed,
		report:     *report,
		verbose:    *verbose,
		dumpPreset: *dump,
		probeFreq:  *probe,
		probeAmp:   *amp,
		rate:       *rate,
	}

	if *preset != "" {
		p, err := loadPreset(*preset)
		if err != nil {
			return nil, err
		}
		cfg.params = p
	}

	byName := make(map[string]func(*dynamics.Params) *float64, len(paramFlags))
	for _, pf := range paramFlags {
		byName[pf.name] = pf.field
	}
	fs.Visit(func(f *flag.Flag) {
		if field, ok := byName[f.Name]; ok {
			*field(&cfg.params) = *field(&flagParams)
		}
	})

	switch *tail {
	case "truncate":
		cfg.tail = dynamics.TailTruncate
	case "pad":
		cfg.tail = dynamics.TailPad
	default:
		return nil, fmt.Errorf("unknown -tail %q (want truncate or pad)", *tail)
	}

	if cfg.bitDepth != 16 && cfg.bitDepth != 24 {
		return nil, fmt.Errorf("-bits must be 16 or 24: %d", cfg.bitDepth)
	}

	if cfg.dumpPreset || cfg.probeFreq > 0 {
		return cfg, nil
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return nil, errUsage
	}
	cfg.input, cfg.output = fs.Arg(0), fs.Arg(1)

	if _, err := formats.ForPath(cfg.input); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadPreset reads a JSON preset. Keys missing from the file keep their
// default values; unknown keys are rejected.
func loadPreset(path string) (dynamics.Params, error) {
	p := dynamics.DefaultParams

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read preset: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("parse preset %s: %w", path, err)
	}

	return p, nil
}

func writePreset(w io.Writer, p dynamics.Params) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preset: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n", data)

	return err
}
