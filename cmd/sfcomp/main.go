// Command sfcomp runs a feed-forward stereo dynamic range compressor over an
// audio file and writes the result as WAV.
//
// Usage:
//
//	sfcomp [flags] input.(wav|aiff|mp3|ogg) output.wav
//	sfcomp [flags] -probe freq
//
// Parameters default to a general purpose setting. A JSON preset may
// replace them; flags given explicitly override the preset.
//
// Examples:
//
//	sfcomp in.wav out.wav
//	sfcomp -threshold -18 -ratio 4 -knee 6 song.mp3 out.wav
//	sfcomp -preset vocal.json -report take.aiff out.wav
//	sfcomp -preset vocal.json -dump-preset
//	sfcomp -probe 1000 -threshold -30
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/cwbudde/algo-dynamics/dsp/effects/dynamics"
	"github.com/cwbudde/algo-dynamics/formats"
	"github.com/cwbudde/algo-dynamics/formats/wav"
	"github.com/cwbudde/algo-dynamics/measure/thd"
	"github.com/cwbudde/algo-dynamics/stats/level"
)

const probeLength = 8192

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cfg.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	if err := cfg.params.Validate(); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	if cfg.dumpPreset {
		return writePreset(stdout, cfg.params)
	}

	if cfg.probeFreq > 0 {
		return runProbe(stdout, logger, cfg)
	}

	return runFile(stdout, logger, cfg)
}

func runFile(stdout io.Writer, logger *slog.Logger, cfg *config) error {
	in, err := formats.DecodeFile(cfg.input)
	if err != nil {
		return err
	}
	logger.Info("decoded input", "path", cfg.input, "rate", in.Rate,
		"samples", in.Len(), "duration", in.Duration())

	c, err := dynamics.NewCompressor(cfg.params, in.Rate)
	if err != nil {
		return err
	}
	logger.Debug("compressor ready", "knee_k", c.KneeSharpness(),
		"master_gain", c.MasterGain(), "delay", c.Delay())

	hist := &dynamics.GainHistory{}
	debug := logger.Enabled(context.Background(), slog.LevelDebug)
	meter := dynamics.MeterFunc(func(gainDB float64) {
		hist.Update(gainDB)
		if debug {
			logger.Debug("gain", "chunk", len(hist.Values)-1, "db", gainDB)
		}
	})

	out, err := c.Process(in, dynamics.WithMeter(meter), dynamics.WithTail(cfg.tail))
	if err != nil {
		return err
	}

	var encOpts []wav.EncodeOption
	if cfg.dither {
		var rng *rand.Rand
		if cfg.seed != 0 {
			rng = rand.New(rand.NewPCG(cfg.seed, cfg.seed))
		}
		encOpts = append(encOpts, wav.WithDither(rng))
	}

	if err := formats.EncodeFile(cfg.output, out, cfg.bitDepth, encOpts...); err != nil {
		return fmt.Errorf("%s: %w", cfg.output, err)
	}
	logger.Info("wrote output", "path", cfg.output, "samples", out.Len(),
		"bits", cfg.bitDepth, "max_reduction_db", hist.Min())

	if cfg.report {
		return writeReport(stdout, c, level.Analyze(in), level.Analyze(out), hist)
	}

	return nil
}

func runProbe(stdout io.Writer, logger *slog.Logger, cfg *config) error {
	c, err := dynamics.NewCompressor(cfg.params, cfg.rate)
	if err != nil {
		return err
	}

	logger.Info("probing", "freq", cfg.probeFreq, "amplitude", cfg.probeAmp, "rate", cfg.rate)

	res, err := thd.Probe(c, cfg.probeFreq, cfg.probeAmp, probeLength)
	if err != nil {
		return err
	}

	return writeProbe(stdout, res)
}
