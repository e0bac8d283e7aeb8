package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-dynamics/dsp/effects/dynamics"
	"github.com/cwbudde/algo-dynamics/formats"
	"github.com/cwbudde/algo-dynamics/internal/testutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := parseArgs([]string{"in.wav", "out.wav"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.params != dynamics.DefaultParams {
		t.Fatalf("params = %+v, want defaults", cfg.params)
	}
	if cfg.tail != dynamics.TailTruncate || cfg.bitDepth != 16 {
		t.Fatalf("tail %v bits %d", cfg.tail, cfg.bitDepth)
	}
	if cfg.input != "in.wav" || cfg.output != "out.wav" {
		t.Fatalf("paths = %q %q", cfg.input, cfg.output)
	}
}

func TestParseArgsFlagsOverridePreset(t *testing.T) {
	preset := writeFile(t, "p.json", `{"threshold": -18, "ratio": 6}`)

	cfg, err := parseArgs([]string{"-preset", preset, "-ratio", "3", "-tail", "pad", "-bits", "24", "a.mp3", "b.wav"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	want := dynamics.DefaultParams
	want.Threshold = -18
	want.Ratio = 3
	if cfg.params != want {
		t.Fatalf("params = %+v, want %+v", cfg.params, want)
	}
	if cfg.tail != dynamics.TailPad || cfg.bitDepth != 24 {
		t.Fatalf("tail %v bits %d", cfg.tail, cfg.bitDepth)
	}
}

func TestParseArgsErrors(t *testing.T) {
	badPreset := writeFile(t, "bad.json", `{"treshold": -18}`)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing args", []string{"in.wav"}, errUsage},
		{"unknown format", []string{"in.flac", "out.wav"}, formats.ErrUnknownFormat},
		{"bad tail", []string{"-tail", "wrap", "in.wav", "out.wav"}, nil},
		{"bad bits", []string{"-bits", "8", "in.wav", "out.wav"}, nil},
		{"unknown preset key", []string{"-preset", badPreset, "in.wav", "out.wav"}, nil},
		{"missing preset", []string{"-preset", filepath.Join(t.TempDir(), "none.json"), "in.wav", "out.wav"}, os.ErrNotExist},
		{"unknown flag", []string{"-loud", "in.wav", "out.wav"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args, io.Discard)
			if err == nil {
				t.Fatal("parseArgs() error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("parseArgs() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunRejectsInvalidParams(t *testing.T) {
	err := run([]string{"-ratio", "0.5", "in.wav", "out.wav"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "ratio") {
		t.Fatalf("run() error = %v, want ratio validation error", err)
	}
}

func TestRunDumpPreset(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-dump-preset", "-ratio", "4"}, &out, io.Discard); err != nil {
		t.Fatal(err)
	}

	var p dynamics.Params
	if err := json.Unmarshal(out.Bytes(), &p); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}

	want := dynamics.DefaultParams
	want.Ratio = 4
	if p != want {
		t.Fatalf("dumped %+v, want %+v", p, want)
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	if err := formats.EncodeFile(in, testutil.NoiseSound(44100, 4410, 7, 0.8), 16); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-report", "-v", in, out}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v\nstderr:\n%s", err, stderr.String())
	}

	snd, err := formats.DecodeFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if snd.Rate != 44100 || snd.Len() != 4384 {
		t.Fatalf("output rate %d len %d, want 44100 and 4384", snd.Rate, snd.Len())
	}

	if !strings.Contains(stdout.String(), "change") || !strings.Contains(stdout.String(), "137 chunks") {
		t.Fatalf("report missing rows:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "level=DEBUG msg=gain") {
		t.Fatalf("debug meter records missing:\n%s", stderr.String())
	}
}

func TestRunFilePad(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	if err := formats.EncodeFile(in, testutil.NoiseSound(22050, 1000, 3, 0.5), 16); err != nil {
		t.Fatal(err)
	}

	if err := run([]string{"-tail", "pad", "-bits", "24", "-dither", "-seed", "9", in, out}, io.Discard, io.Discard); err != nil {
		t.Fatal(err)
	}

	snd, err := formats.DecodeFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if snd.Len() != 1000 {
		t.Fatalf("padded output len %d, want 1000", snd.Len())
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := run([]string{filepath.Join(dir, "none.wav"), filepath.Join(dir, "out.wav")}, io.Discard, io.Discard)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("run() error = %v, want not-exist", err)
	}
}

func TestRunProbe(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-probe", "1000", "-rate", "48000"}, &out, io.Discard); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "Fundamental [Hz]") {
		t.Fatalf("probe output:\n%s", out.String())
	}
}
