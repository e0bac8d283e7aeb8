// Package thd measures the harmonic distortion a compressor adds to a sine.
//
// A time-domain signal is Hann-windowed and transformed with a real FFT.
// The fundamental is located (or taken from the configuration) and the
// amplitudes at its integer multiples are summed into THD. Probe runs a
// compressor over a sine and analyzes its settled output.
package thd
