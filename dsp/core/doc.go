// Package core holds the scalar math shared by the dynamics pipeline:
// decibel/linear conversion, clamping and float comparison helpers.
package core
