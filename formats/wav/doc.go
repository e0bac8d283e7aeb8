// Package wav reads and writes PCM WAV files as stereo sounds.
//
// Decoding accepts 16, 24 and 32-bit integer PCM with one or two channels.
// Encoding always writes two channels at 16 or 24 bits.
package wav
