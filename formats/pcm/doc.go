// Package pcm converts between interleaved integer or float PCM, as
// produced by the file decoders, and the stereo buffer.Sound used by the
// compressor.
//
// Sources with one channel are duplicated to both sides. Sources with more
// than two channels are rejected with ErrTooManyChannels.
package pcm
