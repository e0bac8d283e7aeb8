// Package formats selects an audio file decoder by file extension and
// loads whole files as stereo sounds.
//
// Supported inputs are WAV, AIFF, MP3 and Ogg Vorbis. Output is written
// with package wav.
package formats
