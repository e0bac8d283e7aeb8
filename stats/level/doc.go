// Package level measures peak, RMS and crest factor of stereo sounds and
// summarizes the level change between an input and its processed output.
package level
