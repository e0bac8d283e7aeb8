// Package mp3 decodes MPEG-1/2 Layer III streams into stereo sounds.
//
// The decoder always produces two channels of 16-bit PCM, so mono
// streams arrive already duplicated.
package mp3
