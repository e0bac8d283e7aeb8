// Package aiff decodes AIFF files into stereo sounds.
package aiff
