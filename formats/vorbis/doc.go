// Package vorbis decodes Ogg Vorbis streams into stereo sounds.
package vorbis
