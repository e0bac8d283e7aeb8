package wav

import "errors"

var (
	// ErrNotWAV is returned when the input has no RIFF/WAVE header.
	ErrNotWAV = errors.New("wav: not a WAV file")
	// ErrNotPCM is returned for compressed or floating point WAV data.
	ErrNotPCM = errors.New("wav: only integer PCM is supported")
	// ErrBitDepth is returned when encoding at a width other than 16 or 24.
	ErrBitDepth = errors.New("wav: output bit depth must be 16 or 24")
)
