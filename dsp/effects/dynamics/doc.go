// Package dynamics implements a feed-forward stereo compressor with a soft
// exponential knee, adaptive release and lookahead.
//
// The static curve is solved once per parameter set: below the threshold
// the signal passes unchanged, inside the knee an exponential curve bends
// toward the ratio, and above the knee the ratio applies in the dB domain.
// A normalizing master gain maps a full-scale input to a sensible level.
//
// Processing runs in chunks of 32 samples. Each chunk picks attack or
// release from the detector state; release speed follows a cubic fitted
// through four release zones, so heavier compression releases faster.
// Per sample, a detector follows the curve's attenuation of the undelayed
// input while the resulting gain is applied to the pre-delayed input.
//
// The stereo channels are linked: the detector sees max(|L|, |R|) and the
// same gain is applied to both.
package dynamics
