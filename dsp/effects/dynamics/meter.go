package dynamics

import "math"

// Meter observes the compressor's gain meter, in dB, once per processed
// chunk. It has no influence on the audio path.
type Meter interface {
	Update(gainDB float64)
}

// MeterFunc adapts a plain function to the Meter interface.
type MeterFunc func(gainDB float64)

// Update calls f(gainDB).
func (f MeterFunc) Update(gainDB float64) { f(gainDB) }

type nopMeter struct{}

func (nopMeter) Update(float64) {}

// GainHistory is a Meter that records every update.
type GainHistory struct {
	Values []float64
}

// Update appends gainDB to the history.
func (h *GainHistory) Update(gainDB float64) {
	h.Values = append(h.Values, gainDB)
}

// Min returns the deepest gain reduction seen, or 0 when empty.
func (h *GainHistory) Min() float64 {
	if len(h.Values) == 0 {
		return 0
	}

	m := math.Inf(1)
	for _, v := range h.Values {
		m = math.Min(m, v)
	}

	return m
}

// Last returns the most recent value, or 0 when empty.
func (h *GainHistory) Last() float64 {
	if len(h.Values) == 0 {
		return 0
	}

	return h.Values[len(h.Values)-1]
}
