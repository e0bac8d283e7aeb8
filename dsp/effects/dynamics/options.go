package dynamics

import "github.com/cwbudde/algo-dynamics/dsp/buffer"

// TailPolicy decides what happens to the samples after the last whole
// 32-sample chunk.
type TailPolicy int

const (
	// TailTruncate drops the trailing partial chunk, so the output holds
	// 32*floor(n/32) samples.
	TailTruncate TailPolicy = iota
	// TailPad processes the partial chunk as if the input were padded with
	// silence and returns exactly n samples.
	TailPad
)

// String returns the policy name.
func (p TailPolicy) String() string {
	switch p {
	case TailTruncate:
		return "truncate"
	case TailPad:
		return "pad"
	default:
		return "unknown"
	}
}

// defaultPool backs the pre-delay storage of runs without an explicit pool.
var defaultPool = buffer.NewPool()

type options struct {
	meter Meter
	tail  TailPolicy
	pool  *buffer.Pool
}

// Option configures a single Process or Compress call.
type Option func(*options)

// WithMeter installs a meter that receives the gain meter once per chunk.
func WithMeter(m Meter) Option {
	return func(o *options) {
		if m != nil {
			o.meter = m
		}
	}
}

// WithTail selects the handling of the trailing partial chunk.
func WithTail(p TailPolicy) Option {
	return func(o *options) {
		o.tail = p
	}
}

// WithPool draws pre-delay storage from pool instead of the package pool.
func WithPool(pool *buffer.Pool) Option {
	return func(o *options) {
		if pool != nil {
			o.pool = pool
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		meter: nopMeter{},
		tail:  TailTruncate,
		pool:  defaultPool,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
