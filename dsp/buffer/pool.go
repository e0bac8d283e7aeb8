package buffer

import "sync"

// Pool provides sync.Pool-based reuse of sample storage, so repeated
// compressor runs do not reallocate their delay lines. It is safe for
// concurrent use; each Get hands out storage owned by a single caller.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return new([]Sample)
			},
		},
	}
}

// Get returns a zeroed slice with length n. Callers must return it via
// Put when done.
func (p *Pool) Get(n int) ([]Sample, error) {
	sp := p.pool.Get().(*[]Sample)
	if cap(*sp) >= n && n >= 0 {
		s := (*sp)[:n]
		clear(s)
		return s, nil
	}

	p.pool.Put(sp)

	return Alloc(n)
}

// Put returns storage to the pool for reuse.
// The caller must not use the slice after calling Put.
func (p *Pool) Put(s []Sample) {
	if s == nil {
		return
	}

	s = s[:0]
	p.pool.Put(&s)
}
