package refcount

import "sync/atomic"

// A Releaser pairs a reference count with a destructor. The
// destructor runs exactly once, at the moment the count reaches zero.
type Releaser struct {
	release func()
	n       atomic.Int64
}

// NewReleaser returns a Releaser holding init references. release may
// be nil when the resource needs no destruction.
func NewReleaser(init int64, release func()) *Releaser {
	r := &Releaser{release: release}
	r.n.Store(init)
	return r
}

// Incr takes one more reference. Taking a reference on an
// already-released Releaser would resurrect a destroyed resource, so
// it panics instead.
func (r *Releaser) Incr() {
	if r.n.Add(1) == 1 {
		panic("refcount: incremented an already-released Releaser")
	}
}

// Decr drops one reference, running the destructor if this was the
// last one. Dropping past zero panics.
func (r *Releaser) Decr() {
	n := r.n.Add(-1)
	switch {
	case n == 0:
		if r.release != nil {
			r.release()
			r.release = nil
		}
	case n < 0:
		panic("refcount: released a Releaser twice")
	}
}

// Count returns the current count.
func (r *Releaser) Count() int64 {
	return r.n.Load()
}
