// Package refcount provides the shared counters underneath
// reference-counted ownership: a bare embeddable RefCount, and a
// Releaser that runs a destructor exactly once when the last
// reference is dropped.
package refcount

import "sync/atomic"

// A RefCount can be embedded in structures to count live references
// to a shared resource. The zero value is a count of zero; whoever
// creates the first reference records it with IncRef.
type RefCount struct {
	n atomic.Uint64
}

// IncRef records one more reference. It is a run-time panic to hold
// more than ^uint64(0) references.
func (r *RefCount) IncRef() {
	if r.n.Add(1) == 0 {
		panic("refcount: reference count overflow")
	}
}

// DecRef drops one reference and reports whether any references
// remain. Dropping a reference that was never taken is a run-time
// panic.
func (r *RefCount) DecRef() (remaining bool) {
	n := r.n.Add(^uint64(0))
	if n == ^uint64(0) {
		panic("refcount: decrement of a zero reference count")
	}
	return n != 0
}

// Refs returns the current count.
func (r *RefCount) Refs() uint64 {
	return r.n.Load()
}
