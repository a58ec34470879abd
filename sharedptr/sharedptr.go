// Package sharedptr provides a reference-counted shared-ownership
// handle over a heap-allocated value.
//
// All clones of a handle jointly own one heap cell; the cell's value
// is destroyed exactly once, when the last handle referencing it is
// reset. A handle's zero value is empty: it owns nothing and reports
// a count of zero.
package sharedptr

import (
	"github.com/goose-lang/std"

	"shared_ownership_code/refcount"
)

// cell is the shared heap allocation: one value, one count. Every
// handle cloned from the same origin points at the same cell, which
// is how clones observe a common value and a common count.
type cell[T any] struct {
	rel   *refcount.Releaser
	value T
}

// Ptr is a shared-ownership handle for a value of type T. Copying the
// struct does not register a new owner; use Clone for that. The zero
// value is an empty handle.
type Ptr[T any] struct {
	c *cell[T]
}

// New allocates v on the heap and returns a handle owning it, with a
// reference count of 1.
func New[T any](v T) Ptr[T] {
	return NewWithRelease[T](v, nil)
}

// NewWithRelease is New with a destructor. release runs exactly once,
// with the cell's final value, when the last handle lets go.
func NewWithRelease[T any](v T, release func(T)) Ptr[T] {
	c := &cell[T]{value: v}
	var rel func()
	if release != nil {
		rel = func() { release(c.value) }
	}
	c.rel = refcount.NewReleaser(1, rel)
	return Ptr[T]{c: c}
}

// Clone registers one more owner of the underlying value and returns
// a handle for it. No allocation takes place; both handles afterwards
// report the same value and the same count. Cloning an empty handle
// yields another empty handle.
func (p Ptr[T]) Clone() Ptr[T] {
	if p.c == nil {
		return Ptr[T]{}
	}
	p.c.rel.Incr()
	return Ptr[T]{c: p.c}
}

// Reset detaches the handle from its value, destroying the value if
// this was the last owner. The handle is empty afterwards. Resetting
// an empty handle does nothing.
func (p *Ptr[T]) Reset() {
	if p.c == nil {
		return
	}
	p.c.rel.Decr()
	p.c = nil
}

// ResetTo detaches the handle as Reset does, then attaches it to a
// freshly allocated v with a count of 1. Other handles that shared
// the old value are unaffected.
func (p *Ptr[T]) ResetTo(v T) {
	p.Reset()
	*p = New(v)
}

// UseCount returns the number of handles currently sharing the
// underlying value, 0 for an empty handle.
func (p Ptr[T]) UseCount() int64 {
	if p.c == nil {
		return 0
	}
	return p.c.rel.Count()
}

// Empty reports whether the handle owns no value.
func (p Ptr[T]) Empty() bool {
	return p.c == nil
}

// Get returns the underlying value. The handle must not be empty;
// guard with Empty before calling.
func (p Ptr[T]) Get() T {
	std.Assert(!p.Empty())
	return p.c.value
}

// Set stores v through the handle. Every clone sees the new value.
// The handle must not be empty.
func (p Ptr[T]) Set(v T) {
	std.Assert(!p.Empty())
	p.c.value = v
}

// Observe shows a handle crossing a call boundary: the caller hands
// over its own reference (typically p.Clone()), so the count as seen
// inside the call is one higher than at the call site. Observe resets
// its reference before returning, restoring the caller's count.
func Observe[T any](p Ptr[T]) int64 {
	defer p.Reset()
	return p.UseCount()
}
