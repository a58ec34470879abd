// Package handletable implements shared ownership through an
// explicit arena of reference-counted slots. Callers hold opaque
// integer handles rather than pointers; a slot is reclaimed at the
// moment its last handle is released.
package handletable

import (
	"fmt"
	"sync"

	"shared_ownership_code/refcount"
)

// Handle names a slot in a Table.
type Handle uint64

// Invalid is never allocated, so it can stand for "no value".
const Invalid Handle = 0

type slot[T any] struct {
	refs  refcount.RefCount
	value T
}

// A Table owns the slots behind a set of handles.
type Table[T any] struct {
	mu    sync.Mutex
	next  Handle
	slots map[Handle]*slot[T]
}

// New returns an empty table.
func New[T any]() *Table[T] {
	return &Table[T]{
		// handles start at 1 so Invalid stays free
		next:  1,
		slots: make(map[Handle]*slot[T]),
	}
}

// Alloc stores v in a fresh slot with a reference count of 1 and
// returns its handle.
func (t *Table[T]) Alloc(v T) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.next
	t.next++
	s := &slot[T]{value: v}
	s.refs.IncRef()
	t.slots[h] = s
	return h
}

// Retain records one more handle sharing h's slot. Retaining a freed
// or invalid handle panics.
func (t *Table[T]) Retain(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.live(h).refs.IncRef()
}

// Release drops one reference to h's slot and reports whether this
// release freed the slot. Releasing a freed or invalid handle panics.
func (t *Table[T]) Release(h Handle) (freed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.live(h).refs.DecRef() {
		return false
	}
	delete(t.slots, h)
	return true
}

// Count returns the slot's reference count, 0 for a freed or invalid
// handle.
func (t *Table[T]) Count(h Handle) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[h]
	if !ok {
		return 0
	}
	return s.refs.Refs()
}

// Get returns the slot's value and whether the handle is live.
func (t *Table[T]) Get(h Handle) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[h]
	if !ok {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Len returns the number of live slots.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}

// live must be called with t.mu held.
func (t *Table[T]) live(h Handle) *slot[T] {
	s, ok := t.slots[h]
	if !ok {
		panic(fmt.Sprintf("handletable: use of dead handle %d", h))
	}
	return s
}
