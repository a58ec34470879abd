package handletable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"shared_ownership_code/handletable"
)

func TestAllocRetainRelease(t *testing.T) {
	assert := assert.New(t)

	tbl := handletable.New[int]()
	h := tbl.Alloc(100)
	assert.NotEqual(handletable.Invalid, h)
	assert.Equal(uint64(1), tbl.Count(h))
	assert.Equal(1, tbl.Len())

	v, ok := tbl.Get(h)
	assert.True(ok)
	assert.Equal(100, v)

	tbl.Retain(h)
	assert.Equal(uint64(2), tbl.Count(h))

	assert.False(tbl.Release(h), "one handle still live")
	assert.Equal(uint64(1), tbl.Count(h))

	assert.True(tbl.Release(h), "last release frees the slot")
	assert.Equal(uint64(0), tbl.Count(h))
	assert.Equal(0, tbl.Len())

	_, ok = tbl.Get(h)
	assert.False(ok)
}

func TestInvalidHandleIsNeverLive(t *testing.T) {
	assert := assert.New(t)

	tbl := handletable.New[string]()
	assert.Equal(uint64(0), tbl.Count(handletable.Invalid))
	_, ok := tbl.Get(handletable.Invalid)
	assert.False(ok)
}

func TestDeadHandleMisusePanics(t *testing.T) {
	assert := assert.New(t)

	tbl := handletable.New[int]()
	h := tbl.Alloc(1)
	tbl.Release(h)

	assert.Panics(func() { tbl.Retain(h) })
	assert.Panics(func() { tbl.Release(h) })
	assert.Panics(func() { tbl.Retain(handletable.Invalid) })
}

func TestHandlesAreDistinct(t *testing.T) {
	assert := assert.New(t)

	tbl := handletable.New[int]()
	h1 := tbl.Alloc(1)
	h2 := tbl.Alloc(2)
	assert.NotEqual(h1, h2)

	tbl.Release(h1)
	v, ok := tbl.Get(h2)
	assert.True(ok, "releasing one slot leaves the other alone")
	assert.Equal(2, v)
}

// Property: a slot stays live through any interleaving of retains and
// releases until releases catch up with retains, then frees exactly
// once.
func TestRetainReleaseProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tbl := handletable.New[uint64]()
		v := rapid.Uint64().Draw(t, "value")
		h := tbl.Alloc(v)

		n := rapid.IntRange(0, 24).Draw(t, "retains")
		for range n {
			tbl.Retain(h)
		}
		if got := tbl.Count(h); got != uint64(n+1) {
			t.Fatalf("count = %d, want %d", got, n+1)
		}

		for i := range n + 1 {
			freed := tbl.Release(h)
			if freed != (i == n) {
				t.Fatalf("release %d freed = %v", i, freed)
			}
		}
		if tbl.Len() != 0 {
			t.Fatalf("slot leaked")
		}
	})
}
