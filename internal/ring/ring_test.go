package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingEvictsOldestOnOverflow(t *testing.T) {
	r := New[int](3)
	r.Push(1)
	r.Push(2)
	r.Push(3)
	r.Push(4)

	assert.Equal(t, 3, r.Len())
	v, ok := r.Get(0)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestRingGetFromEnd(t *testing.T) {
	r := New[string](3)
	r.Push("a")
	r.Push("b")
	r.Push("c")

	v, ok := r.GetFromEnd(0)
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	v, ok = r.GetFromEnd(2)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = r.GetFromEnd(3)
	assert.False(t, ok)
}

func TestRingPopBackFront(t *testing.T) {
	r := New[int](3)
	r.Push(1)
	r.Push(2)

	v, ok := r.PopBack()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, r.Len())

	v, ok = r.PopFront()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 0, r.Len())

	_, ok = r.PopFront()
	assert.False(t, ok)
}

func TestRingClear(t *testing.T) {
	r := New[int](3)
	r.Push(1)
	r.Clear()
	assert.Equal(t, 0, r.Len())
}
