package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueOrder(t *testing.T) {
	rq := NewRingQueue[string](2)
	assert.True(t, rq.IsEmpty())

	require.NoError(t, rq.Enqueue("a"))
	require.NoError(t, rq.Enqueue("b"))
	assert.True(t, rq.IsFull())
	assert.ErrorIs(t, rq.Enqueue("c"), ErrQueueFull)

	v, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	// wraps around
	require.NoError(t, rq.Enqueue("c"))
	assert.Equal(t, []string{"b", "c"}, rq.Drain())
	assert.True(t, rq.IsEmpty())

	_, err = rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestRingQueueMinimumSize(t *testing.T) {
	rq := NewRingQueue[int](0)
	require.NoError(t, rq.Enqueue(1))
	assert.ErrorIs(t, rq.Enqueue(2), ErrQueueFull)
}
