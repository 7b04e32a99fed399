package coordinator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strangerchat/backend/internal/coordinator"
	"strangerchat/backend/internal/models"
)

func newQueue() (*coordinator.MatchQueue, *coordinator.Registry) {
	r := coordinator.NewRegistry()
	return coordinator.NewMatchQueue(r), r
}

func TestQueueEnqueueMarksWaiting(t *testing.T) {
	q, r := newQueue()
	r.Register("user_A")

	assert.True(t, q.Enqueue("user_A"))
	assert.True(t, q.Contains("user_A"))

	p, _ := r.Get("user_A")
	assert.Equal(t, models.StatusWaiting, p.Status)
}

func TestQueueEnqueueDeduplicates(t *testing.T) {
	q, r := newQueue()
	r.Register("user_A")

	assert.True(t, q.Enqueue("user_A"))
	assert.False(t, q.Enqueue("user_A"))
	assert.Equal(t, 1, q.Len())
}

func TestQueueTryPairIsFIFO(t *testing.T) {
	q, r := newQueue()
	for _, id := range []string{"user_A", "user_B", "user_C"} {
		r.Register(id)
		q.Enqueue(id)
	}

	a, b, ok := q.TryPair()
	require.True(t, ok)
	assert.Equal(t, "user_A", a)
	assert.Equal(t, "user_B", b)
	assert.Equal(t, []string{"user_C"}, q.IDs())

	_, _, ok = q.TryPair()
	assert.False(t, ok)
}

func TestQueueRemove(t *testing.T) {
	q, r := newQueue()
	for _, id := range []string{"user_A", "user_B", "user_C"} {
		r.Register(id)
		q.Enqueue(id)
	}

	assert.True(t, q.Remove("user_B"))
	assert.False(t, q.Remove("user_B"))
	assert.Equal(t, []string{"user_A", "user_C"}, q.IDs())

	// The pair after a removal skips the removed entry.
	a, b, ok := q.TryPair()
	require.True(t, ok)
	assert.Equal(t, "user_A", a)
	assert.Equal(t, "user_C", b)
}
