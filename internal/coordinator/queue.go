package coordinator

import "strangerchat/backend/internal/models"

// MatchQueue is the FIFO of participants waiting for a random pairing.
// Purely positional: no preference matching, the two oldest entries pair.
// Like the Registry it is only ever touched by the Coordinator goroutine.
type MatchQueue struct {
	registry *Registry
	ids      []string
	members  map[string]struct{}
}

func NewMatchQueue(registry *Registry) *MatchQueue {
	return &MatchQueue{
		registry: registry,
		members:  make(map[string]struct{}),
	}
}

// Enqueue appends the participant and marks them waiting. A participant
// already queued is not queued twice; the repeat is a no-op and Enqueue
// reports false.
func (q *MatchQueue) Enqueue(id string) bool {
	if _, ok := q.members[id]; ok {
		return false
	}
	q.ids = append(q.ids, id)
	q.members[id] = struct{}{}
	_ = q.registry.Transition(id, models.StatusWaiting, "", "")
	return true
}

// TryPair pops the two oldest entries when at least two participants wait.
// The queue never holds the same id twice, so a pair is always two distinct
// participants.
func (q *MatchQueue) TryPair() (string, string, bool) {
	if len(q.ids) < 2 {
		return "", "", false
	}
	a, b := q.ids[0], q.ids[1]
	q.ids = q.ids[2:]
	delete(q.members, a)
	delete(q.members, b)
	return a, b, true
}

// Remove drops the participant from the queue if present. Used when a
// queued participant joins the directory, starts a different session or
// disconnects.
func (q *MatchQueue) Remove(id string) bool {
	if _, ok := q.members[id]; !ok {
		return false
	}
	delete(q.members, id)
	for i, queued := range q.ids {
		if queued == id {
			q.ids = append(q.ids[:i], q.ids[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether the participant is queued.
func (q *MatchQueue) Contains(id string) bool {
	_, ok := q.members[id]
	return ok
}

// Len returns the number of waiting participants.
func (q *MatchQueue) Len() int {
	return len(q.ids)
}

// IDs returns the queued ids in FIFO order.
func (q *MatchQueue) IDs() []string {
	out := make([]string, len(q.ids))
	copy(out, q.ids)
	return out
}
