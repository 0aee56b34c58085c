package session

import "math/rand"

// samplingQueue holds the row indices still awaiting a decision, in the
// order they will be offered. Each index appears at most once.
type samplingQueue struct {
	indices []int
}

// newSamplingQueue builds a random permutation of [0, n).
func newSamplingQueue(n int, rng *rand.Rand) *samplingQueue {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	return &samplingQueue{indices: indices}
}

func (q *samplingQueue) Len() int { return len(q.indices) }

// Peek returns the front index without removing it.
func (q *samplingQueue) Peek() (int, bool) {
	if len(q.indices) == 0 {
		return 0, false
	}
	return q.indices[0], true
}

// PopFront removes and returns the front index.
func (q *samplingQueue) PopFront() (int, bool) {
	if len(q.indices) == 0 {
		return 0, false
	}
	front := q.indices[0]
	q.indices = q.indices[1:]
	return front, true
}

// PushFront reinserts an index at the head of the queue, making it the next
// candidate.
func (q *samplingQueue) PushFront(index int) {
	q.indices = append([]int{index}, q.indices...)
}

// Filter drops every index the keep function rejects, preserving order.
func (q *samplingQueue) Filter(keep func(int) bool) {
	kept := q.indices[:0]
	for _, index := range q.indices {
		if keep(index) {
			kept = append(kept, index)
		}
	}
	q.indices = kept
}
