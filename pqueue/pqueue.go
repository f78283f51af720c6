// Package pqueue implements an array-backed binary min-heap priority
// queue.  Ordering is supplied by the caller as a strict "precedes"
// comparison; ties are broken by heap position, not insertion order.
package pqueue

import (
	"github.com/pkg/errors"
)

// ErrEmpty is returned by ExtractMin when the queue holds no elements.
var ErrEmpty = errors.New("pqueue: extract from empty queue")

// Queue is a min-priority queue over elements of type T.  The zero value is
// not usable; construct with New.
type Queue[T any] struct {
	less  func(a, b T) bool
	items []T
}

// New returns an empty Queue ordered by less, where less(a, b) reports
// whether a strictly precedes b.
func New[T any](less func(a, b T) bool) *Queue[T] {
	return &Queue[T]{less: less}
}

// Len returns the number of elements currently queued.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Empty reports whether the queue holds no elements.
func (q *Queue[T]) Empty() bool {
	return len(q.items) == 0
}

// Insert adds item to the queue in O(log n).
func (q *Queue[T]) Insert(item T) {
	q.items = append(q.items, item)
	q.siftUp(len(q.items) - 1)
}

// ExtractMin removes and returns the element that precedes all others.
func (q *Queue[T]) ExtractMin() (T, error) {
	if len(q.items) == 0 {
		var zero T
		return zero, ErrEmpty
	}

	min := q.items[0]
	last := len(q.items) - 1
	q.items[0] = q.items[last]
	var zero T
	q.items[last] = zero
	q.items = q.items[:last]
	if last > 0 {
		q.siftDown(0)
	}
	return min, nil
}

func (q *Queue[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !q.less(q.items[i], q.items[parent]) {
			break
		}
		q.items[i], q.items[parent] = q.items[parent], q.items[i]
		i = parent
	}
}

func (q *Queue[T]) siftDown(i int) {
	n := len(q.items)
	for {
		// Pick whichever child strictly precedes the current node,
		// preferring the left child when both do equally.
		best := i
		if left := 2*i + 1; left < n && q.less(q.items[left], q.items[best]) {
			best = left
		}
		if right := 2*i + 2; right < n && q.less(q.items[right], q.items[best]) {
			best = right
		}
		if best == i {
			return
		}
		q.items[i], q.items[best] = q.items[best], q.items[i]
		i = best
	}
}
