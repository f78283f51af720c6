package pqueue

import (
	stderrors "errors"
	"math/rand"
	"sort"
	"testing"
)

func intLess(a, b int) bool { return a < b }

func TestQueue_SortedExtraction(t *testing.T) {
	values := []int{41, 7, 19, 7, 0, 100, 3, 3, 55, 12}

	q := New(intLess)
	for _, v := range values {
		q.Insert(v)
	}
	if q.Len() != len(values) {
		t.Errorf("expected Len %d, got %d", len(values), q.Len())
	}

	expect := append([]int{}, values...)
	sort.Ints(expect)

	for i, want := range expect {
		got, err := q.ExtractMin()
		if err != nil {
			t.Fatalf("ExtractMin %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("extraction %d: expected %d, got %d", i, want, got)
		}
	}
	if !q.Empty() {
		t.Errorf("expected empty queue after extracting everything")
	}
}

func TestQueue_ExtractEmpty(t *testing.T) {
	q := New(intLess)
	if _, err := q.ExtractMin(); !stderrors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}

	q.Insert(1)
	if _, err := q.ExtractMin(); err != nil {
		t.Fatalf("ExtractMin failed: %v", err)
	}
	if _, err := q.ExtractMin(); !stderrors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty after draining, got %v", err)
	}
}

func TestQueue_HeapInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	q := New(intLess)
	check := func() {
		for i := 1; i < len(q.items); i++ {
			parent := (i - 1) / 2
			if q.less(q.items[i], q.items[parent]) {
				t.Fatalf("heap invariant broken: items[%d]=%d precedes parent items[%d]=%d",
					i, q.items[i], parent, q.items[parent])
			}
		}
	}

	for step := 0; step < 2000; step++ {
		if q.Empty() || rng.Intn(3) != 0 {
			q.Insert(rng.Intn(1000))
		} else {
			if _, err := q.ExtractMin(); err != nil {
				t.Fatalf("ExtractMin failed: %v", err)
			}
		}
		check()
	}
}

func TestQueue_InterleavedMinTracking(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	q := New(intLess)
	var mirror []int
	for step := 0; step < 500; step++ {
		if q.Empty() || rng.Intn(2) == 0 {
			v := rng.Intn(100)
			q.Insert(v)
			mirror = append(mirror, v)
			continue
		}

		got, err := q.ExtractMin()
		if err != nil {
			t.Fatalf("ExtractMin failed: %v", err)
		}
		sort.Ints(mirror)
		if got != mirror[0] {
			t.Errorf("step %d: expected min %d, got %d", step, mirror[0], got)
		}
		mirror = mirror[1:]
	}
}
