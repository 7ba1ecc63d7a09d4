package stats

import (
	"container/heap"
	"fmt"
)

// TopN returns the n packages with the highest file counts, ordered by count
// descending and then by name ascending so equal counts come out in a stable
// order. Fewer than n entries are returned when fewer distinct packages
// exist. A non-positive n reports ErrInvalidLimit.
//
// Selection runs over a size-bounded min-heap rather than sorting the whole
// table; real indices hold tens of thousands of distinct packages and n is
// typically 10.
func (a *Aggregator) TopN(n int) ([]RankedEntry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, n)
	}
	h := make(entryHeap, 0, n)
	for name, count := range a.counts {
		e := RankedEntry{Package: name, Count: count}
		switch {
		case len(h) < n:
			heap.Push(&h, e)
		case outranks(e, h[0]):
			h[0] = e
			heap.Fix(&h, 0)
		}
	}
	// Popping yields worst-first; fill the result back to front.
	out := make([]RankedEntry, len(h))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(RankedEntry)
	}
	return out, nil
}

// outranks reports whether "a" places strictly ahead of "b" in a ranked
// report.
func outranks(a, b RankedEntry) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Package < b.Package
}

// entryHeap is a min-heap keyed so the root is the entry that would place
// last in the report.
type entryHeap []RankedEntry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return outranks(h[j], h[i]) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)        { *h = append(*h, x.(RankedEntry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
