package packing

import (
	"container/heap"

	"github.com/vasudevanv/porespy/pkg/voxel"
)

// candidateEntry is one eligible voxel with its selection priority frozen at
// seed time. Freezing matters: the loop later overwrites priorities inside
// inserted spheres with a sentinel, and mutating keys of elements already in
// a heap would break the heap invariant. Sentinel writes only ever hit voxels
// that the wider exclusion ball has already removed from the pool, so the
// frozen key of every still-live candidate is its true priority.
type candidateEntry struct {
	priority float64
	flat     int
}

// candidateHeap is a min-heap over the initial candidate voxels, keyed by
// selection priority with flat index as the tie-break. Entries are
// invalidated lazily: a popped entry whose voxel has since left the candidate
// pool is discarded instead of being returned.
//
// This keeps per-iteration cost at O(log n) amortized for selection plus the
// size of the excluded ball for invalidation, instead of a full-grid argmin
// scan every iteration.
type candidateHeap []candidateEntry

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	// row-major coordinate order: the documented deterministic tie-break
	return h[i].flat < h[j].flat
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) { *h = append(*h, x.(candidateEntry)) }

func (h *candidateHeap) Pop() any {
	old := *h
	last := old[len(old)-1]
	*h = old[:len(old)-1]
	return last
}

// newCandidateHeap seeds the heap with every eligible voxel in ascending
// flat-index order and heapifies once.
func newCandidateHeap(priority *voxel.Grid[float64], candidates *voxel.Grid[bool]) *candidateHeap {
	pri := priority.Data()
	h := make(candidateHeap, 0, voxel.Count(candidates, func(b bool) bool { return b }))
	for i, ok := range candidates.Data() {
		if ok {
			h = append(h, candidateEntry{priority: pri[i], flat: i})
		}
	}
	heap.Init(&h)
	return &h
}

// next pops entries until one still marked eligible surfaces, returning its
// flat index. ok is false once the pool is exhausted.
func (h *candidateHeap) next(candidates *voxel.Grid[bool]) (flat int, ok bool) {
	live := candidates.Data()
	for h.Len() > 0 {
		e := heap.Pop(h).(candidateEntry)
		if live[e.flat] {
			return e.flat, true
		}
	}
	return 0, false
}
