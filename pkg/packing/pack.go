// Package packing implements attraction-biased sphere packing: a greedy loop
// that fills the active phase of a voxel image with spheres, always inserting
// the next sphere at the eligible voxel closest to a set of attraction sites.
//
// Three fields co-evolve over the run. The image itself records inserted
// spheres, a candidate mask tracks which voxels may still become centers, and
// a priority field holds each voxel's distance to the nearest site. Every
// insertion shrinks the candidate pool by an exclusion ball of twice the
// clearance-adjusted radius, which is what guarantees inserted spheres never
// overlap for non-negative clearance.
package packing

import (
	"context"

	"github.com/vasudevanv/porespy/pkg/filter"
	"github.com/vasudevanv/porespy/pkg/voxel"
)

// Phase labels in packed images. Untouched voxels keep their phase; voxels
// covered by an inserted sphere are overwritten with Inserted regardless of
// what was there before, so insertion order is observable only through
// overlap.
const (
	PhaseSolid int8 = 0  // inactive phase, never packed
	PhaseVoid  int8 = 1  // active phase, eligible for insertion
	Inserted   int8 = -1 // covered by an accepted sphere
)

// deprioritized is the sentinel written into the priority field inside each
// inserted sphere. It is far above any reachable distance, so deprioritized
// voxels can never again be a minimum. The wider exclusion ball already
// removes those voxels from the pool; the sentinel is a second guard against
// rounding at the ball boundary.
const deprioritized = 1e9

// Result is the outcome of a packing run.
type Result struct {
	// Image is the input image widened to int8, with every voxel covered by
	// an accepted sphere set to Inserted.
	Image *voxel.Grid[int8]

	// Centers holds the accepted sphere centers in insertion order.
	Centers [][]int

	// InitialCandidates is the size of the candidate pool before the first
	// insertion.
	InitialCandidates int
}

// Spheres returns the number of accepted spheres.
func (r *Result) Spheres() int { return len(r.Centers) }

// Widen converts a boolean image to the int8 phase encoding used by packed
// images, without inserting anything.
func Widen(im *voxel.Grid[bool]) *voxel.Grid[int8] {
	return voxel.Map(im, func(active bool) int8 {
		if active {
			return PhaseVoid
		}
		return PhaseSolid
	})
}

// Pack fills the active phase of im with spheres of opts.Radius, each placed
// at the still-eligible voxel nearest to the attraction sites. Ties are
// broken toward the smaller row-major coordinate, so results are fully
// deterministic.
//
// The run ends when opts.MaxIter spheres have been accepted or the candidate
// pool is exhausted, whichever comes first; neither is an error. Invalid
// geometric parameters are rejected before any work happens. Cancellation is
// checked once per iteration: on ctx cancellation the partial result packed
// so far is returned together with the context error.
func Pack(ctx context.Context, im *voxel.Grid[bool], opts Options) (*Result, error) {
	if err := opts.validate(im); err != nil {
		return nil, err
	}

	thickness := filter.Thickness(im)

	sites := opts.Sites
	if sites == nil {
		sites = deriveSites(im, thickness, opts.Radius)
	}

	// Priority: exact distance from every voxel to the nearest site. Site
	// voxels get zero but are excluded from candidacy, so the value is never
	// selected.
	priority := filter.EDT(voxel.Map(sites, func(s bool) bool { return !s }))

	// Candidate pool: non-site voxels with enough local thickness for a
	// sphere to protrude at most opts.Protrusion voxels.
	minThickness := float64(opts.Radius - opts.Protrusion)
	candidates := voxel.New[bool](im.Shape()...)
	siteAt := sites.Data()
	thick := thickness.Data()
	pool := candidates.Data()
	for i := range pool {
		pool[i] = !siteAt[i] && thick[i] >= minThickness
	}

	h := newCandidateHeap(priority, candidates)

	res := &Result{
		Image:             Widen(im),
		InitialCandidates: h.Len(),
	}

	radius := float64(opts.Radius)
	effective := float64(opts.Radius + opts.Clearance)
	center := make([]int, im.Dims())
	for len(res.Centers) < opts.MaxIter {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		flat, ok := h.next(candidates)
		if !ok {
			break // pool exhausted: normal termination
		}
		res.Image.Coord(flat, center)

		voxel.InsertBall(res.Image, center, radius, Inserted)
		voxel.InsertBall(candidates, center, 2*effective, false)
		voxel.InsertBall(priority, center, effective, deprioritized)

		res.Centers = append(res.Centers, append([]int(nil), center...))
	}
	return res, nil
}
