package voxel

import "math"

// InsertBall sets every voxel whose Euclidean distance to center is at most r
// to the value v. The ball is clipped at the grid bounds; a center outside the
// grid is legal and affects only the voxels that fall inside. A non-positive
// radius writes at most the center voxel.
//
// Distances are measured between voxel coordinates, so a ball of radius 2 in
// 2D covers the 13-voxel discrete disk.
func InsertBall[T any](g *Grid[T], center []int, r float64, v T) {
	ForEachInBall(g, center, r, func(flat int) {
		g.data[flat] = v
	})
}

// ForEachInBall calls fn with the flat index of every in-bounds voxel whose
// Euclidean distance to center is at most r. Voxels are visited in ascending
// flat-index order.
func ForEachInBall[T any](g *Grid[T], center []int, r float64, fn func(flat int)) {
	if r < 0 {
		return
	}
	ndim := len(g.shape)
	ri := int(r)
	lo := make([]int, ndim)
	hi := make([]int, ndim) // inclusive
	for d := range g.shape {
		lo[d] = max(center[d]-ri, 0)
		hi[d] = min(center[d]+ri, g.shape[d]-1)
		if lo[d] > hi[d] {
			return
		}
	}

	r2 := r * r
	cur := append([]int(nil), lo...)
	for {
		d2 := 0.0
		for d := range cur {
			dd := float64(cur[d] - center[d])
			d2 += dd * dd
		}
		if d2 <= r2 {
			fn(g.Index(cur))
		}
		// odometer increment over the clipped bounding box
		d := ndim - 1
		for ; d >= 0; d-- {
			cur[d]++
			if cur[d] <= hi[d] {
				break
			}
			cur[d] = lo[d]
		}
		if d < 0 {
			return
		}
	}
}

// BallOffsets returns the coordinate offsets of a discrete ball of radius r
// around the origin, in ascending lexicographic order. When strict is true
// only offsets with distance strictly less than r are included, which matches
// the smoothed spherical structuring elements used for peak detection.
func BallOffsets(ndim int, r float64, strict bool) [][]int {
	ri := int(math.Ceil(r))
	r2 := r * r
	var offsets [][]int
	cur := make([]int, ndim)
	for d := range cur {
		cur[d] = -ri
	}
	for {
		d2 := 0.0
		for _, c := range cur {
			d2 += float64(c) * float64(c)
		}
		if (strict && d2 < r2) || (!strict && d2 <= r2) {
			offsets = append(offsets, append([]int(nil), cur...))
		}
		d := ndim - 1
		for ; d >= 0; d-- {
			cur[d]++
			if cur[d] <= ri {
				break
			}
			cur[d] = -ri
		}
		if d < 0 {
			return offsets
		}
	}
}
