package filter

import "github.com/vasudevanv/porespy/pkg/voxel"

// SphericalFootprint returns the neighborhood offsets of a spherical
// structuring element of radius r in ndim dimensions. The element is the
// smoothed discrete ball: offsets strictly closer than r to the origin, which
// drops the single-voxel tips a non-strict ball grows on each axis.
func SphericalFootprint(ndim int, r float64) [][]int {
	return voxel.BallOffsets(ndim, r, true)
}

// LocalMaxima returns a mask of the voxels whose value is not exceeded
// anywhere in their footprint neighborhood. The comparison is non-strict, so
// every voxel of a plateau that is maximal within the footprint is marked.
// Offsets falling outside the grid are ignored.
func LocalMaxima(f *voxel.Grid[float64], offsets [][]int) *voxel.Grid[bool] {
	out := voxel.New[bool](f.Shape()...)
	shape := f.Shape()
	data := f.Data()
	marks := out.Data()

	coord := make([]int, f.Dims())
	nb := make([]int, f.Dims())
	for i := range data {
		f.Coord(i, coord)
		isMax := true
		for _, off := range offsets {
			inside := true
			for d := range nb {
				nb[d] = coord[d] + off[d]
				if nb[d] < 0 || nb[d] >= shape[d] {
					inside = false
					break
				}
			}
			if !inside {
				continue
			}
			if data[f.Index(nb)] > data[i] {
				isMax = false
				break
			}
		}
		marks[i] = isMax
	}
	return out
}
