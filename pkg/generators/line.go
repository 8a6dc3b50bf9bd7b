package generators

import (
	"fmt"
	"math"
	"slices"

	"github.com/vasudevanv/porespy/pkg/voxel"
)

// LineSegment returns the voxel coordinates of a straight segment between two
// points, endpoints included, in order from a to b. The segment is sampled
// densely and rounded, so consecutive voxels are always face- or
// corner-adjacent and no voxel repeats.
func LineSegment(a, b []int) ([][]int, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: endpoints have %d and %d axes", ErrGeneratorParam, len(a), len(b))
	}

	length := 0.0
	for d := range a {
		dd := float64(b[d] - a[d])
		length += dd * dd
	}
	n := 2*int(math.Ceil(math.Sqrt(length))) + 1

	var coords [][]int
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c := make([]int, len(a))
		for d := range a {
			c[d] = int(math.Round(float64(a[d]) + t*float64(b[d]-a[d])))
		}
		if len(coords) == 0 || !slices.Equal(coords[len(coords)-1], c) {
			coords = append(coords, c)
		}
	}
	return coords, nil
}

// DrawLine sets every voxel of the segment between a and b to v, skipping
// voxels outside the grid.
func DrawLine[T any](g *voxel.Grid[T], a, b []int, v T) error {
	coords, err := LineSegment(a, b)
	if err != nil {
		return err
	}
	for _, c := range coords {
		if g.In(c) {
			g.Set(v, c...)
		}
	}
	return nil
}
