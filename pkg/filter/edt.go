// Package filter provides scalar-field filters over voxel grids: an exact
// Euclidean distance transform, separable gaussian smoothing and local-maximum
// detection under spherical footprints. These are the geometric primitives the
// packing engine and the generators are built on.
package filter

import (
	"math"

	"github.com/vasudevanv/porespy/pkg/voxel"
)

// inf is the squared-distance initialization for foreground voxels. A large
// finite value keeps the parabola intersection arithmetic well defined; it is
// far beyond any squared distance reachable on a real grid.
const inf = 1e12

// EDT returns the exact Euclidean distance from every true voxel to the
// nearest false voxel. False voxels get distance zero. If the grid contains
// no false voxel at all, every distance is effectively unbounded (the square
// root of the initialization constant).
//
// The transform is the separable lower-envelope-of-parabolas method, so the
// result is exact, not a chamfer approximation. Exactness matters: thickness
// thresholds and selection priorities compare these values directly.
func EDT(mask *voxel.Grid[bool]) *voxel.Grid[float64] {
	out := voxel.Map(mask, func(fg bool) float64 {
		if fg {
			return inf
		}
		return 0
	})
	squaredTransform(out)
	data := out.Data()
	for i, v := range data {
		data[i] = math.Sqrt(v)
	}
	return out
}

// Thickness returns the local thickness field of an image: for every active
// (true) voxel, the Euclidean distance to the nearest inactive voxel, where
// positions just outside the grid count as inactive. The border backing means
// a fully active grid still has a well defined interior maximum at its
// geometric center, which is what makes thickness usable as a sphere-fitting
// bound.
func Thickness(im *voxel.Grid[bool]) *voxel.Grid[float64] {
	out := EDT(im)
	shape := im.Shape()
	data := out.Data()
	coord := make([]int, len(shape))
	for i := range data {
		if data[i] == 0 {
			continue
		}
		out.Coord(i, coord)
		for d, c := range coord {
			// nearest out-of-grid position along axis d
			b := float64(min(c+1, shape[d]-c))
			if b < data[i] {
				data[i] = b
			}
		}
	}
	return out
}

// squaredTransform runs the 1-D squared distance transform along every axis
// in turn, in place.
func squaredTransform(g *voxel.Grid[float64]) {
	shape := g.Shape()
	data := g.Data()

	n := 0
	for _, s := range shape {
		n = max(n, s)
	}
	f := make([]float64, n)
	dst := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for axis := range shape {
		forEachLine(g, axis, func(base, step, length int) {
			for i := 0; i < length; i++ {
				f[i] = data[base+i*step]
			}
			dt1d(f[:length], dst[:length], v, z)
			for i := 0; i < length; i++ {
				data[base+i*step] = dst[i]
			}
		})
	}
}

// dt1d computes the 1-D squared distance transform of the sampled function f
// into dst, using the lower envelope of parabolas (Felzenszwalb and
// Huttenlocher). v and z are scratch space of length >= len(f)+1.
func dt1d(f, dst []float64, v []int, z []float64) {
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)

	for q := 1; q < n; q++ {
		var s float64
		for {
			p := v[k]
			s = ((f[q] + float64(q*q)) - (f[p] + float64(p*p))) / float64(2*q-2*p)
			if s > z[k] {
				break
			}
			k--
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		d := float64(q - v[k])
		dst[q] = d*d + f[v[k]]
	}
}

// forEachLine calls fn once for every 1-D line of the grid along the given
// axis, passing the flat index of the first element, the stride between
// consecutive elements and the line length.
func forEachLine[T any](g *voxel.Grid[T], axis int, fn func(base, step, length int)) {
	shape := g.Shape()
	length := shape[axis]
	step := 1
	for d := axis + 1; d < len(shape); d++ {
		step *= shape[d]
	}

	total := g.Len()
	lines := total / length
	coord := make([]int, len(shape))
	for l := 0; l < lines; l++ {
		// decode l into a coordinate over all axes except `axis`
		rem := l
		for d := len(shape) - 1; d >= 0; d-- {
			if d == axis {
				coord[d] = 0
				continue
			}
			coord[d] = rem % shape[d]
			rem /= shape[d]
		}
		fn(g.Index(coord), step, length)
	}
}
