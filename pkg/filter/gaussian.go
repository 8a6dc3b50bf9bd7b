package filter

import (
	"math"

	"github.com/vasudevanv/porespy/pkg/voxel"
)

// gaussTruncate is the kernel cutoff in standard deviations.
const gaussTruncate = 4.0

// Gaussian returns a smoothed copy of the field, convolved with a separable
// gaussian kernel of the given standard deviation. Out-of-bounds samples are
// mirrored at the boundary. A non-positive sigma returns an unmodified copy.
//
// The packing engine smooths distance fields with a small sigma before peak
// detection, so that discretization plateaus do not fragment into spurious
// attraction sites.
func Gaussian(f *voxel.Grid[float64], sigma float64) *voxel.Grid[float64] {
	out := f.Clone()
	if sigma <= 0 {
		return out
	}

	radius := int(gaussTruncate*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		w := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	shape := out.Shape()
	data := out.Data()
	var line, smoothed []float64
	for axis := range shape {
		if cap(line) < shape[axis] {
			line = make([]float64, shape[axis])
			smoothed = make([]float64, shape[axis])
		}
		forEachLine(out, axis, func(base, step, length int) {
			src := line[:length]
			dst := smoothed[:length]
			for i := range src {
				src[i] = data[base+i*step]
			}
			convolveReflect(src, dst, kernel, radius)
			for i := range dst {
				data[base+i*step] = dst[i]
			}
		})
	}
	return out
}

// convolveReflect convolves src with the kernel, mirroring indices that fall
// outside the line.
func convolveReflect(src, dst, kernel []float64, radius int) {
	n := len(src)
	for i := range src {
		acc := 0.0
		for k := -radius; k <= radius; k++ {
			acc += kernel[k+radius] * src[reflect(i+k, n)]
		}
		dst[i] = acc
	}
}

// reflect maps an index onto [0, n) by mirroring at the boundaries
// (half-sample symmetric: ... c b a | a b c ... | c b a).
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i - 1
	}
	return i
}
