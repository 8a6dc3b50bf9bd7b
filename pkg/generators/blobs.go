package generators

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vasudevanv/porespy/pkg/filter"
	"github.com/vasudevanv/porespy/pkg/voxel"
)

// Blobs builds a correlated random medium: gaussian noise is smoothed into
// blobs, standardized, mapped through the standard normal CDF to a uniform
// field and thresholded at the target porosity. Higher blobiness gives
// smaller, more numerous blobs.
//
// The achieved porosity converges to the target as the grid grows; on small
// grids the spatial correlation leaves a few percent of slack.
func Blobs(shape []int, porosity, blobiness float64, seed uint64) (*voxel.Grid[bool], error) {
	if porosity <= 0 || porosity >= 1 {
		return nil, fmt.Errorf("%w: porosity %v", ErrGeneratorParam, porosity)
	}
	if blobiness <= 0 {
		return nil, fmt.Errorf("%w: blobiness %v", ErrGeneratorParam, blobiness)
	}

	noise := voxel.New[float64](shape...)
	rng := rand.New(rand.NewPCG(seed, seed))
	data := noise.Data()
	for i := range data {
		data[i] = rng.NormFloat64()
	}

	mean := 0.0
	for _, s := range shape {
		mean += float64(s)
	}
	mean /= float64(len(shape))
	sigma := mean / (40 * blobiness)

	field := filter.Gaussian(noise, sigma)

	// standardize, then map through the normal CDF so the threshold is a
	// plain quantile
	values := field.Data()
	mu, sd := stat.MeanStdDev(values, nil)
	normal := distuv.UnitNormal
	return voxel.Map(field, func(v float64) bool {
		return normal.CDF((v-mu)/sd) < porosity
	}), nil
}
