package generators

import (
	"fmt"
	"math/rand/v2"

	"github.com/vasudevanv/porespy/pkg/voxel"
)

// OverlappingSpheres builds an image by dropping solid spheres at uniformly
// random positions until the void fraction falls to the target porosity.
// Spheres may overlap each other and the image boundary. The run is
// reproducible for a given seed.
//
// Porosity must lie in (0, 1). Because each sphere removes a discrete chunk
// of void, the achieved porosity undershoots the target by at most one
// sphere's volume fraction.
func OverlappingSpheres(shape []int, radius int, porosity float64, seed uint64) (*voxel.Grid[bool], error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius %d", ErrGeneratorParam, radius)
	}
	if porosity <= 0 || porosity >= 1 {
		return nil, fmt.Errorf("%w: porosity %v", ErrGeneratorParam, porosity)
	}

	im := voxel.New[bool](shape...)
	data := im.Data()
	for i := range data {
		data[i] = true
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	void := len(data)
	target := int(porosity * float64(len(data)))
	center := make([]int, len(shape))

	for void > target {
		for d, s := range shape {
			center[d] = rng.IntN(s)
		}
		voxel.ForEachInBall(im, center, float64(radius), func(flat int) {
			if data[flat] {
				data[flat] = false
				void--
			}
		})
	}
	return im, nil
}
