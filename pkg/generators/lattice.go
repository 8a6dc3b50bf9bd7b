// Package generators produces synthetic voxel images of porous media for
// testing and benchmarking: sphere lattices, random overlapping spheres,
// correlated blob media and voxelized line segments. All generators use the
// convention that true marks the void (active) phase and false the solid.
package generators

import (
	"errors"
	"fmt"
	"math"

	"github.com/vasudevanv/porespy/pkg/voxel"
)

// Lattice selects the sphere arrangement for [LatticeSpheres].
type Lattice string

const (
	// LatticeSquare places sphere centers on a simple square (2D) or simple
	// cubic (3D) lattice.
	LatticeSquare Lattice = "sc"

	// LatticeTriangular places centers on a triangular lattice with
	// alternating rows shifted by half a spacing. 2D only.
	LatticeTriangular Lattice = "tri"
)

var (
	// ErrLattice is returned for an unknown lattice kind or a lattice that
	// is not defined for the grid's dimensionality.
	ErrLattice = errors.New("unsupported lattice")

	// ErrGeneratorParam is returned for non-positive radii, porosities
	// outside (0, 1) and similar parameter violations.
	ErrGeneratorParam = errors.New("invalid generator parameter")
)

// LatticeSpheres builds an image of solid spheres on a regular lattice.
// Sphere voxels are false, the surrounding void is true. The spacing between
// neighboring centers is 2*radius + offset, so offset zero gives touching
// spheres.
func LatticeSpheres(shape []int, radius, offset int, lattice Lattice) (*voxel.Grid[bool], error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius %d", ErrGeneratorParam, radius)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset %d", ErrGeneratorParam, offset)
	}

	im := voxel.New[bool](shape...)
	data := im.Data()
	for i := range data {
		data[i] = true
	}

	spacing := 2*radius + offset
	r := float64(radius)

	switch lattice {
	case LatticeSquare:
		center := make([]int, len(shape))
		placeSquare(im, shape, spacing, radius, r, center, 0)
	case LatticeTriangular:
		if len(shape) != 2 {
			return nil, fmt.Errorf("%w: %q needs a 2D grid", ErrLattice, lattice)
		}
		rowStep := int(math.Round(float64(spacing) * math.Sqrt(3) / 2))
		if rowStep < 1 {
			rowStep = 1
		}
		row := 0
		for i := radius; i < shape[0]; i += rowStep {
			shift := 0
			if row%2 == 1 {
				shift = spacing / 2
			}
			for j := radius + shift; j < shape[1]; j += spacing {
				voxel.InsertBall(im, []int{i, j}, r, false)
			}
			row++
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrLattice, lattice)
	}
	return im, nil
}

// placeSquare recursively walks the lattice positions along each axis.
func placeSquare(im *voxel.Grid[bool], shape []int, spacing, radius int, r float64, center []int, axis int) {
	if axis == len(shape) {
		voxel.InsertBall(im, center, r, false)
		return
	}
	for c := radius; c < shape[axis]; c += spacing {
		center[axis] = c
		placeSquare(im, shape, spacing, radius, r, center, axis+1)
	}
}
