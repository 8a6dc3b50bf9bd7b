package packing

import (
	"github.com/vasudevanv/porespy/pkg/filter"
	"github.com/vasudevanv/porespy/pkg/voxel"
)

// siteSigma is the smoothing strength applied to the thickness field before
// peak detection. It is just enough to merge single-voxel discretization
// plateaus without moving the peaks themselves.
const siteSigma = 0.5

// DeriveSites locates the attraction points of an image: the local maxima of
// its slightly smoothed thickness field, detected under a spherical footprint
// of the nominal sphere radius and restricted to the active phase. Each
// locally widest pore region yields one site (or a small plateau of them).
//
// An image with an empty active phase produces an all-false mask.
func DeriveSites(im *voxel.Grid[bool], radius int) *voxel.Grid[bool] {
	return deriveSites(im, filter.Thickness(im), radius)
}

// deriveSites is the internal form reusing an already computed thickness
// field.
func deriveSites(im *voxel.Grid[bool], thickness *voxel.Grid[float64], radius int) *voxel.Grid[bool] {
	smoothed := filter.Gaussian(thickness, siteSigma)
	footprint := filter.SphericalFootprint(im.Dims(), float64(radius))
	peaks := filter.LocalMaxima(smoothed, footprint)

	marks := peaks.Data()
	active := im.Data()
	for i := range marks {
		marks[i] = marks[i] && active[i]
	}
	return peaks
}
