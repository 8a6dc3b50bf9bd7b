package packing

import (
	"errors"
	"fmt"

	"github.com/vasudevanv/porespy/pkg/voxel"
)

var (
	// ErrRadius is returned by [Pack] when the sphere radius is not positive.
	ErrRadius = errors.New("sphere radius must be positive")

	// ErrClearance is returned by [Pack] when |clearance| >= radius. Outside
	// that range the effective insertion radius degenerates to zero or below
	// and the geometry of the packing is no longer meaningful.
	ErrClearance = errors.New("clearance magnitude must be smaller than the radius")

	// ErrProtrusion is returned by [Pack] when the protrusion is negative.
	ErrProtrusion = errors.New("protrusion must be non-negative")

	// ErrMaxIter is returned by [Pack] when the iteration cap is negative.
	// A cap of zero is legal and returns the image unchanged.
	ErrMaxIter = errors.New("iteration cap must be non-negative")

	// ErrDims is returned by [Pack] for grids that are not 2- or 3-dimensional.
	ErrDims = errors.New("image must be 2- or 3-dimensional")

	// ErrShapeMismatch is returned by [Pack] when an explicit site mask does
	// not have the same shape as the image.
	ErrShapeMismatch = errors.New("site mask shape does not match image shape")
)

// DefaultMaxIter is the iteration cap applied by [NewOptions].
const DefaultMaxIter = 1000

// Options configures a packing run.
type Options struct {
	// Radius is the nominal sphere radius in voxel units. Required, positive.
	Radius int

	// Sites optionally marks the attraction points spheres are pulled toward.
	// When nil, sites are derived from the peaks of the image's smoothed
	// thickness field (see [DeriveSites]).
	Sites *voxel.Grid[bool]

	// Clearance adjusts the spacing between spheres. Positive values push
	// spheres apart, negative values let them overlap. |Clearance| must be
	// smaller than Radius.
	Clearance int

	// Protrusion is the number of voxels a sphere surface may extend beyond
	// the active phase. Zero keeps spheres fully inside.
	Protrusion int

	// MaxIter caps the number of inserted spheres. Zero inserts nothing.
	MaxIter int
}

// NewOptions returns Options for the given radius with the default iteration
// cap. The zero Options value is a deliberate no-op (MaxIter 0), so explicit
// construction is the normal path.
func NewOptions(radius int) Options {
	return Options{Radius: radius, MaxIter: DefaultMaxIter}
}

// validate rejects geometrically inconsistent parameters before any field is
// built. Exhausting the candidate pool or the iteration cap is never an
// error; only caller-contract violations are.
func (o Options) validate(im *voxel.Grid[bool]) error {
	if im.Dims() < 2 || im.Dims() > 3 {
		return fmt.Errorf("%w: got %d axes", ErrDims, im.Dims())
	}
	if o.Radius <= 0 {
		return fmt.Errorf("%w: got %d", ErrRadius, o.Radius)
	}
	if o.Clearance >= o.Radius || -o.Clearance >= o.Radius {
		return fmt.Errorf("%w: radius %d, clearance %d", ErrClearance, o.Radius, o.Clearance)
	}
	if o.Protrusion < 0 {
		return fmt.Errorf("%w: got %d", ErrProtrusion, o.Protrusion)
	}
	if o.MaxIter < 0 {
		return fmt.Errorf("%w: got %d", ErrMaxIter, o.MaxIter)
	}
	if o.Sites != nil && !voxel.SameShape(o.Sites, im) {
		return fmt.Errorf("%w: image %v, sites %v", ErrShapeMismatch, im.Shape(), o.Sites.Shape())
	}
	return nil
}
