package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/vasudevanv/porespy/pkg/export"
	"github.com/vasudevanv/porespy/pkg/generators"
	"github.com/vasudevanv/porespy/pkg/observability"
	"github.com/vasudevanv/porespy/pkg/voxel"
)

// Generate produces the input image for the pipeline: decodes an inline
// image, loads one from disk, or runs the configured generator.
func Generate(ctx context.Context, opts Options) (*voxel.Grid[bool], error) {
	if err := opts.ValidateForInput(); err != nil {
		return nil, err
	}

	name := opts.Generator
	if name == "" {
		name = "load"
	}
	start := time.Now()
	observability.Pipeline().OnGenerateStart(ctx, name, opts.Shape)

	im, err := generate(opts)
	observability.Pipeline().OnGenerateComplete(ctx, name, time.Since(start), err)
	return im, err
}

func generate(opts Options) (*voxel.Grid[bool], error) {
	switch {
	case len(opts.ImageData) > 0:
		return voxel.FromData(opts.ImageData, opts.Shape...)
	case opts.ImagePath != "":
		return export.ImportImageJSON(opts.ImagePath)
	}

	switch opts.Generator {
	case GeneratorSolid:
		im := voxel.New[bool](opts.Shape...)
		im.Fill(true)
		return im, nil
	case GeneratorBlobs:
		return generators.Blobs(opts.Shape, opts.Porosity, opts.Blobiness, opts.Seed)
	case GeneratorSpheres:
		if opts.GenRadius <= 0 {
			return nil, fmt.Errorf("%w: gen_radius is required for the spheres generator", ErrInput)
		}
		return generators.OverlappingSpheres(opts.Shape, opts.GenRadius, opts.Porosity, opts.Seed)
	case GeneratorLattice:
		if opts.GenRadius <= 0 {
			return nil, fmt.Errorf("%w: gen_radius is required for the lattice generator", ErrInput)
		}
		lattice := generators.Lattice(opts.Lattice)
		if opts.Lattice == "" {
			lattice = generators.LatticeSquare
		}
		return generators.LatticeSpheres(opts.Shape, opts.GenRadius, opts.Offset, lattice)
	default:
		return nil, fmt.Errorf("%w: %q", ErrGenerator, opts.Generator)
	}
}
