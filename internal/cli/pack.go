package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vasudevanv/porespy/pkg/export"
	"github.com/vasudevanv/porespy/pkg/pipeline"
)

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	image      string // input image file
	generator  string // alternatively, generate the input on the fly
	shape      string // shape for the generator
	sites      string // optional explicit sites file
	radius     int    // sphere radius
	clearance  int    // minimum surface separation (negative allows overlap)
	protrusion int    // allowed protrusion into solid
	maxIter    int    // maximum spheres to insert
	porosity   float64
	seed       uint64
	formats    string // comma-separated export formats
	summary    bool   // include spacing statistics
	output     string // output path prefix
	noCache    bool   // disable the result cache
	refresh    bool   // bypass cached results
}

// packCommand creates the pack command.
func (c *CLI) packCommand() *cobra.Command {
	opts := packOpts{
		radius:   c.Config.Radius,
		maxIter:  0,
		porosity: pipeline.DefaultPorosity,
		seed:     pipeline.DefaultSeed,
	}

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack spheres into the void space of an image",
		Long: `Pack non-overlapping spheres into the void space of a porous image.

Spheres are placed greedily at the void voxel nearest to the current set of
attraction sites, so the packing grows outward from the pore centers. The
labeled image and the sphere centers are exported as JSON and/or CSV.

Examples:
  porespy pack --image image.json --radius 5
  porespy pack --image image.json --radius 5 --clearance 2 --summary
  porespy pack --generator blobs --shape 128,128 --radius 4 --formats json,csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.image, "image", "", "input image file (JSON)")
	cmd.Flags().StringVar(&opts.generator, "generator", "", "generate the input instead (blobs, spheres, lattice, solid)")
	cmd.Flags().StringVar(&opts.shape, "shape", "", "image shape for the generator (e.g. 128,128)")
	cmd.Flags().StringVar(&opts.sites, "sites", "", "explicit attraction sites file (JSON)")
	cmd.Flags().IntVarP(&opts.radius, "radius", "r", opts.radius, "sphere radius in voxels")
	cmd.Flags().IntVar(&opts.clearance, "clearance", 0, "minimum voxels between sphere surfaces (negative allows overlap)")
	cmd.Flags().IntVar(&opts.protrusion, "protrusion", 0, "allowed sphere protrusion into solid, in voxels")
	cmd.Flags().IntVar(&opts.maxIter, "max-iter", 0, "maximum spheres to insert (default 1000)")
	cmd.Flags().Float64Var(&opts.porosity, "porosity", opts.porosity, "target porosity for the generator")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed for the generator")
	cmd.Flags().StringVar(&opts.formats, "formats", "", "export formats, comma-separated (json, csv)")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "include spacing statistics in the JSON artifact")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "pack", "output path prefix")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}

func (c *CLI) runPack(cmd *cobra.Command, opts *packOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts := pipeline.Options{
		ImagePath:  opts.image,
		Generator:  opts.generator,
		Porosity:   opts.porosity,
		GenRadius:  opts.radius,
		Seed:       opts.seed,
		Radius:     opts.radius,
		Clearance:  opts.clearance,
		Protrusion: opts.protrusion,
		MaxIter:    opts.maxIter,
		Refresh:    opts.refresh,
		Formats:    parseFormats(opts.formats),
		Summary:    opts.summary,
		Logger:     logger,
	}
	if opts.formats == "" && len(c.Config.Formats) > 0 {
		popts.Formats = c.Config.Formats
	}
	if opts.generator != "" {
		shape, err := parseShape(opts.shape)
		if err != nil {
			return err
		}
		popts.Shape = shape
	}
	if opts.sites != "" {
		sites, err := export.ImportImageJSON(opts.sites)
		if err != nil {
			return fmt.Errorf("load sites: %w", err)
		}
		popts.Sites = sites
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Packing spheres...")
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("Packed %d spheres (radius %d)", result.Pack.Spheres(), opts.radius)
	printPackStats(result.Pack.Spheres(), result.Pack.InitialCandidates, result.CacheInfo.PackHit)
	if result.Summary != nil && result.Summary.Spacing != nil {
		printDetail("spacing: min %.2f · mean %.2f · median %.2f",
			result.Summary.Spacing.Min,
			result.Summary.Spacing.Mean,
			result.Summary.Spacing.Median)
	}

	for _, format := range popts.Formats {
		path := opts.output + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
