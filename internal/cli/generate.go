package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vasudevanv/porespy/pkg/export"
	"github.com/vasudevanv/porespy/pkg/metrics"
	"github.com/vasudevanv/porespy/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	shape     string  // comma-separated axis lengths
	porosity  float64 // target void fraction
	blobiness float64 // blob feature size control
	seed      uint64  // random seed
	radius    int     // sphere radius for solid-sphere generators
	offset    int     // extra lattice spacing
	lattice   string  // lattice type (sc, tri)
	output    string  // output file path
}

// generateCommand creates the generate command with per-generator subcommands.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{porosity: pipeline.DefaultPorosity, blobiness: pipeline.DefaultBlobiness, seed: pipeline.DefaultSeed}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate porous void/solid input images",
		Long: `Generate synthetic porous images to pack spheres into.

Images are stored as JSON (shape plus a flat row-major boolean array,
true = void) and can be fed to the pack command.

Examples:
  porespy generate blobs --shape 128,128 --porosity 0.65 -o image.json
  porespy generate spheres --shape 64,64,64 --radius 8 -o image.json
  porespy generate lattice --shape 100,100 --radius 6 --lattice tri -o image.json
  porespy generate solid --shape 50,50 -o image.json`,
	}

	cmd.PersistentFlags().StringVar(&opts.shape, "shape", "", "image shape, comma-separated (e.g. 128,128)")
	cmd.PersistentFlags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "image.json", "output file")

	cmd.AddCommand(c.blobsCommand(&opts))
	cmd.AddCommand(c.spheresCommand(&opts))
	cmd.AddCommand(c.latticeCommand(&opts))
	cmd.AddCommand(c.solidCommand(&opts))

	return cmd
}

func (c *CLI) blobsCommand(opts *generateOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blobs",
		Short: "Generate correlated random blobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), pipeline.GeneratorBlobs, opts)
		},
	}
	cmd.Flags().Float64Var(&opts.porosity, "porosity", opts.porosity, "target void fraction")
	cmd.Flags().Float64Var(&opts.blobiness, "blobiness", opts.blobiness, "blob feature size (higher = smaller blobs)")
	return cmd
}

func (c *CLI) spheresCommand(opts *generateOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spheres",
		Short: "Generate overlapping solid spheres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), pipeline.GeneratorSpheres, opts)
		},
	}
	cmd.Flags().IntVar(&opts.radius, "radius", 5, "solid sphere radius")
	cmd.Flags().Float64Var(&opts.porosity, "porosity", opts.porosity, "target void fraction")
	return cmd
}

func (c *CLI) latticeCommand(opts *generateOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lattice",
		Short: "Generate solid spheres on a regular lattice",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), pipeline.GeneratorLattice, opts)
		},
	}
	cmd.Flags().IntVar(&opts.radius, "radius", 5, "solid sphere radius")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "extra spacing between lattice spheres")
	cmd.Flags().StringVar(&opts.lattice, "lattice", "sc", "lattice type (sc, tri)")
	return cmd
}

func (c *CLI) solidCommand(opts *generateOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "solid",
		Short: "Generate a fully void image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), pipeline.GeneratorSolid, opts)
		},
	}
}

// runGenerate executes a generator and writes the image to disk.
func (c *CLI) runGenerate(ctx context.Context, generator string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	shape, err := parseShape(opts.shape)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	im, err := pipeline.Generate(ctx, pipeline.Options{
		Generator: generator,
		Shape:     shape,
		Porosity:  opts.porosity,
		Blobiness: opts.blobiness,
		GenRadius: opts.radius,
		Offset:    opts.offset,
		Lattice:   opts.lattice,
		Seed:      opts.seed,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Generated %s image %v", generator, shape))

	if err := export.ExportImageJSON(im, opts.output); err != nil {
		return err
	}

	printSuccess("Generated %s image", generator)
	printDetail("porosity: %.3f", metrics.Porosity(im))
	printFile(opts.output)
	printNextStep("Pack it", fmt.Sprintf("%s pack --image %s --radius 5", appName, opts.output))
	return nil
}
