// Package pipeline provides the core packing pipeline for the toolkit.
//
// This package implements the complete generate → pack → export pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: Produce or load the input void/solid image
//  2. Pack: Run attraction-biased sphere packing on the image
//  3. Export: Encode results in various formats (JSON, CSV)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Generator: pipeline.GeneratorBlobs,
//	    Shape:     []int{128, 128},
//	    Porosity:  0.6,
//	    Radius:    5,
//	    Formats:   []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artifact := result.Artifacts["json"]
//
// Run individual stages:
//
//	// Generate only
//	im, err := runner.Generate(ctx, opts)
//
//	// Pack an existing image
//	res, err := runner.Pack(ctx, im, opts)
//
//	// Export an existing result
//	artifacts, err := runner.Export(ctx, res, nil, opts)
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vasudevanv/porespy/pkg/cache"
	"github.com/vasudevanv/porespy/pkg/metrics"
	"github.com/vasudevanv/porespy/pkg/packing"
	"github.com/vasudevanv/porespy/pkg/voxel"
)

// Sentinel errors for option validation. Wrapped errors carry the detail.
var (
	// ErrInput is returned when the input source configuration is invalid.
	ErrInput = errors.New("invalid input configuration")

	// ErrFormat is returned for an unsupported output format.
	ErrFormat = errors.New("invalid format")

	// ErrGenerator is returned for an unsupported generator name.
	ErrGenerator = errors.New("invalid generator")
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPorosity is the target void fraction for generated images.
	DefaultPorosity = 0.6

	// DefaultBlobiness controls blob feature size for the blobs generator.
	DefaultBlobiness = 1.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// TTLPack is how long cached packing results live.
	TTLPack = 24 * time.Hour

	// TTLArtifact is how long cached export artifacts live.
	TTLArtifact = 24 * time.Hour
)

// Generator constants for input image generation.
const (
	GeneratorBlobs   = "blobs"
	GeneratorSpheres = "spheres"
	GeneratorLattice = "lattice"
	GeneratorSolid   = "solid" // fully void image, every voxel available
)

// ValidGenerators is the set of supported input generators.
var ValidGenerators = map[string]bool{
	GeneratorBlobs:   true,
	GeneratorSpheres: true,
	GeneratorLattice: true,
	GeneratorSolid:   true,
}

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatCSV:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the packing pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Exactly one input source is used: an inline image,
	// an image file, or a generator.
	ImageData []bool `json:"image_data,omitempty"` // row-major, true = void
	ImagePath string `json:"-"`                    // path to an image JSON file
	Generator string `json:"generator,omitempty"`
	Shape     []int  `json:"shape,omitempty"`

	// Generator parameters
	Porosity  float64 `json:"porosity,omitempty"`
	Blobiness float64 `json:"blobiness,omitempty"`
	GenRadius int     `json:"gen_radius,omitempty"` // sphere radius for spheres/lattice
	Offset    int     `json:"offset,omitempty"`     // extra lattice spacing
	Lattice   string  `json:"lattice,omitempty"`    // lattice type, default "sc"
	Seed      uint64  `json:"seed,omitempty"`

	// Pack options
	Radius     int  `json:"radius"`
	Clearance  int  `json:"clearance,omitempty"`
	Protrusion int  `json:"protrusion,omitempty"`
	MaxIter    int  `json:"max_iter,omitempty"`
	Refresh    bool `json:"refresh,omitempty"` // bypass the cache

	// Export options
	Formats []string `json:"formats,omitempty"`
	Summary bool     `json:"summary,omitempty"` // include spacing statistics

	// Runtime options (not serialized)
	Logger *log.Logger       `json:"-"`
	Sites  *voxel.Grid[bool] `json:"-"` // explicit nucleation sites

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Image is the input void/solid image the packing ran on.
	Image *voxel.Grid[bool]

	// ImageHash is the content hash of the input image.
	ImageHash string

	// Pack is the packing result (labeled image plus centers).
	Pack *packing.Result

	// Summary contains phase fractions and spacing statistics, when requested.
	Summary *metrics.Summary

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Spheres      int
	GenerateTime time.Duration
	PackTime     time.Duration
	ExportTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PackHit   bool // Whether the packing result came from cache
	ExportHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("%w: %q (must be one of: json, csv)", ErrFormat, format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGenerator checks that a generator name is valid.
func ValidateGenerator(generator string) error {
	if !ValidGenerators[generator] {
		return fmt.Errorf("%w: %q (must be one of: blobs, spheres, lattice, solid)", ErrGenerator, generator)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForInput(); err != nil {
		return err
	}
	if err := o.ValidateForPack(); err != nil {
		return err
	}
	o.SetExportDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForInput checks required fields for input generation or loading.
func (o *Options) ValidateForInput() error {
	sources := 0
	if len(o.ImageData) > 0 {
		sources++
	}
	if o.ImagePath != "" {
		sources++
	}
	if o.Generator != "" {
		sources++
	}
	if sources == 0 {
		return fmt.Errorf("%w: an image, an image path, or a generator is required", ErrInput)
	}
	if sources > 1 {
		return fmt.Errorf("%w: image, image path, and generator are mutually exclusive", ErrInput)
	}

	if len(o.ImageData) > 0 || o.Generator != "" {
		if len(o.Shape) == 0 {
			return fmt.Errorf("%w: shape is required", ErrInput)
		}
	}
	if o.Generator != "" {
		if err := ValidateGenerator(o.Generator); err != nil {
			return err
		}
	}

	// Generator defaults
	if o.Porosity == 0 {
		o.Porosity = DefaultPorosity
	}
	if o.Blobiness == 0 {
		o.Blobiness = DefaultBlobiness
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// ValidateForPack checks required fields for packing.
// Full parameter validation (clearance vs radius, protrusion bounds) happens
// inside the packing engine; this only applies pipeline-level defaults.
func (o *Options) ValidateForPack() error {
	if o.Radius <= 0 {
		return fmt.Errorf("%w: radius is required and must be positive", packing.ErrRadius)
	}
	if o.MaxIter == 0 {
		o.MaxIter = packing.DefaultMaxIter
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetExportDefaults sets default values for exporting.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForExport validates and sets defaults for exporting.
func (o *Options) ValidateForExport() error {
	o.SetExportDefaults()
	return ValidateFormats(o.Formats)
}

// PackOptions converts pipeline options into engine options.
func (o *Options) PackOptions() packing.Options {
	return packing.Options{
		Radius:     o.Radius,
		Sites:      o.Sites,
		Clearance:  o.Clearance,
		Protrusion: o.Protrusion,
		MaxIter:    o.MaxIter,
	}
}

// PackKeyOpts returns cache key options for the packing stage.
func (o *Options) PackKeyOpts() cache.PackKeyOpts {
	opts := cache.PackKeyOpts{
		Radius:     o.Radius,
		Clearance:  o.Clearance,
		Protrusion: o.Protrusion,
		MaxIter:    o.MaxIter,
	}
	if o.Sites != nil {
		opts.SitesHash = hashBoolGrid(o.Sites)
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for an export format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Summary: o.Summary,
	}
}
