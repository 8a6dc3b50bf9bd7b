package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vasudevanv/porespy/pkg/cache"
	"github.com/vasudevanv/porespy/pkg/export"
	"github.com/vasudevanv/porespy/pkg/metrics"
	"github.com/vasudevanv/porespy/pkg/observability"
	"github.com/vasudevanv/porespy/pkg/packing"
	"github.com/vasudevanv/porespy/pkg/voxel"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → pack → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate
	genStart := time.Now()
	im, err := Generate(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Image = im
	result.ImageHash = hashBoolGrid(im)
	result.Stats.GenerateTime = time.Since(genStart)

	r.Logger.Info("prepared input image",
		"shape", im.Shape(),
		"porosity", metrics.Porosity(im),
		"duration", result.Stats.GenerateTime)

	// Stage 2: Pack
	packStart := time.Now()
	res, packHit, err := r.PackWithCacheInfo(ctx, im, opts)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	result.Pack = res
	result.Stats.PackTime = time.Since(packStart)
	result.Stats.Spheres = res.Spheres()
	result.CacheInfo.PackHit = packHit

	if opts.Summary {
		result.Summary = metrics.Summarize(res)
	}

	r.Logger.Info("packed spheres",
		"spheres", res.Spheres(),
		"cached", packHit,
		"duration", result.Stats.PackTime)

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, exportHit, err := r.ExportWithCacheInfo(ctx, res, result.Summary, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Generate produces the input image for the given options.
func (r *Runner) Generate(ctx context.Context, opts Options) (*voxel.Grid[bool], error) {
	r.applyLogger(&opts)
	return Generate(ctx, opts)
}

// PackWithCacheInfo runs the packing engine with caching and returns cache hit info.
func (r *Runner) PackWithCacheInfo(ctx context.Context, im *voxel.Grid[bool], opts Options) (*packing.Result, bool, error) {
	if err := opts.ValidateForPack(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.PackKey(hashBoolGrid(im), opts.PackKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if res, err := decodePackResult(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "pack")
				return res, true, nil
			}
			// Undecodable entry, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "pack")
	}

	start := time.Now()
	observability.Pipeline().OnPackStart(ctx, im.Shape(), opts.Radius)
	res, err := packing.Pack(ctx, im, opts.PackOptions())
	spheres := 0
	if res != nil {
		spheres = res.Spheres()
	}
	observability.Pipeline().OnPackComplete(ctx, im.Shape(), spheres, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := encodePackResult(res, opts.PackOptions()); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, TTLPack) == nil {
			observability.Cache().OnCacheSet(ctx, "pack", len(data))
		}
	}

	return res, false, nil
}

// Pack is a convenience wrapper that calls PackWithCacheInfo and discards the cache hit info.
func (r *Runner) Pack(ctx context.Context, im *voxel.Grid[bool], opts Options) (*packing.Result, error) {
	res, _, err := r.PackWithCacheInfo(ctx, im, opts)
	return res, err
}

// ExportWithCacheInfo encodes artifacts with caching and returns cache hit info.
// summary may be nil when opts.Summary is false.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, res *packing.Result, summary *metrics.Summary, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	packData, err := encodePackResult(res, opts.PackOptions())
	if err != nil {
		return nil, false, fmt.Errorf("serialize result for cache key: %w", err)
	}
	packHash := cache.Hash(packData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(packHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := encodeArtifacts(ctx, res, summary, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(packHash, opts.ArtifactKeyOpts(format))
		if r.Cache.Set(ctx, cacheKey, data, TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Export is a convenience wrapper that calls ExportWithCacheInfo and discards the cache hit info.
func (r *Runner) Export(ctx context.Context, res *packing.Result, summary *metrics.Summary, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.ExportWithCacheInfo(ctx, res, summary, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// encodeArtifacts encodes the result in every requested format.
func encodeArtifacts(ctx context.Context, res *packing.Result, summary *metrics.Summary, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Pipeline().OnExportStart(ctx, format)

		var buf bytes.Buffer
		var err error
		switch format {
		case FormatJSON:
			err = export.WriteResultJSON(export.NewArtifact(res, opts.PackOptions(), summary), &buf)
		case FormatCSV:
			err = export.WriteCentersCSV(res.Centers, res.Image.Dims(), &buf)
		default:
			err = fmt.Errorf("invalid format: %q", format)
		}

		observability.Pipeline().OnExportComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", format, err)
		}
		out[format] = buf.Bytes()
	}
	return out, nil
}

// encodePackResult serializes a packing result for caching and hashing.
func encodePackResult(res *packing.Result, opts packing.Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := export.WriteResultJSON(export.NewArtifact(res, opts, nil), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodePackResult rebuilds a packing result from a cached artifact.
func decodePackResult(data []byte) (*packing.Result, error) {
	a, grid, err := export.ReadResultJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &packing.Result{Image: grid, Centers: a.Centers}, nil
}

// hashBoolGrid computes the content hash of a boolean image.
func hashBoolGrid(im *voxel.Grid[bool]) string {
	var buf bytes.Buffer
	_ = export.WriteImageJSON(im, &buf)
	return cache.Hash(buf.Bytes())
}
