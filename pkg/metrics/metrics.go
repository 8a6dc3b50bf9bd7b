// Package metrics computes scalar descriptors of voxel images and packing
// results: phase fractions and center-spacing statistics.
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vasudevanv/porespy/pkg/packing"
	"github.com/vasudevanv/porespy/pkg/voxel"
)

// Porosity returns the void fraction of a boolean image.
func Porosity(im *voxel.Grid[bool]) float64 {
	return float64(voxel.Count(im, func(b bool) bool { return b })) / float64(im.Len())
}

// PhaseFractions are the volume fractions of a packed image, summing to one.
type PhaseFractions struct {
	Solid    float64 `json:"solid"`
	Void     float64 `json:"void"`
	Inserted float64 `json:"inserted"`
}

// Fractions tallies the phase fractions of a packed image.
func Fractions(im *voxel.Grid[int8]) PhaseFractions {
	var f PhaseFractions
	for _, v := range im.Data() {
		switch v {
		case packing.PhaseVoid:
			f.Void++
		case packing.Inserted:
			f.Inserted++
		default:
			f.Solid++
		}
	}
	n := float64(im.Len())
	f.Solid /= n
	f.Void /= n
	f.Inserted /= n
	return f
}

// Spacing summarizes the nearest-neighbor distances between sphere centers.
type Spacing struct {
	Min    float64 `json:"min"`
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
	Median float64 `json:"median"`
}

// Summary describes the outcome of a packing run in a handful of numbers.
type Summary struct {
	Spheres   int            `json:"spheres"`
	Fractions PhaseFractions `json:"fractions"`

	// Spacing is nil when fewer than two spheres were inserted.
	Spacing *Spacing `json:"spacing,omitempty"`
}

// Summarize computes the packing summary of a result.
func Summarize(res *packing.Result) *Summary {
	s := &Summary{
		Spheres:   res.Spheres(),
		Fractions: Fractions(res.Image),
	}
	if len(res.Centers) < 2 {
		return s
	}

	nearest := make([]float64, len(res.Centers))
	for i, a := range res.Centers {
		best := math.Inf(1)
		for j, b := range res.Centers {
			if i == j {
				continue
			}
			d2 := 0.0
			for d := range a {
				dd := float64(a[d] - b[d])
				d2 += dd * dd
			}
			best = math.Min(best, d2)
		}
		nearest[i] = math.Sqrt(best)
	}
	sort.Float64s(nearest)
	s.Spacing = &Spacing{
		Min:    nearest[0],
		Mean:   stat.Mean(nearest, nil),
		Stddev: stat.StdDev(nearest, nil),
		Median: stat.Quantile(0.5, stat.Empirical, nearest, nil),
	}
	return s
}
