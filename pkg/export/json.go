// Package export reads and writes the toolkit's interchange formats.
//
// Images travel as JSON (shape plus a flat row-major data array), packing
// results as a JSON artifact bundling the labeled image, sphere centers,
// the options that produced them, and an optional summary. Centers can
// also be exported alone as CSV for spreadsheet workflows.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vasudevanv/porespy/pkg/metrics"
	"github.com/vasudevanv/porespy/pkg/packing"
	"github.com/vasudevanv/porespy/pkg/voxel"
)

// image is the wire form of a boolean voxel image.
type image struct {
	Shape []int  `json:"shape"`
	Data  []bool `json:"data"` // row-major, true = void
}

// WriteImageJSON encodes a boolean image as JSON and writes it to w.
// The output can be re-imported with [ReadImageJSON].
func WriteImageJSON(im *voxel.Grid[bool], w io.Writer) error {
	out := image{Shape: im.Shape(), Data: im.Data()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportImageJSON writes a boolean image to a JSON file at path.
func ExportImageJSON(im *voxel.Grid[bool], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteImageJSON(im, f)
}

// ReadImageJSON decodes a JSON image from r.
//
// The input must be an object with a "shape" array and a flat row-major
// "data" array whose length is the product of the shape. Malformed JSON,
// an empty or non-positive shape, and a mismatched data length are all
// errors. ReadImageJSON does not close r.
func ReadImageJSON(r io.Reader) (*voxel.Grid[bool], error) {
	var in image
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	g, err := voxel.FromData(in.Data, in.Shape...)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ImportImageJSON reads a JSON image file at path.
func ImportImageJSON(path string) (*voxel.Grid[bool], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadImageJSON(f)
}

// Artifact is the exported form of a packing run: the labeled image, the
// accepted centers in insertion order, the options that produced them, and
// an optional statistical summary.
type Artifact struct {
	Shape   []int            `json:"shape"`
	Image   []int8           `json:"image"` // row-major: 0 solid, 1 void, -1 inserted
	Centers [][]int          `json:"centers"`
	Options ArtifactOptions  `json:"options"`
	Summary *metrics.Summary `json:"summary,omitempty"`
}

// ArtifactOptions records the packing parameters inside an artifact.
type ArtifactOptions struct {
	Radius     int `json:"radius"`
	Clearance  int `json:"clearance"`
	Protrusion int `json:"protrusion"`
	MaxIter    int `json:"max_iter"`
}

// NewArtifact assembles an Artifact from a packing result. summary may be
// nil.
func NewArtifact(res *packing.Result, opts packing.Options, summary *metrics.Summary) *Artifact {
	return &Artifact{
		Shape:   res.Image.Shape(),
		Image:   res.Image.Data(),
		Centers: res.Centers,
		Options: ArtifactOptions{
			Radius:     opts.Radius,
			Clearance:  opts.Clearance,
			Protrusion: opts.Protrusion,
			MaxIter:    opts.MaxIter,
		},
		Summary: summary,
	}
}

// WriteResultJSON encodes an artifact as indented JSON and writes it to w.
func WriteResultJSON(a *Artifact, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportResultJSON writes an artifact to a JSON file at path.
func ExportResultJSON(a *Artifact, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteResultJSON(a, f)
}

// ReadResultJSON decodes an artifact from r and rebuilds the labeled image
// grid, validating shape against data length.
func ReadResultJSON(r io.Reader) (*Artifact, *voxel.Grid[int8], error) {
	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}
	g, err := voxel.FromData(a.Image, a.Shape...)
	if err != nil {
		return nil, nil, err
	}
	return &a, g, nil
}
