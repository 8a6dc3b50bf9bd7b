package metrics

import (
	"math"
	"testing"

	"github.com/vasudevanv/porespy/pkg/packing"
	"github.com/vasudevanv/porespy/pkg/voxel"
)

func TestPorosity(t *testing.T) {
	im := voxel.New[bool](4, 5)
	for i := 0; i < 10; i++ {
		im.Data()[i] = true
	}
	if p := Porosity(im); p != 0.5 {
		t.Errorf("porosity = %v, want 0.5", p)
	}
}

func TestFractionsSumToOne(t *testing.T) {
	im := voxel.New[int8](3, 3)
	im.Data()[0] = packing.PhaseVoid
	im.Data()[1] = packing.PhaseVoid
	im.Data()[2] = packing.Inserted

	f := Fractions(im)
	if got := f.Solid + f.Void + f.Inserted; math.Abs(got-1) > 1e-12 {
		t.Errorf("fractions sum to %v", got)
	}
	if math.Abs(f.Inserted-1.0/9) > 1e-12 {
		t.Errorf("inserted fraction = %v, want 1/9", f.Inserted)
	}
}

func TestSummarizeSpacing(t *testing.T) {
	res := &packing.Result{
		Image:   voxel.New[int8](10, 10),
		Centers: [][]int{{0, 0}, {0, 6}, {8, 0}},
	}
	s := Summarize(res)
	if s.Spheres != 3 {
		t.Fatalf("spheres = %d, want 3", s.Spheres)
	}
	if s.Spacing == nil {
		t.Fatal("spacing missing with 3 centers")
	}
	// nearest-neighbor distances: 6, 6, 8
	if s.Spacing.Min != 6 {
		t.Errorf("min spacing = %v, want 6", s.Spacing.Min)
	}
	if want := (6.0 + 6.0 + 8.0) / 3; math.Abs(s.Spacing.Mean-want) > 1e-12 {
		t.Errorf("mean spacing = %v, want %v", s.Spacing.Mean, want)
	}
}

func TestSummarizeFewCenters(t *testing.T) {
	res := &packing.Result{
		Image:   voxel.New[int8](5, 5),
		Centers: [][]int{{2, 2}},
	}
	if s := Summarize(res); s.Spacing != nil {
		t.Error("spacing should be nil for a single sphere")
	}
}
