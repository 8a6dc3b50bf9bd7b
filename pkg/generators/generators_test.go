package generators

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/vasudevanv/porespy/pkg/voxel"
)

func porosity(im *voxel.Grid[bool]) float64 {
	return float64(voxel.Count(im, func(b bool) bool { return b })) / float64(im.Len())
}

func TestLatticeSpheresSquare(t *testing.T) {
	im, err := LatticeSpheres([]int{40, 40}, 5, 4, LatticeSquare)
	if err != nil {
		t.Fatal(err)
	}
	// first center sits at (radius, radius)
	if im.At(5, 5) {
		t.Error("sphere center should be solid")
	}
	if im.At(5, 11) {
		t.Error("voxel just outside sphere should be void")
	}
	// spacing 14: next center at (5, 19)
	if im.At(5, 19) {
		t.Error("second lattice site should be solid")
	}
	p := porosity(im)
	if p <= 0.2 || p >= 0.95 {
		t.Errorf("porosity %v outside plausible range", p)
	}
}

func TestLatticeSpheresTriangularShiftsRows(t *testing.T) {
	im, err := LatticeSpheres([]int{60, 60}, 5, 4, LatticeTriangular)
	if err != nil {
		t.Fatal(err)
	}
	if im.At(5, 5) {
		t.Error("first-row center should be solid")
	}
	// second row is shifted by half a spacing (7): center near (17, 12)
	if im.At(17, 12) {
		t.Error("shifted second-row center should be solid")
	}
}

func TestLatticeSpheres3D(t *testing.T) {
	im, err := LatticeSpheres([]int{30, 30, 30}, 4, 2, LatticeSquare)
	if err != nil {
		t.Fatal(err)
	}
	if im.At(4, 4, 4) {
		t.Error("3D lattice center should be solid")
	}
	if im.At(4, 4, 9) {
		t.Error("voxel one past the sphere surface should be void")
	}
}

func TestLatticeSpheresErrors(t *testing.T) {
	if _, err := LatticeSpheres([]int{20, 20}, 0, 1, LatticeSquare); !errors.Is(err, ErrGeneratorParam) {
		t.Error("zero radius should be rejected")
	}
	if _, err := LatticeSpheres([]int{20, 20}, 3, 1, "hex"); !errors.Is(err, ErrLattice) {
		t.Error("unknown lattice should be rejected")
	}
	if _, err := LatticeSpheres([]int{20, 20, 20}, 3, 1, LatticeTriangular); !errors.Is(err, ErrLattice) {
		t.Error("triangular lattice in 3D should be rejected")
	}
}

func TestOverlappingSpheresHitsPorosity(t *testing.T) {
	im, err := OverlappingSpheres([]int{80, 80}, 6, 0.6, 42)
	if err != nil {
		t.Fatal(err)
	}
	p := porosity(im)
	// one sphere of radius 6 covers at most ~113 of 6400 voxels (~1.8%)
	if p > 0.6 || p < 0.55 {
		t.Errorf("porosity %v, want just under 0.6", p)
	}
}

func TestOverlappingSpheresReproducible(t *testing.T) {
	a, err := OverlappingSpheres([]int{50, 50}, 5, 0.7, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := OverlappingSpheres([]int{50, 50}, 5, 0.7, 7)
	if !slices.Equal(a.Data(), b.Data()) {
		t.Error("same seed should reproduce the same image")
	}
	c, _ := OverlappingSpheres([]int{50, 50}, 5, 0.7, 8)
	if slices.Equal(a.Data(), c.Data()) {
		t.Error("different seeds should produce different images")
	}
}

func TestLineSegmentEndpointsAndAdjacency(t *testing.T) {
	coords, err := LineSegment([]int{64, 64}, []int{49, 80})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(coords[0], []int{64, 64}) {
		t.Errorf("first voxel %v, want the start point", coords[0])
	}
	if !slices.Equal(coords[len(coords)-1], []int{49, 80}) {
		t.Errorf("last voxel %v, want the end point", coords[len(coords)-1])
	}
	for i := 1; i < len(coords); i++ {
		for d := range coords[i] {
			if diff := coords[i][d] - coords[i-1][d]; diff < -1 || diff > 1 {
				t.Fatalf("voxels %v and %v are not adjacent", coords[i-1], coords[i])
			}
		}
		if slices.Equal(coords[i], coords[i-1]) {
			t.Fatal("duplicate consecutive voxel")
		}
	}
}

func TestLineSegmentDegenerate(t *testing.T) {
	coords, err := LineSegment([]int{3, 3}, []int{3, 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(coords) != 1 || !slices.Equal(coords[0], []int{3, 3}) {
		t.Errorf("degenerate segment: got %v", coords)
	}
	if _, err := LineSegment([]int{0, 0}, []int{1, 1, 1}); !errors.Is(err, ErrGeneratorParam) {
		t.Error("mismatched dimensionality should be rejected")
	}
}

func TestDrawLineClipsOutOfBounds(t *testing.T) {
	g := voxel.New[bool](10, 10)
	if err := DrawLine(g, []int{5, -3}, []int{5, 12}, true); err != nil {
		t.Fatal(err)
	}
	for j := 0; j < 10; j++ {
		if !g.At(5, j) {
			t.Fatalf("voxel (5,%d) not drawn", j)
		}
	}
}

func TestBlobsPorosityAndReproducibility(t *testing.T) {
	im, err := Blobs([]int{100, 100}, 0.5, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	p := porosity(im)
	if math.Abs(p-0.5) > 0.1 {
		t.Errorf("porosity %v, want about 0.5", p)
	}

	again, _ := Blobs([]int{100, 100}, 0.5, 2, 3)
	if !slices.Equal(im.Data(), again.Data()) {
		t.Error("same seed should reproduce the same blobs")
	}
}

func TestBlobsParamValidation(t *testing.T) {
	if _, err := Blobs([]int{20, 20}, 1.5, 1, 1); !errors.Is(err, ErrGeneratorParam) {
		t.Error("porosity above 1 should be rejected")
	}
	if _, err := Blobs([]int{20, 20}, 0.5, 0, 1); !errors.Is(err, ErrGeneratorParam) {
		t.Error("zero blobiness should be rejected")
	}
}
