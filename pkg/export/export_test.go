package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vasudevanv/porespy/pkg/packing"
	"github.com/vasudevanv/porespy/pkg/voxel"
)

func TestImageJSONRoundTrip(t *testing.T) {
	im := voxel.New[bool](3, 4)
	im.Data()[0] = true
	im.Data()[11] = true

	var buf bytes.Buffer
	if err := WriteImageJSON(im, &buf); err != nil {
		t.Fatalf("WriteImageJSON: %v", err)
	}
	got, err := ReadImageJSON(&buf)
	if err != nil {
		t.Fatalf("ReadImageJSON: %v", err)
	}
	if !voxel.SameShape(got, im) {
		t.Fatalf("shape = %v, want %v", got.Shape(), im.Shape())
	}
	for i, v := range im.Data() {
		if got.Data()[i] != v {
			t.Fatalf("data[%d] = %v, want %v", i, got.Data()[i], v)
		}
	}
}

func TestReadImageJSONRejectsBadShape(t *testing.T) {
	cases := []string{
		`{"shape":[2,3],"data":[true]}`,
		`{"shape":[],"data":[]}`,
		`{"shape":[0,3],"data":[]}`,
		`not json`,
	}
	for _, c := range cases {
		if _, err := ReadImageJSON(strings.NewReader(c)); err == nil {
			t.Errorf("ReadImageJSON(%q) should fail", c)
		}
	}
}

func TestImageJSONFileRoundTrip(t *testing.T) {
	im := voxel.New[bool](2, 2)
	im.Fill(true)

	path := filepath.Join(t.TempDir(), "image.json")
	if err := ExportImageJSON(im, path); err != nil {
		t.Fatalf("ExportImageJSON: %v", err)
	}
	got, err := ImportImageJSON(path)
	if err != nil {
		t.Fatalf("ImportImageJSON: %v", err)
	}
	if got.Len() != 4 || !got.Data()[3] {
		t.Error("imported image lost its data")
	}
}

func TestResultArtifact(t *testing.T) {
	img := voxel.New[int8](4, 4)
	img.Fill(packing.PhaseVoid)
	img.Data()[5] = packing.Inserted

	res := &packing.Result{Image: img, Centers: [][]int{{1, 1}}}
	opts := packing.NewOptions(2)
	a := NewArtifact(res, opts, nil)

	var buf bytes.Buffer
	if err := WriteResultJSON(a, &buf); err != nil {
		t.Fatalf("WriteResultJSON: %v", err)
	}
	back, grid, err := ReadResultJSON(&buf)
	if err != nil {
		t.Fatalf("ReadResultJSON: %v", err)
	}
	if back.Options.Radius != 2 {
		t.Errorf("radius = %d, want 2", back.Options.Radius)
	}
	if back.Options.MaxIter != packing.DefaultMaxIter {
		t.Errorf("max_iter = %d, want %d", back.Options.MaxIter, packing.DefaultMaxIter)
	}
	if len(back.Centers) != 1 || back.Centers[0][0] != 1 {
		t.Errorf("centers = %v", back.Centers)
	}
	if got := grid.At(1, 1); got != packing.Inserted {
		t.Errorf("grid(1,1) = %d, want %d", got, packing.Inserted)
	}
}

func TestCentersCSV(t *testing.T) {
	var buf bytes.Buffer
	centers := [][]int{{9, 9}, {2, 15}}
	if err := WriteCentersCSV(centers, 2, &buf); err != nil {
		t.Fatalf("WriteCentersCSV: %v", err)
	}
	want := "x,y\n9,9\n2,15\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}

func TestCentersCSV3D(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCentersCSV([][]int{{1, 2, 3}}, 3, &buf); err != nil {
		t.Fatalf("WriteCentersCSV: %v", err)
	}
	if got := buf.String(); got != "x,y,z\n1,2,3\n" {
		t.Errorf("csv = %q", got)
	}
}
