package voxel

import (
	"errors"
	"testing"
)

func TestFromDataShapeValidation(t *testing.T) {
	if _, err := FromData[int8](nil); !errors.Is(err, ErrEmptyShape) {
		t.Errorf("empty shape: got %v, want ErrEmptyShape", err)
	}
	if _, err := FromData[int8](nil, 4, 0); !errors.Is(err, ErrEmptyShape) {
		t.Errorf("zero axis: got %v, want ErrEmptyShape", err)
	}
	if _, err := FromData(make([]int8, 5), 2, 3); !errors.Is(err, ErrDataLength) {
		t.Errorf("short data: got %v, want ErrDataLength", err)
	}
	if _, err := FromData(make([]int8, 6), 2, 3); err != nil {
		t.Errorf("valid grid: unexpected error %v", err)
	}
}

func TestIndexCoordRoundTrip(t *testing.T) {
	g := New[int](3, 4, 5)
	coord := make([]int, 3)
	for i := 0; i < g.Len(); i++ {
		g.Coord(i, coord)
		if got := g.Index(coord); got != i {
			t.Fatalf("round trip at %d: coord %v -> index %d", i, coord, got)
		}
	}
}

func TestRowMajorOrder(t *testing.T) {
	// Ascending flat indices must enumerate coordinates lexicographically.
	g := New[int](2, 3)
	want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	coord := make([]int, 2)
	for i, w := range want {
		g.Coord(i, coord)
		if coord[0] != w[0] || coord[1] != w[1] {
			t.Errorf("flat %d: got %v, want %v", i, coord, w)
		}
	}
}

func TestAtSet(t *testing.T) {
	g := New[float64](4, 4)
	g.Set(2.5, 1, 2)
	if got := g.At(1, 2); got != 2.5 {
		t.Errorf("At(1,2) = %v, want 2.5", got)
	}
	if got := g.At(2, 1); got != 0 {
		t.Errorf("At(2,1) = %v, want 0", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := New[int](2, 2)
	g.Set(7, 0, 0)
	c := g.Clone()
	c.Set(9, 0, 0)
	if g.At(0, 0) != 7 {
		t.Error("mutating clone changed original")
	}
}

func TestIn(t *testing.T) {
	g := New[bool](3, 3)
	cases := []struct {
		coord []int
		want  bool
	}{
		{[]int{0, 0}, true},
		{[]int{2, 2}, true},
		{[]int{3, 0}, false},
		{[]int{0, -1}, false},
		{[]int{1}, false},
	}
	for _, c := range cases {
		if got := g.In(c.coord); got != c.want {
			t.Errorf("In(%v) = %v, want %v", c.coord, got, c.want)
		}
	}
}

func TestMapAndCount(t *testing.T) {
	g := New[bool](2, 2)
	g.Set(true, 0, 1)
	g.Set(true, 1, 0)

	m := Map(g, func(b bool) int8 {
		if b {
			return 1
		}
		return 0
	})
	if m.At(0, 1) != 1 || m.At(0, 0) != 0 {
		t.Error("Map did not apply elementwise")
	}
	if n := Count(g, func(b bool) bool { return b }); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}
