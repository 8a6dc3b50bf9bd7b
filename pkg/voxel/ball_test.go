package voxel

import (
	"math"
	"testing"
)

func TestInsertBallCoversDisk(t *testing.T) {
	g := New[int8](9, 9)
	InsertBall(g, []int{4, 4}, 2, 1)

	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			d := math.Hypot(float64(i-4), float64(j-4))
			want := int8(0)
			if d <= 2 {
				want = 1
			}
			if got := g.At(i, j); got != want {
				t.Errorf("voxel (%d,%d) dist %.2f: got %d, want %d", i, j, d, got, want)
			}
		}
	}
}

func TestInsertBallClipsAtBounds(t *testing.T) {
	g := New[int8](5, 5)
	InsertBall(g, []int{0, 0}, 3, 1) // partially out of bounds, must not panic

	if g.At(0, 0) != 1 || g.At(3, 0) != 1 {
		t.Error("clipped ball missing in-bounds voxels")
	}
	if g.At(4, 4) != 0 {
		t.Error("clipped ball overreached")
	}
}

func TestInsertBallCenterOutside(t *testing.T) {
	g := New[int8](5, 5)
	InsertBall(g, []int{-2, 2}, 2.5, 1)
	if g.At(0, 2) != 1 {
		t.Error("ball centered outside grid should still mark in-bounds voxels")
	}
	if g.At(2, 2) != 0 {
		t.Error("ball overreached from outside center")
	}
}

func TestInsertBallNegativeRadius(t *testing.T) {
	g := New[int8](3, 3)
	InsertBall(g, []int{1, 1}, -1, 1)
	for _, v := range g.Data() {
		if v != 0 {
			t.Fatal("negative radius must write nothing")
		}
	}
}

func TestInsertBall3D(t *testing.T) {
	g := New[int8](7, 7, 7)
	InsertBall(g, []int{3, 3, 3}, 2, 1)
	if g.At(3, 3, 1) != 1 || g.At(1, 3, 3) != 1 {
		t.Error("3D ball missing axis extremes")
	}
	if g.At(1, 1, 3) != 0 {
		t.Error("3D ball included voxel beyond radius")
	}
	// |(1,1,1)-(3,3,3)| = sqrt(12) > 2
	if g.At(1, 1, 1) != 0 {
		t.Error("3D ball included corner voxel")
	}
}

func TestBallOffsetsStrictDropsTips(t *testing.T) {
	loose := BallOffsets(2, 2, false)
	strict := BallOffsets(2, 2, true)

	has := func(offs [][]int, a, b int) bool {
		for _, o := range offs {
			if o[0] == a && o[1] == b {
				return true
			}
		}
		return false
	}
	if !has(loose, 0, 2) {
		t.Error("non-strict ball should include the axis tip (0,2)")
	}
	if has(strict, 0, 2) {
		t.Error("strict ball should drop the axis tip (0,2)")
	}
	if !has(strict, 0, 0) || !has(strict, 1, 1) {
		t.Error("strict ball missing interior offsets")
	}
}
