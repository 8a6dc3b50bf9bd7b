package voxel

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrEmptyShape is returned by [New] and [FromData] when no axes are given
	// or an axis has non-positive length.
	ErrEmptyShape = errors.New("shape must have at least one positive axis")

	// ErrDataLength is returned by [FromData] when the data length does not
	// match the product of the shape.
	ErrDataLength = errors.New("data length does not match shape")
)

// Grid is a dense N-dimensional array stored in row-major order. The last
// axis varies fastest, so ascending flat indices enumerate coordinates in
// lexicographic order. That enumeration order is part of the contract: it is
// the deterministic tie-break used by selection algorithms built on top of
// grids.
//
// Grid is generic over its element type so the same shape machinery serves
// boolean masks, phase-labelled images and scalar fields. It is not safe for
// concurrent mutation.
type Grid[T any] struct {
	shape  []int
	stride []int
	data   []T
}

// New allocates a zero-valued grid with the given shape.
// It panics if the shape is invalid; use [FromData] for checked construction.
func New[T any](shape ...int) *Grid[T] {
	g, err := FromData[T](nil, shape...)
	if err != nil {
		panic(err)
	}
	return g
}

// FromData wraps an existing row-major slice as a grid. If data is nil, a
// zeroed slice of the right length is allocated. The slice is retained, not
// copied.
func FromData[T any](data []T, shape ...int) (*Grid[T], error) {
	if len(shape) == 0 {
		return nil, ErrEmptyShape
	}
	n := 1
	for _, s := range shape {
		if s <= 0 {
			return nil, fmt.Errorf("%w: axis length %d", ErrEmptyShape, s)
		}
		n *= s
	}
	if data == nil {
		data = make([]T, n)
	} else if len(data) != n {
		return nil, fmt.Errorf("%w: have %d, shape needs %d", ErrDataLength, len(data), n)
	}
	stride := make([]int, len(shape))
	stride[len(shape)-1] = 1
	for d := len(shape) - 2; d >= 0; d-- {
		stride[d] = stride[d+1] * shape[d+1]
	}
	return &Grid[T]{shape: slices.Clone(shape), stride: stride, data: data}, nil
}

// Dims returns the number of axes.
func (g *Grid[T]) Dims() int { return len(g.shape) }

// Shape returns a copy of the axis lengths.
func (g *Grid[T]) Shape() []int { return slices.Clone(g.shape) }

// Len returns the total number of voxels.
func (g *Grid[T]) Len() int { return len(g.data) }

// Data returns the backing row-major slice. Mutations are visible to the grid.
func (g *Grid[T]) Data() []T { return g.data }

// Index converts a coordinate to its flat index. Coordinates are not bounds
// checked beyond what slice indexing enforces downstream.
func (g *Grid[T]) Index(coord []int) int {
	i := 0
	for d, c := range coord {
		i += c * g.stride[d]
	}
	return i
}

// Coord converts a flat index into a coordinate, reusing dst when it has
// the right length.
func (g *Grid[T]) Coord(i int, dst []int) []int {
	if len(dst) != len(g.shape) {
		dst = make([]int, len(g.shape))
	}
	for d := range g.shape {
		dst[d] = i / g.stride[d]
		i %= g.stride[d]
	}
	return dst
}

// In reports whether the coordinate lies inside the grid bounds.
func (g *Grid[T]) In(coord []int) bool {
	if len(coord) != len(g.shape) {
		return false
	}
	for d, c := range coord {
		if c < 0 || c >= g.shape[d] {
			return false
		}
	}
	return true
}

// At returns the element at the coordinate.
func (g *Grid[T]) At(coord ...int) T { return g.data[g.Index(coord)] }

// Set stores v at the coordinate.
func (g *Grid[T]) Set(v T, coord ...int) { g.data[g.Index(coord)] = v }

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{
		shape:  slices.Clone(g.shape),
		stride: slices.Clone(g.stride),
		data:   slices.Clone(g.data),
	}
}

// Fill sets every element to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// SameShape reports whether two grids have identical axis lengths.
func SameShape[A, B any](a *Grid[A], b *Grid[B]) bool {
	return slices.Equal(a.shape, b.shape)
}

// Map allocates a new grid of the same shape with fn applied elementwise.
func Map[A, B any](g *Grid[A], fn func(A) B) *Grid[B] {
	out := make([]B, len(g.data))
	for i, v := range g.data {
		out[i] = fn(v)
	}
	m, _ := FromData(out, g.shape...)
	return m
}

// Count returns the number of elements for which pred is true.
func Count[T any](g *Grid[T], pred func(T) bool) int {
	n := 0
	for _, v := range g.data {
		if pred(v) {
			n++
		}
	}
	return n
}
