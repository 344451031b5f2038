package dataset

import (
	"fmt"

	"h2resconv/internal/errors"
)

// SelectIndex returns a new array with the given axis removed, keeping
// only the elements at position idx along it. The inverse of adding a
// singleton dimension.
func (a *NDArray) SelectIndex(axis, idx int) (*NDArray, error) {
	a.checkAxis(axis)
	if idx < 0 || idx >= a.shape[axis] {
		return nil, errors.NewValidationError(
			fmt.Sprintf("index %d out of range [0,%d) on axis %d", idx, a.shape[axis], axis))
	}

	outer, inner := a.outerInner(axis)
	axisLen := a.shape[axis]
	newShape := make([]int, 0, len(a.shape)-1)
	newShape = append(newShape, a.shape[:axis]...)
	newShape = append(newShape, a.shape[axis+1:]...)

	out := &NDArray{
		data:  make([]float64, outer*inner),
		shape: newShape,
	}
	for o := 0; o < outer; o++ {
		src := (o*axisLen + idx) * inner
		copy(out.data[o*inner:(o+1)*inner], a.data[src:src+inner])
	}
	return out, nil
}

// Transpose2D returns the transpose of a rank-2 array.
func (a *NDArray) Transpose2D() (*NDArray, error) {
	if len(a.shape) != 2 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("cannot transpose array of rank %d", len(a.shape)))
	}
	rows, cols := a.shape[0], a.shape[1]
	out := New(cols, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.data[j*rows+i] = a.data[i*cols+j]
		}
	}
	return out, nil
}

// SelectFirst drops the named axis by keeping its first slab, the way
// singleton year and bin dimensions are squeezed out of availability
// matrices. Grids without that axis are returned unchanged.
func (g *Grid) SelectFirst(name string) (*Grid, error) {
	axis := g.AxisIndex(name)
	if axis < 0 {
		return g, nil
	}
	if g.Values.Len(axis) == 0 {
		return nil, errors.NewStructuralError(
			fmt.Sprintf("cannot select from empty axis %q", name), nil)
	}

	values, err := g.Values.SelectIndex(axis, 0)
	if err != nil {
		return nil, err
	}
	out := Grid{
		Values:  values,
		Axes:    make([]Axis, 0, len(g.Axes)-1),
		TimeDim: g.TimeDim,
		Times:   g.Times,
	}
	out.Axes = append(out.Axes, g.Axes[:axis]...)
	out.Axes = append(out.Axes, g.Axes[axis+1:]...)
	switch {
	case axis == g.TimeDim:
		out.TimeDim = -1
		out.Times = nil
	case g.TimeDim > axis:
		out.TimeDim = g.TimeDim - 1
	}
	return &out, nil
}

// Orient reorders a rank-2 grid so its axes appear as (first, second),
// transposing the values when needed.
func (g *Grid) Orient(first, second string) (*Grid, error) {
	if g.Values.Rank() != 2 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("cannot orient grid of rank %d", g.Values.Rank()))
	}
	i1, i2 := g.AxisIndex(first), g.AxisIndex(second)
	if i1 < 0 || i2 < 0 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("grid has no axis pair (%q, %q)", first, second))
	}
	if i1 == 0 && i2 == 1 {
		return g, nil
	}

	values, err := g.Values.Transpose2D()
	if err != nil {
		return nil, err
	}
	out := Grid{
		Values:  values,
		Axes:    []Axis{g.Axes[1], g.Axes[0]},
		TimeDim: g.TimeDim,
		Times:   g.Times,
	}
	if g.TimeDim == 0 {
		out.TimeDim = 1
	} else if g.TimeDim == 1 {
		out.TimeDim = 0
	}
	return &out, nil
}
