package dataset

import (
	"fmt"
	"math"

	"h2resconv/internal/errors"
)

// Axis names one dimension of a grid. Label axes carry one string per
// coordinate value; the time axis carries no labels.
type Axis struct {
	Name   string
	Labels []string
}

// Grid is the normalized in-memory form of one source dataset: an N-D
// value array, one named axis per dimension, and optionally a decoded
// time coordinate for the time dimension. Sources that index by period
// number only have a time dimension but a nil Times.
type Grid struct {
	Values  *NDArray
	Axes    []Axis
	TimeDim int // index of the time dimension, -1 when absent
	Times   *TimeAxis
}

// Validate checks the structural invariants: one axis per dimension,
// label counts matching dimension lengths, and a time coordinate no
// longer than its dimension. Axes without a coordinate variable carry
// nil labels and are exempt from the count check.
func (g *Grid) Validate() error {
	if g.Values == nil {
		return errors.NewStructuralError("grid has no values", nil)
	}
	if len(g.Axes) != g.Values.Rank() {
		return errors.NewStructuralError(
			fmt.Sprintf("grid has %d axes for rank %d values", len(g.Axes), g.Values.Rank()), nil)
	}
	for i, ax := range g.Axes {
		if i == g.TimeDim || ax.Labels == nil {
			continue
		}
		if len(ax.Labels) != g.Values.Len(i) {
			return errors.NewLengthMismatchError(
				fmt.Sprintf("axis %q has %d labels for dimension length %d",
					ax.Name, len(ax.Labels), g.Values.Len(i)))
		}
	}
	if g.TimeDim >= 0 && g.Times.Len() != 0 && g.Times.Len() != g.Values.Len(g.TimeDim) {
		return errors.NewLengthMismatchError(
			fmt.Sprintf("time coordinate has %d entries for dimension length %d",
				g.Times.Len(), g.Values.Len(g.TimeDim)))
	}
	return nil
}

// AxisIndex returns the position of the named axis, or -1.
func (g *Grid) AxisIndex(name string) int {
	for i, ax := range g.Axes {
		if ax.Name == name {
			return i
		}
	}
	return -1
}

// Labels returns the labels of the named axis, or nil.
func (g *Grid) Labels(name string) []string {
	if i := g.AxisIndex(name); i >= 0 {
		return g.Axes[i].Labels
	}
	return nil
}

// HourCount returns the length of the time dimension, zero without one.
func (g *Grid) HourCount() int {
	if g.TimeDim < 0 {
		return 0
	}
	return g.Values.Len(g.TimeDim)
}

// PadFullDay returns a grid padded to the next full-day boundary along
// its time dimension. With a time coordinate both values and times are
// extended together; without one the values alone are extended and
// downstream indexing stays count-based. Grids without a time
// dimension are returned unchanged.
func (g *Grid) PadFullDay() (*Grid, error) {
	if g.TimeDim < 0 {
		return g, nil
	}
	if g.Times.Len() > 0 {
		values, times, err := PadFullDay(g.Values, g.TimeDim, g.Times)
		if err != nil {
			return nil, err
		}
		if values == g.Values {
			return g, nil
		}
		out := *g
		out.Values = values
		out.Times = times
		return &out, nil
	}
	missing := MissingToFullDay(g.Values.Len(g.TimeDim))
	if missing == 0 {
		return g, nil
	}
	out := *g
	out.Values = g.Values.ExtendAxis(g.TimeDim, missing)
	return &out, nil
}

// HasMissingAt reports whether the series obtained by fixing the given
// axis at the given label contains any NaN. It backs the per-label
// validity predicate of alignment.
func (g *Grid) HasMissingAt(axis int, labelIdx int) bool {
	found := false
	g.walk(axis, labelIdx, func(v float64) bool {
		if math.IsNaN(v) {
			found = true
			return false
		}
		return true
	})
	return found
}

// walk visits every element whose coordinate on the given axis equals
// fixed, stopping early when fn returns false.
func (g *Grid) walk(axis int, fixed int, fn func(v float64) bool) {
	shape := g.Values.Shape()
	idx := make([]int, len(shape))
	idx[axis] = fixed

	var rec func(dim int) bool
	rec = func(dim int) bool {
		if dim == len(shape) {
			return fn(g.Values.At(idx...))
		}
		if dim == axis {
			return rec(dim + 1)
		}
		for i := 0; i < shape[dim]; i++ {
			idx[dim] = i
			if !rec(dim + 1) {
				return false
			}
		}
		return true
	}
	rec(0)
}
