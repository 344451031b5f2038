package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"h2resconv/internal/errors"
)

// NDArray is a rank-generic numeric array stored in row-major order.
// It is the single concrete carrier for 1-D series, 2-D label-by-time
// matrices and higher-rank grids, so padding and slicing logic exists
// once rather than once per rank.
type NDArray struct {
	data  []float64
	shape []int
}

// New creates a zero-filled array with the given shape.
// Zero-length dimensions are allowed (an empty time axis is valid input).
func New(shape ...int) *NDArray {
	size := 1
	for _, n := range shape {
		if n < 0 {
			panic(fmt.Sprintf("dataset: negative dimension %d", n))
		}
		size *= n
	}
	return &NDArray{
		data:  make([]float64, size),
		shape: append([]int(nil), shape...),
	}
}

// FromSlice wraps data in an array of the given shape.
// The slice is used directly, not copied.
func FromSlice(data []float64, shape ...int) (*NDArray, error) {
	size := 1
	for _, n := range shape {
		if n < 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("negative dimension %d", n))
		}
		size *= n
	}
	if len(data) != size {
		return nil, errors.NewLengthMismatchError(
			fmt.Sprintf("data length %d does not match shape %v", len(data), shape))
	}
	return &NDArray{data: data, shape: append([]int(nil), shape...)}, nil
}

// Rank returns the number of dimensions.
func (a *NDArray) Rank() int {
	return len(a.shape)
}

// Shape returns a copy of the dimension lengths.
func (a *NDArray) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Len returns the length of one axis.
func (a *NDArray) Len(axis int) int {
	a.checkAxis(axis)
	return a.shape[axis]
}

// Size returns the total number of elements.
func (a *NDArray) Size() int {
	return len(a.data)
}

// At returns the element at the given index, one coordinate per axis.
func (a *NDArray) At(idx ...int) float64 {
	return a.data[a.offset(idx)]
}

// Set stores v at the given index.
func (a *NDArray) Set(v float64, idx ...int) {
	a.data[a.offset(idx)] = v
}

// ExtendAxis returns a new array whose given axis has grown by count
// copies of its final hyperslab. All other axes are untouched. This is
// the hold-last-value primitive behind full-day padding.
func (a *NDArray) ExtendAxis(axis, count int) *NDArray {
	a.checkAxis(axis)
	if count <= 0 {
		return a
	}
	oldLen := a.shape[axis]
	if oldLen == 0 {
		panic("dataset: cannot extend an empty axis")
	}

	outer, inner := a.outerInner(axis)
	newLen := oldLen + count
	newShape := append([]int(nil), a.shape...)
	newShape[axis] = newLen

	out := &NDArray{
		data:  make([]float64, outer*newLen*inner),
		shape: newShape,
	}
	for o := 0; o < outer; o++ {
		srcBase := o * oldLen * inner
		dstBase := o * newLen * inner
		copy(out.data[dstBase:dstBase+oldLen*inner], a.data[srcBase:srcBase+oldLen*inner])
		last := a.data[srcBase+(oldLen-1)*inner : srcBase+oldLen*inner]
		for k := oldLen; k < newLen; k++ {
			copy(out.data[dstBase+k*inner:dstBase+(k+1)*inner], last)
		}
	}
	return out
}

// Add accumulates b into the receiver element-wise.
// Shapes must match exactly.
func (a *NDArray) Add(b *NDArray) error {
	if !shapeEqual(a.shape, b.shape) {
		return errors.NewLengthMismatchError(
			fmt.Sprintf("cannot add arrays of shape %v and %v", a.shape, b.shape))
	}
	floats.Add(a.data, b.data)
	return nil
}

// Clone returns a deep copy.
func (a *NDArray) Clone() *NDArray {
	return &NDArray{
		data:  append([]float64(nil), a.data...),
		shape: append([]int(nil), a.shape...),
	}
}

func (a *NDArray) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("dataset: index rank %d does not match array rank %d", len(idx), len(a.shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= a.shape[i] {
			panic(fmt.Sprintf("dataset: index %d out of range [0,%d) on axis %d", x, a.shape[i], i))
		}
		off = off*a.shape[i] + x
	}
	return off
}

func (a *NDArray) checkAxis(axis int) {
	if axis < 0 || axis >= len(a.shape) {
		panic(fmt.Sprintf("dataset: axis %d out of range for rank %d", axis, len(a.shape)))
	}
}

// outerInner returns the element counts before and after the given axis
// in row-major order.
func (a *NDArray) outerInner(axis int) (int, int) {
	outer, inner := 1, 1
	for i := 0; i < axis; i++ {
		outer *= a.shape[i]
	}
	for i := axis + 1; i < len(a.shape); i++ {
		inner *= a.shape[i]
	}
	return outer, inner
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
