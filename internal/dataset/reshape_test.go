package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"h2resconv/internal/errors"
)

func TestNDArray_SelectIndex(t *testing.T) {
	// shape (2, 3, 2)
	a, err := FromSlice([]float64{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}, 2, 3, 2)
	require.NoError(t, err)

	leading, err := a.SelectIndex(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, leading.Shape())
	assert.Equal(t, 7.0, leading.At(0, 0))
	assert.Equal(t, 12.0, leading.At(2, 1))

	interior, err := a.SelectIndex(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, interior.Shape())
	assert.Equal(t, 5.0, interior.At(0, 0))
	assert.Equal(t, 6.0, interior.At(0, 1))
	assert.Equal(t, 11.0, interior.At(1, 0))

	_, err = a.SelectIndex(0, 5)
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeValidation, errors.TypeOf(err))
}

func TestNDArray_Transpose2D(t *testing.T) {
	a, err := FromSlice([]float64{
		1, 2, 3,
		4, 5, 6,
	}, 2, 3)
	require.NoError(t, err)

	tr, err := a.Transpose2D()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, tr.Shape())
	assert.Equal(t, 1.0, tr.At(0, 0))
	assert.Equal(t, 4.0, tr.At(0, 1))
	assert.Equal(t, 3.0, tr.At(2, 0))
	assert.Equal(t, 6.0, tr.At(2, 1))

	_, err = New(2, 2, 2).Transpose2D()
	require.Error(t, err)
}

func TestGrid_SelectFirst(t *testing.T) {
	// (year, bus, time) with a singleton year, as availability
	// matrices are written
	values, err := FromSlice([]float64{
		1, 2, 3,
		4, 5, 6,
	}, 1, 2, 3)
	require.NoError(t, err)
	g := &Grid{
		Values: values,
		Axes: []Axis{
			{Name: "year", Labels: []string{"2030"}},
			{Name: "bus", Labels: []string{"A", "B"}},
			{Name: "time"},
		},
		TimeDim: 2,
	}

	squeezed, err := g.SelectFirst("year")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, squeezed.Values.Shape())
	assert.Equal(t, "bus", squeezed.Axes[0].Name)
	assert.Equal(t, "time", squeezed.Axes[1].Name)
	assert.Equal(t, 1, squeezed.TimeDim)
	assert.Equal(t, 6.0, squeezed.Values.At(1, 2))
}

func TestGrid_SelectFirst_AbsentAxis(t *testing.T) {
	g := busTimeGrid(t, [][]float64{{1, 2}}, []string{"A"}, time.Time{})

	out, err := g.SelectFirst("bin")
	require.NoError(t, err)
	assert.Same(t, g, out)
}

func TestGrid_Orient(t *testing.T) {
	// (time, bus) source turned into (bus, time)
	values, err := FromSlice([]float64{
		1, 4,
		2, 5,
		3, 6,
	}, 3, 2)
	require.NoError(t, err)
	g := &Grid{
		Values:  values,
		Axes:    []Axis{{Name: "time"}, {Name: "bus", Labels: []string{"A", "B"}}},
		TimeDim: 0,
	}

	oriented, err := g.Orient("bus", "time")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, oriented.Values.Shape())
	assert.Equal(t, "bus", oriented.Axes[0].Name)
	assert.Equal(t, 1, oriented.TimeDim)
	assert.Equal(t, 1.0, oriented.Values.At(0, 0))
	assert.Equal(t, 3.0, oriented.Values.At(0, 2))
	assert.Equal(t, 6.0, oriented.Values.At(1, 2))
}

func TestGrid_Orient_AlreadyOriented(t *testing.T) {
	g := busTimeGrid(t, [][]float64{{1, 2}}, []string{"A"}, time.Time{})

	out, err := g.Orient("bus", "time")
	require.NoError(t, err)
	assert.Same(t, g, out)
}

func TestGrid_Orient_MissingAxis(t *testing.T) {
	g := busTimeGrid(t, [][]float64{{1, 2}}, []string{"A"}, time.Time{})

	_, err := g.Orient("bus", "snapshots")
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeValidation, errors.TypeOf(err))
}
