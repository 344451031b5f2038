package gridfile

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenNumeric(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantData  []float64
		wantShape []int
	}{
		{
			name:      "flat float64",
			input:     []float64{1, 2, 3},
			wantData:  []float64{1, 2, 3},
			wantShape: []int{3},
		},
		{
			name:      "nested float32",
			input:     [][]float32{{1, 2, 3}, {4, 5, 6}},
			wantData:  []float64{1, 2, 3, 4, 5, 6},
			wantShape: []int{2, 3},
		},
		{
			name:      "rank three int16",
			input:     [][][]int16{{{1}, {2}}, {{3}, {4}}},
			wantData:  []float64{1, 2, 3, 4},
			wantShape: []int{2, 2, 1},
		},
		{
			name:      "int64 time offsets",
			input:     []int64{0, 3600, 7200},
			wantData:  []float64{0, 3600, 7200},
			wantShape: []int{3},
		},
		{
			name:      "scalar",
			input:     float64(7),
			wantData:  []float64{7},
			wantShape: nil,
		},
		{
			name:      "empty series",
			input:     []float64{},
			wantData:  []float64{},
			wantShape: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, shape, err := flattenNumeric(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, data)
			assert.Equal(t, tt.wantShape, shape)
		})
	}
}

func TestFlattenNumeric_Rejects(t *testing.T) {
	_, _, err := flattenNumeric([]string{"a"})
	require.Error(t, err)

	_, _, err = flattenNumeric("scalar string")
	require.Error(t, err)

	// ragged rows cannot map onto a rectangular shape
	_, _, err = flattenNumeric([][]float64{{1, 2}, {3}})
	require.Error(t, err)
}

func TestStringLabels(t *testing.T) {
	got, err := stringLabels([]string{"AL1 0", "AT1 0"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AL1 0", "AT1 0"}, got)

	got, err = stringLabels([]int32{2030, 2050})
	require.NoError(t, err)
	assert.Equal(t, []string{"2030", "2050"}, got)

	got, err = stringLabels([]float64{1, 2.5})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2.5"}, got)

	_, err = stringLabels("not a slice")
	require.Error(t, err)
}

func TestScalarFloat(t *testing.T) {
	v, ok := scalarFloat(float32(9.5))
	assert.True(t, ok)
	assert.Equal(t, 9.5, v)

	v, ok = scalarFloat([]float64{-1})
	assert.True(t, ok)
	assert.Equal(t, -1.0, v)

	v, ok = scalarFloat([]int16{40})
	assert.True(t, ok)
	assert.Equal(t, 40.0, v)

	_, ok = scalarFloat("nope")
	assert.False(t, ok)

	_, ok = scalarFloat([]float64{1, 2})
	assert.False(t, ok)
}

// attrMap is a test double for the reader's attribute interface.
type attrMap map[string]interface{}

func (m attrMap) Get(key string) (interface{}, bool) {
	v, ok := m[key]
	return v, ok
}

func (m attrMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestApplyCFDecoding(t *testing.T) {
	t.Run("fill value becomes NaN", func(t *testing.T) {
		data := []float64{1, -9999, 3}
		applyCFDecoding(data, attrMap{"_FillValue": -9999.0})
		assert.Equal(t, 1.0, data[0])
		assert.True(t, math.IsNaN(data[1]))
		assert.Equal(t, 3.0, data[2])
	})

	t.Run("missing value becomes NaN", func(t *testing.T) {
		data := []float64{5, 1e20}
		applyCFDecoding(data, attrMap{"missing_value": []float32{1e20}})
		assert.True(t, math.IsNaN(data[1]))
	})

	t.Run("nan fill leaves data alone", func(t *testing.T) {
		data := []float64{1, math.NaN()}
		applyCFDecoding(data, attrMap{"_FillValue": math.NaN()})
		assert.Equal(t, 1.0, data[0])
		assert.True(t, math.IsNaN(data[1]))
	})

	t.Run("packed values are unscaled", func(t *testing.T) {
		data := []float64{0, 10, 20}
		applyCFDecoding(data, attrMap{"scale_factor": 0.5, "add_offset": 100.0})
		assert.Equal(t, []float64{100, 105, 110}, data)
	})

	t.Run("fill masked before unscaling", func(t *testing.T) {
		data := []float64{-1, 10}
		applyCFDecoding(data, attrMap{"_FillValue": -1.0, "scale_factor": 2.0})
		assert.True(t, math.IsNaN(data[0]))
		assert.Equal(t, 20.0, data[1])
	})

	t.Run("no attributes", func(t *testing.T) {
		data := []float64{1, 2}
		applyCFDecoding(data, nil)
		assert.Equal(t, []float64{1, 2}, data)
	})
}
