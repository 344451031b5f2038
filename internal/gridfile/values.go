package gridfile

import (
	"fmt"
	"reflect"
	"strconv"
)

// flattenNumeric turns the nested slices the NetCDF reader produces
// into a flat row-major float64 slice plus its shape. Every numeric
// element type is accepted; anything else is an error.
func flattenNumeric(v interface{}) ([]float64, []int, error) {
	rv := reflect.ValueOf(v)
	shape, err := sliceShape(rv)
	if err != nil {
		return nil, nil, err
	}
	size := 1
	for _, n := range shape {
		size *= n
	}
	data := make([]float64, 0, size)
	data, err = appendNumeric(data, rv, len(shape))
	if err != nil {
		return nil, nil, err
	}
	if len(data) != size {
		return nil, nil, fmt.Errorf("ragged array: %d values for shape %v", len(data), shape)
	}
	return data, shape, nil
}

func sliceShape(rv reflect.Value) ([]int, error) {
	var shape []int
	for rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		shape = append(shape, rv.Len())
		if rv.Len() == 0 {
			return shape, nil
		}
		rv = rv.Index(0)
	}
	if _, ok := numericValue(rv); !ok {
		return nil, fmt.Errorf("unsupported element type %s", rv.Kind())
	}
	return shape, nil
}

func appendNumeric(data []float64, rv reflect.Value, depth int) ([]float64, error) {
	if depth == 0 {
		f, ok := numericValue(rv)
		if !ok {
			return nil, fmt.Errorf("unsupported element type %s", rv.Kind())
		}
		return append(data, f), nil
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("ragged array: %s at depth %d", rv.Kind(), depth)
	}
	var err error
	for i := 0; i < rv.Len(); i++ {
		data, err = appendNumeric(data, rv.Index(i), depth-1)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func numericValue(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// scalarFloat reads a numeric attribute value, unwrapping the
// single-element slices some writers use for scalars.
func scalarFloat(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() == 1 {
		rv = rv.Index(0)
	}
	return numericValue(rv)
}

// stringLabels converts a 1-D coordinate into axis labels. String
// coordinates pass through; numeric coordinates (cluster years, bins)
// are formatted decimally.
func stringLabels(v interface{}) ([]string, error) {
	if s, ok := v.([]string); ok {
		return append([]string(nil), s...), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("coordinate is not a slice but %s", rv.Kind())
	}
	out := make([]string, rv.Len())
	for i := range out {
		elem := rv.Index(i)
		switch elem.Kind() {
		case reflect.String:
			out[i] = elem.String()
		case reflect.Float32, reflect.Float64:
			out[i] = strconv.FormatFloat(elem.Float(), 'g', -1, 64)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out[i] = strconv.FormatInt(elem.Int(), 10)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			out[i] = strconv.FormatUint(elem.Uint(), 10)
		default:
			return nil, fmt.Errorf("unsupported label type %s", elem.Kind())
		}
	}
	return out, nil
}
