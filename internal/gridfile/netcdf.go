package gridfile

import (
	"fmt"
	"math"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"h2resconv/internal/dataset"
	"h2resconv/internal/errors"
)

// defaultVariables are the payload names tried in order when the
// caller does not pick one. Cluster exports either name their variable
// "profile" or keep xarray's anonymous default.
var defaultVariables = []string{"profile", "__xarray_dataarray_variable__"}

// File is an open NetCDF dataset, classic or HDF5-based. All contact
// with the underlying library lives in this file; converters only ever
// see dataset.Grid.
type File struct {
	nc   api.Group
	path string
}

// Open opens a NetCDF file for reading.
func Open(path string) (*File, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open netcdf file", err).
			WithContext("path", path)
	}
	return &File{nc: nc, path: path}, nil
}

// Close releases the underlying reader.
func (f *File) Close() {
	f.nc.Close()
}

// Path returns the file path for error context.
func (f *File) Path() string {
	return f.path
}

// HasVariable reports whether the file contains the named variable.
func (f *File) HasVariable(name string) bool {
	for _, v := range f.nc.ListVariables() {
		if v == name {
			return true
		}
	}
	return false
}

// DataVariables lists the payload variables in file order, excluding
// classic coordinate variables (1-D, named after their own dimension).
func (f *File) DataVariables() []string {
	var out []string
	for _, name := range f.nc.ListVariables() {
		v, err := f.nc.GetVariable(name)
		if err != nil {
			continue
		}
		if len(v.Dimensions) == 1 && v.Dimensions[0] == name {
			continue
		}
		out = append(out, name)
	}
	return out
}

// ResolveVariable returns the payload variable to read: the requested
// name when given, else the first conventional name present, else the
// first data variable in the file.
func (f *File) ResolveVariable(name string) (string, error) {
	if name != "" {
		if f.HasVariable(name) {
			return name, nil
		}
		return "", errors.NewStructuralError(
			fmt.Sprintf("variable %q not found", name), nil).
			WithContext("path", f.path)
	}
	for _, candidate := range defaultVariables {
		if f.HasVariable(candidate) {
			return candidate, nil
		}
	}
	if vars := f.DataVariables(); len(vars) > 0 {
		return vars[0], nil
	}
	return "", errors.NewStructuralError("no data variables in file", nil).
		WithContext("path", f.path)
}

// ReadGrid loads one variable into a Grid: values with fill values
// masked to NaN, one named axis per dimension, labels taken from the
// same-named coordinate variable where one exists, and the decoded
// time coordinate for the dimension named timeDim. Dimensions without
// a coordinate stay unlabeled; converters decide whether that is
// acceptable for their source.
func (f *File) ReadGrid(variable, timeDim string) (*dataset.Grid, error) {
	name, err := f.ResolveVariable(variable)
	if err != nil {
		return nil, err
	}
	v, err := f.nc.GetVariable(name)
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("failed to read variable %q", name), err).
			WithContext("path", f.path)
	}

	data, shape, err := flattenNumeric(v.Values)
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("variable %q has unsupported data", name), err).
			WithContext("path", f.path)
	}
	applyCFDecoding(data, v.Attributes)

	values, err := dataset.FromSlice(data, shape...)
	if err != nil {
		return nil, err
	}
	if len(v.Dimensions) != len(shape) {
		return nil, errors.NewStructuralError(
			fmt.Sprintf("variable %q declares %d dimensions for rank %d data",
				name, len(v.Dimensions), len(shape)), nil).
			WithContext("path", f.path)
	}

	g := &dataset.Grid{Values: values, TimeDim: -1}
	for i, dim := range v.Dimensions {
		ax := dataset.Axis{Name: dim}
		if dim == timeDim {
			g.TimeDim = i
			times, err := f.readTimeCoordinate(dim)
			if err != nil {
				return nil, err
			}
			g.Times = times
		} else {
			labels, err := f.readLabelCoordinate(dim)
			if err != nil {
				return nil, err
			}
			ax.Labels = labels
		}
		g.Axes = append(g.Axes, ax)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// readLabelCoordinate returns the labels of a dimension, or nil when
// the file carries no coordinate variable for it.
func (f *File) readLabelCoordinate(dim string) ([]string, error) {
	if !f.HasVariable(dim) {
		return nil, nil
	}
	v, err := f.nc.GetVariable(dim)
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("failed to read coordinate %q", dim), err).
			WithContext("path", f.path)
	}
	labels, err := stringLabels(v.Values)
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("coordinate %q has unsupported labels", dim), err).
			WithContext("path", f.path)
	}
	return labels, nil
}

// readTimeCoordinate decodes the CF time coordinate of a dimension, or
// returns nil when the file carries none and indexing stays count-based.
func (f *File) readTimeCoordinate(dim string) (*dataset.TimeAxis, error) {
	if !f.HasVariable(dim) {
		return nil, nil
	}
	v, err := f.nc.GetVariable(dim)
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("failed to read time coordinate %q", dim), err).
			WithContext("path", f.path)
	}
	units, ok := attrString(v.Attributes, "units")
	if !ok {
		return nil, errors.NewParsingError(
			fmt.Sprintf("time coordinate %q has no units attribute", dim), nil).
			WithContext("path", f.path)
	}
	calendar, _ := attrString(v.Attributes, "calendar")

	offsets, shape, err := flattenNumeric(v.Values)
	if err != nil || len(shape) != 1 {
		return nil, errors.NewParsingError(
			fmt.Sprintf("time coordinate %q is not a numeric series", dim), err).
			WithContext("path", f.path)
	}
	times, err := DecodeCFTimes(offsets, units, calendar)
	if err != nil {
		return nil, err
	}
	return dataset.NewTimeAxis(times), nil
}

// applyCFDecoding masks declared fill values to NaN and applies packed
// scale/offset, in place.
func applyCFDecoding(data []float64, attrs api.AttributeMap) {
	if attrs == nil {
		return
	}
	if fill, ok := attrFloat(attrs, "_FillValue"); ok {
		maskValue(data, fill)
	}
	if missing, ok := attrFloat(attrs, "missing_value"); ok {
		maskValue(data, missing)
	}

	scale, hasScale := attrFloat(attrs, "scale_factor")
	offset, hasOffset := attrFloat(attrs, "add_offset")
	if !hasScale && !hasOffset {
		return
	}
	if !hasScale {
		scale = 1
	}
	if !hasOffset {
		offset = 0
	}
	for i, v := range data {
		if !math.IsNaN(v) {
			data[i] = v*scale + offset
		}
	}
}

func maskValue(data []float64, fill float64) {
	if math.IsNaN(fill) {
		return
	}
	for i, v := range data {
		if v == fill {
			data[i] = math.NaN()
		}
	}
}

func attrString(attrs api.AttributeMap, key string) (string, bool) {
	if attrs == nil {
		return "", false
	}
	v, ok := attrs.Get(key)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case []string:
		if len(s) == 1 {
			return s[0], true
		}
	}
	return "", false
}

func attrFloat(attrs api.AttributeMap, key string) (float64, bool) {
	if attrs == nil {
		return 0, false
	}
	v, ok := attrs.Get(key)
	if !ok {
		return 0, false
	}
	return scalarFloat(v)
}
