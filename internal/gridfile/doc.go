// Package gridfile reads NetCDF datasets into dataset.Grid values.
//
// # Reading
//
// Open works on both classic CDF and HDF5-based NetCDF4 files. ReadGrid
// loads one payload variable with its dimension labels and time
// coordinate; when no variable is named it falls back to "profile",
// then xarray's anonymous default, then the first data variable.
//
// # CF decoding
//
// Declared fill and missing values become NaN, packed variables are
// unscaled, and time coordinates are decoded from their CF units
// string. Grids reach converters fully decoded; nothing downstream
// knows about the encoding.
package gridfile
