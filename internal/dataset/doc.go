// Package dataset holds the normalized in-memory form of every source
// dataset and the time-axis arithmetic shared by all converters.
//
// # Architecture
//
// The package is organized around three types:
//
// 1. NDArray: rank-generic row-major numeric array
// 2. TimeAxis: hourly time coordinate with year/period derivation
// 3. Grid: an NDArray plus named axes and an optional time coordinate
//
// # Full-day padding
//
// Every output handed to the simulator must end on a full-day boundary,
// a time axis length that is an exact multiple of 24. PadFullDay
// extends a (values, times) pair to the next boundary by duplicating
// the final time-slice and appending one-hour timestamp increments:
//
//	values, times, err := dataset.PadFullDay(values, timeDim, times)
//	if err != nil {
//	    return err
//	}
//
// Padding holds the last value. It never interpolates and never
// zero-fills, and already aligned inputs come back unchanged.
//
// # Period numbering
//
// Periods are 1-based hour-of-year indexes: hour 0 of day 1 is period
// 1, so 2020-03-02 05:00:00 (day 62) is period (62-1)*24 + 5 + 1 = 1470.
// YearPeriod computes the pair once per time point.
//
// # Error Handling
//
// Structural problems (axis/label count disagreements) and length
// mismatches between paired arrays and coordinates are fatal and
// reported through the internal errors taxonomy; they are never
// repaired silently. Missing values (NaN) are not errors here: they
// flow through untouched and are judged by the align package.
package dataset
