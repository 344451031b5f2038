package dataset

import (
	"h2resconv/internal/errors"
)

// MissingToFullDay returns how many hourly slots separate n from the
// next full-day boundary. Zero when n is already a multiple of 24.
func MissingToFullDay(n int) int {
	rem := n % 24
	if rem == 0 {
		return 0
	}
	return 24 - rem
}

// PadFullDay extends values and times to the next multiple of 24 hours
// by duplicating the final time-slice and appending one-hour timestamp
// increments. This is a deliberate hold-last-value policy, never an
// interpolation.
//
// An empty time axis is a no-op: there is nothing to pad. A length
// disagreement between values and times is a caller precondition
// violation and fails with a length mismatch error. Already aligned
// inputs are returned unchanged.
func PadFullDay(values *NDArray, timeAxis int, times *TimeAxis) (*NDArray, *TimeAxis, error) {
	if times.Len() == 0 {
		return values, times, nil
	}
	if values.Len(timeAxis) != times.Len() {
		return nil, nil, errors.NewLengthMismatchError(
			"time axis length mismatch between coordinates and data").
			WithContext("values_len", values.Len(timeAxis)).
			WithContext("times_len", times.Len())
	}
	missing := MissingToFullDay(times.Len())
	if missing == 0 {
		return values, times, nil
	}
	return values.ExtendAxis(timeAxis, missing), times.Extend(missing), nil
}
