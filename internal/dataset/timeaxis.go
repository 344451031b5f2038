package dataset

import (
	"time"
)

// TimeAxis is an ordered hourly time coordinate. Construction assumes
// strictly increasing hourly spacing; the padder relies on it when it
// appends new timestamps.
type TimeAxis struct {
	times []time.Time
}

// NewTimeAxis wraps the given timestamps. The slice is used directly.
func NewTimeAxis(times []time.Time) *TimeAxis {
	return &TimeAxis{times: times}
}

// Len returns the number of time points.
func (a *TimeAxis) Len() int {
	if a == nil {
		return 0
	}
	return len(a.times)
}

// At returns the i-th timestamp.
func (a *TimeAxis) At(i int) time.Time {
	return a.times[i]
}

// Times returns the underlying timestamps.
func (a *TimeAxis) Times() []time.Time {
	if a == nil {
		return nil
	}
	return a.times
}

// Extend returns a new axis with count additional timestamps, each one
// hour after the previous, continuing from the final entry.
func (a *TimeAxis) Extend(count int) *TimeAxis {
	if count <= 0 {
		return a
	}
	if len(a.times) == 0 {
		panic("dataset: cannot extend an empty time axis")
	}
	out := make([]time.Time, len(a.times), len(a.times)+count)
	copy(out, a.times)
	last := a.times[len(a.times)-1]
	for k := 1; k <= count; k++ {
		out = append(out, last.Add(time.Duration(k)*time.Hour))
	}
	return &TimeAxis{times: out}
}

// YearPeriod derives the calendar year and the 1-based hour-of-year
// period for a timestamp: hour 0 of January 1st is period 1.
func YearPeriod(ts time.Time) (int, int) {
	return ts.Year(), (ts.YearDay()-1)*24 + ts.Hour() + 1
}
