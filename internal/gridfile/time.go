package gridfile

import (
	"fmt"
	"math"
	"strings"
	"time"

	"h2resconv/internal/errors"
)

// cfEpochLayouts are the base-date shapes seen in CF units strings.
var cfEpochLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var cfSteps = map[string]time.Duration{
	"days": 24 * time.Hour, "day": 24 * time.Hour, "d": 24 * time.Hour,
	"hours": time.Hour, "hour": time.Hour, "hrs": time.Hour, "hr": time.Hour, "h": time.Hour,
	"minutes": time.Minute, "minute": time.Minute, "mins": time.Minute, "min": time.Minute,
	"seconds": time.Second, "second": time.Second, "secs": time.Second, "sec": time.Second, "s": time.Second,
	"milliseconds": time.Millisecond, "ms": time.Millisecond,
	"microseconds": time.Microsecond, "us": time.Microsecond,
	"nanoseconds": time.Nanosecond, "ns": time.Nanosecond,
}

// DecodeCFTimes converts a numeric time coordinate into timestamps
// following the CF convention: units declares a step and an epoch,
// "hours since 2013-01-01 00:00:00". Only real calendars are
// supported; model calendars (noleap, 360_day) are rejected.
func DecodeCFTimes(offsets []float64, units, calendar string) ([]time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(calendar)) {
	case "", "standard", "gregorian", "proleptic_gregorian":
	default:
		return nil, errors.NewParsingError(
			fmt.Sprintf("unsupported calendar %q", calendar), nil)
	}

	step, epoch, err := parseCFUnits(units)
	if err != nil {
		return nil, err
	}

	out := make([]time.Time, len(offsets))
	for i, off := range offsets {
		whole, frac := math.Modf(off)
		d := time.Duration(whole)*step + time.Duration(frac*float64(step))
		out[i] = epoch.Add(d)
	}
	return out, nil
}

func parseCFUnits(units string) (time.Duration, time.Time, error) {
	parts := strings.SplitN(units, " since ", 2)
	if len(parts) != 2 {
		return 0, time.Time{}, errors.NewParsingError(
			fmt.Sprintf("malformed time units %q", units), nil)
	}

	step, ok := cfSteps[strings.ToLower(strings.TrimSpace(parts[0]))]
	if !ok {
		return 0, time.Time{}, errors.NewParsingError(
			fmt.Sprintf("unsupported time unit %q", parts[0]), nil)
	}

	base := strings.TrimSpace(parts[1])
	base = strings.TrimSuffix(base, " UTC")
	base = strings.TrimSuffix(base, "Z")
	for _, layout := range cfEpochLayouts {
		if epoch, err := time.Parse(layout, base); err == nil {
			return step, epoch, nil
		}
	}
	return 0, time.Time{}, errors.NewParsingError(
		fmt.Sprintf("unsupported epoch %q in time units", base), nil)
}
