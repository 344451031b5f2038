package sourcefile

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"h2resconv/internal/errors"
)

// TimeLayout is the timestamp format of exported wide-format CSV
// series, month first, no seconds. Single-digit months, days and
// hours are accepted.
const TimeLayout = "1/2/2006 15:04"

// TimeSeriesCSV is a parsed wide-format hourly series: a timestamp
// column followed by one column per entity. Value cells stay raw
// strings and are carried into the output verbatim; rows may be
// ragged, alignment against Columns is the caller's concern.
type TimeSeriesCSV struct {
	Columns []string
	Times   []time.Time
	Rows    [][]string
}

// ReadTimeSeriesCSV parses a wide-format hourly CSV. The header must
// carry a timestamp column plus at least one entity column; data rows
// with fewer than two cells are skipped, an unparseable timestamp is
// fatal.
func ReadTimeSeriesCSV(r io.Reader) (*TimeSeriesCSV, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF || (err == nil && len(header) < 2) {
		return nil, errors.NewStructuralError("csv header missing or malformed", nil)
	}
	if err != nil {
		return nil, errors.NewParsingError("failed to read csv header", err)
	}

	ts := &TimeSeriesCSV{Columns: header[1:]}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("failed to read csv row", err).
				WithContext("line", line)
		}
		if len(row) < 2 {
			continue
		}
		t, err := time.Parse(TimeLayout, row[0])
		if err != nil {
			return nil, errors.NewParsingError(
				fmt.Sprintf("invalid timestamp %q", row[0]), err).
				WithContext("line", line)
		}
		ts.Times = append(ts.Times, t)
		ts.Rows = append(ts.Rows, row[1:])
	}
	return ts, nil
}
