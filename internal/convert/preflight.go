package convert

import (
	"os"

	"h2resconv/internal/errors"
)

// InputStatus reports whether one input file of a conversion is
// present on disk.
type InputStatus struct {
	Conversion string
	Path       string
	Err        error
}

// OK reports whether the input was found.
func (s InputStatus) OK() bool { return s.Err == nil }

// CheckInputs stats every input of every converter, in order, without
// opening or parsing anything. Sheet conversions report the workbook
// their fallback would actually read.
func CheckInputs(converters []Converter) []InputStatus {
	var statuses []InputStatus
	for _, conv := range converters {
		for _, path := range conv.Inputs() {
			status := InputStatus{Conversion: conv.Name(), Path: path}
			if _, err := os.Stat(path); err != nil {
				status.Err = errors.NewStorageError("input file missing", err).
					WithContext("path", path)
			}
			statuses = append(statuses, status)
		}
	}
	return statuses
}

// MissingInputs counts the statuses whose input was not found.
func MissingInputs(statuses []InputStatus) int {
	n := 0
	for _, s := range statuses {
		if !s.OK() {
			n++
		}
	}
	return n
}
