package xmltree

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders a value with the smallest number of digits that
// round-trips, never a fixed decimal count. Integral values keep a
// trailing ".0" so 19 renders as "19.0", matching the representation
// the downstream simulator has always consumed.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
