package convert

import (
	"strconv"
	"time"

	"h2resconv/internal/dataset"
	"h2resconv/internal/xmltree"
)

// timestampFormat renders time-axis entries in output documents.
const timestampFormat = "2006-01-02 15:04:05"

// TimeEmitter appends the per-hour container for time step t and
// returns it.
type TimeEmitter func(root *xmltree.Node, t int) *xmltree.Node

// LeafFunc fills one per-hour container with that hour's values.
// Validity decisions (skip or sentinel) happen here, at the innermost
// level.
type LeafFunc func(hour *xmltree.Node, t int) error

// NestedBuilder assembles an output document time-outermost: the root
// element, one container per hour in axis order, each filled by the
// leaf callback. Inputs must already be padded to a full-day boundary
// when they reach the builder.
type NestedBuilder struct {
	Root  string
	Steps int
	Time  TimeEmitter
	Leaf  LeafFunc
}

// Build walks every time step and returns the completed tree.
func (b NestedBuilder) Build() (*xmltree.Node, error) {
	root := xmltree.New(b.Root)
	for t := 0; t < b.Steps; t++ {
		hour := b.Time(root, t)
		if err := b.Leaf(hour, t); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// PeriodTimestampEmitter emits <period timestamp="..."> containers.
func PeriodTimestampEmitter(times []time.Time) TimeEmitter {
	return func(root *xmltree.Node, t int) *xmltree.Node {
		return root.Child("period").
			SetAttr("timestamp", times[t].Format(timestampFormat))
	}
}

// TimeTextEmitter emits <time> containers carrying the timestamp as
// leading text.
func TimeTextEmitter(times []time.Time) TimeEmitter {
	return func(root *xmltree.Node, t int) *xmltree.Node {
		node := root.Child("time")
		node.Text = times[t].Format(timestampFormat)
		return node
	}
}

// YearPeriodEmitter emits containers holding <year> and <period>
// children derived from the timestamp: period is the 1-based
// hour-of-year, so hour 0 of January 1st is period 1.
func YearPeriodEmitter(tag string, times []time.Time) TimeEmitter {
	return func(root *xmltree.Node, t int) *xmltree.Node {
		node := root.Child(tag)
		year, period := dataset.YearPeriod(times[t])
		node.AddText("year", strconv.Itoa(year))
		node.AddText("period", strconv.Itoa(period))
		return node
	}
}

// CounterEmitter emits containers holding year 0 and a 1-based row
// counter as the period.
//
// Deprecated: counter periods survive only for sources without a time
// coordinate; YearPeriodEmitter is the canonical numbering.
func CounterEmitter(tag string) TimeEmitter {
	return func(root *xmltree.Node, t int) *xmltree.Node {
		node := root.Child(tag)
		node.AddText("year", "0")
		node.AddText("period", strconv.Itoa(t+1))
		return node
	}
}
