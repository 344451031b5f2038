// Package align computes cross-dataset label unions and per-label
// validity. Sources that cover different label sets are expected (a
// technology without a given bus is simply not emitted); sources that
// must describe the same catalogue and do not are a hard failure.
package align

import (
	"fmt"
	"sort"

	"h2resconv/internal/errors"
)

// Policy decides what a builder emits for an invalid (source, label)
// combination. It is always an explicit parameter at the call site.
type Policy int

const (
	// PolicySkip contributes no child for invalid combinations.
	PolicySkip Policy = iota
	// PolicyEmitSentinel contributes the sentinel text instead.
	PolicyEmitSentinel
)

// SentinelText is the legacy placeholder emitted under PolicyEmitSentinel.
const SentinelText = "None"

// Source is one dataset entering alignment: its identifier, the labels
// it carries along the shared axis, and a predicate reporting whether a
// label's full time series contains missing values. A nil predicate
// means the source has no missing values.
type Source struct {
	ID         string
	Labels     []string
	HasMissing func(label string) bool
}

type sourceLabel struct {
	source string
	label  string
}

// Result is the outcome of alignment: the sorted union of all labels
// and the validity of every (source, label) combination.
type Result struct {
	Union []string
	valid map[sourceLabel]bool
}

// Valid reports whether the label is present in the source and free of
// missing values there. Labels absent from a source are invalid for
// that source, which is not an error.
func (r Result) Valid(sourceID, label string) bool {
	return r.valid[sourceLabel{source: sourceID, label: label}]
}

// Align computes the lexicographically sorted union of the sources'
// labels and each combination's validity. The ordering is deterministic
// for identical inputs across runs.
func Align(sources []Source) Result {
	seen := make(map[string]struct{})
	valid := make(map[sourceLabel]bool)

	for _, src := range sources {
		for _, label := range src.Labels {
			seen[label] = struct{}{}
			ok := src.HasMissing == nil || !src.HasMissing(label)
			valid[sourceLabel{source: src.ID, label: label}] = ok
		}
	}

	union := make([]string, 0, len(seen))
	for label := range seen {
		union = append(union, label)
	}
	sort.Strings(union)

	return Result{Union: union, valid: valid}
}

// RequireSameCatalogue verifies that two sources declared to describe
// the same entity catalogue agree exactly, in membership and order.
// Any divergence means mismatched input vintages and aborts the
// conversion; there is no best-effort merge.
func RequireSameCatalogue(what string, a, b []string) error {
	if len(a) != len(b) {
		return errors.NewConsistencyError(fmt.Sprintf("%s differ between datasets", what)).
			WithContext("left_len", len(a)).
			WithContext("right_len", len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return errors.NewConsistencyError(fmt.Sprintf("%s differ between datasets", what)).
				WithContext("index", i).
				WithContext("left", a[i]).
				WithContext("right", b[i])
		}
	}
	return nil
}
