// Package convert holds the dataset conversions and the runner that
// executes them.
//
// # Converters
//
// Each source dataset has one Converter: the wide demand CSV, the COP
// profile grids, the summed heat demand grid, the six renewable
// availability matrices, the hydro inflow grid and the spreadsheet
// family. Converters read through internal/sourcefile, internal/gridfile
// and internal/sheetxml, normalize into internal/dataset grids, pad
// every series to a full-day boundary and emit through internal/xmltree.
//
// # Output shape
//
// All documents are hourly and time-outermost: one container element
// per hour (a timestamped <period>, a <time> with timestamp text, or a
// <row> or <time> carrying <year> and <period> children), filled with
// one element per emitted series. Hour-of-year periods count from 1 at
// midnight January 1st.
//
// # Runner
//
// Registry lists the converters in pipeline order; Runner executes a
// selection of them concurrently via errgroup, giving each run a UUID
// run ID in its log records. Conversions are independent, so failures
// are collected and joined rather than aborting the batch, unless
// FailFast is set.
package convert
