package convert

import (
	"context"
	"log/slog"

	"h2resconv/internal/config"
	"h2resconv/internal/dataset"
	"h2resconv/internal/sourcefile"
	"h2resconv/internal/xmltree"
)

// DemandConverter turns the wide-format electricity demand CSV into an
// hourly period document. Cell values pass through as raw text; only
// the timestamps are parsed.
type DemandConverter struct {
	cfg *config.Config
}

// NewDemandConverter creates the electricity demand converter.
func NewDemandConverter(cfg *config.Config) *DemandConverter {
	return &DemandConverter{cfg: cfg}
}

// Name identifies the conversion in logs and on the command line.
func (c *DemandConverter) Name() string { return "demand" }

// Inputs lists the files the conversion reads.
func (c *DemandConverter) Inputs() []string {
	return []string{c.cfg.ElectricityDemandPath()}
}

// OutputFile returns the document name under the export directory.
func (c *DemandConverter) OutputFile() string { return "demand_2020_2050.xml" }

// Run reads the demand CSV, pads it to a full-day boundary and writes
// the period document.
func (c *DemandConverter) Run(ctx context.Context, logger *slog.Logger) error {
	path := c.cfg.ElectricityDemandPath()
	r, err := sourcefile.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	series, err := sourcefile.ReadTimeSeriesCSV(r)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "demand series loaded",
		slog.String("path", path),
		slog.Int("countries", len(series.Columns)),
		slog.Int("hours", len(series.Times)))

	root, err := buildDemandTree(series)
	if err != nil {
		return err
	}
	return xmltree.WriteFile(c.cfg.ExportPath(c.OutputFile()), root)
}

// buildDemandTree pads the series to a full day by repeating the last
// row under one-hour timestamp increments, then emits one <period> per
// hour with a child per country column. Ragged rows emit only the
// columns they cover.
func buildDemandTree(series *sourcefile.TimeSeriesCSV) (*xmltree.Node, error) {
	tags := make([]string, len(series.Columns))
	for i, code := range series.Columns {
		tag, err := xmltree.BuildTag([]string{code}, xmltree.TagPolicy{})
		if err != nil {
			return nil, err
		}
		tags[i] = tag
	}

	times := series.Times
	rows := series.Rows
	if missing := dataset.MissingToFullDay(len(times)); missing > 0 && len(rows) > 0 {
		times = dataset.NewTimeAxis(times).Extend(missing).Times()
		last := rows[len(rows)-1]
		for k := 0; k < missing; k++ {
			rows = append(rows, last)
		}
	}

	b := NestedBuilder{
		Root:  "root",
		Steps: len(times),
		Time:  PeriodTimestampEmitter(times),
		Leaf: func(hour *xmltree.Node, t int) error {
			row := rows[t]
			for j, tag := range tags {
				if j >= len(row) {
					break
				}
				hour.AddText(tag, row[j])
			}
			return nil
		},
	}
	return b.Build()
}
