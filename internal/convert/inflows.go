package convert

import (
	"context"
	"log/slog"

	"h2resconv/internal/config"
	"h2resconv/internal/dataset"
	"h2resconv/internal/errors"
	"h2resconv/internal/gridfile"
	"h2resconv/internal/xmltree"
)

// xarrayVariable is the anonymous data variable name xarray assigns
// when a bare DataArray is written to disk.
const xarrayVariable = "__xarray_dataarray_variable__"

// InflowsConverter turns the hydro inflow profile grid into an hourly
// row document with one child per generator country.
type InflowsConverter struct {
	cfg *config.Config
}

// NewInflowsConverter creates the hydro inflow converter.
func NewInflowsConverter(cfg *config.Config) *InflowsConverter {
	return &InflowsConverter{cfg: cfg}
}

// Name identifies the conversion in logs and on the command line.
func (c *InflowsConverter) Name() string { return "scaled_inflows" }

// Inputs lists the files the conversion reads.
func (c *InflowsConverter) Inputs() []string {
	return []string{c.cfg.HydroProfilePath()}
}

// OutputFile returns the document name under the export directory.
func (c *InflowsConverter) OutputFile() string { return "scaled_inflows_2020_2050.xml" }

// buildInflowsTree orients the (time, countries) grid, pads it to a
// full-day boundary and assembles the row document.
func buildInflowsTree(g *dataset.Grid, path string) (*xmltree.Node, error) {
	generators := g.Labels("countries")
	if generators == nil {
		return nil, errors.NewStructuralError("hydro profile has no countries coordinate", nil).
			WithContext("path", path)
	}
	if g.Times.Len() == 0 {
		return nil, errors.NewStructuralError("hydro profile has no time coordinate", nil).
			WithContext("path", path)
	}
	g, err := g.Orient("time", "countries")
	if err != nil {
		return nil, err
	}
	g, err = g.PadFullDay()
	if err != nil {
		return nil, err
	}

	tags := make([]string, len(generators))
	for i, gen := range generators {
		tag, err := xmltree.BuildTag([]string{gen}, xmltree.TagPolicy{})
		if err != nil {
			return nil, err
		}
		tags[i] = tag
	}

	b := NestedBuilder{
		Root:  "root",
		Steps: g.HourCount(),
		Time:  YearPeriodEmitter("row", g.Times.Times()),
		Leaf: func(row *xmltree.Node, t int) error {
			for i, tag := range tags {
				row.AddText(tag, xmltree.FormatFloat(g.Values.At(t, i)))
			}
			return nil
		},
	}
	return b.Build()
}

// Run reads the inflow grid and writes the row document.
func (c *InflowsConverter) Run(ctx context.Context, logger *slog.Logger) error {
	path := c.cfg.HydroProfilePath()
	f, err := gridfile.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	g, err := f.ReadGrid(xarrayVariable, "time")
	if err != nil {
		return err
	}

	root, err := buildInflowsTree(g, path)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "hydro inflows loaded",
		slog.String("path", path),
		slog.Int("generators", len(g.Labels("countries"))),
		slog.Int("hours", len(root.Children)))

	return xmltree.WriteFile(c.cfg.ExportPath(c.OutputFile()), root)
}
