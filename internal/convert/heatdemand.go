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

// heatDemandComponents are the per-sector series summed into the
// single general demand profile.
var heatDemandComponents = []string{
	"residential water",
	"residential space",
	"services water",
	"services space",
}

// HeatDemandConverter sums the sectoral heat demand series of one grid
// file into a general demand profile, one row per hour with a child
// per network node.
type HeatDemandConverter struct {
	cfg *config.Config
}

// NewHeatDemandConverter creates the heat demand converter.
func NewHeatDemandConverter(cfg *config.Config) *HeatDemandConverter {
	return &HeatDemandConverter{cfg: cfg}
}

// Name identifies the conversion in logs and on the command line.
func (c *HeatDemandConverter) Name() string { return "heat_demand" }

// Inputs lists the files the conversion reads.
func (c *HeatDemandConverter) Inputs() []string {
	return []string{c.cfg.HeatDemandPath()}
}

// OutputFile returns the document name under the export directory.
func (c *HeatDemandConverter) OutputFile() string { return "heat_demand_2020_2050.xml" }

// buildHeatDemandTree orients the summed (snapshots, node) grid, pads
// it to a full-day boundary and assembles the row document.
func buildHeatDemandTree(total *dataset.Grid, path string) (*xmltree.Node, error) {
	nodes := total.Labels("node")
	if nodes == nil {
		return nil, errors.NewStructuralError("heat demand has no node coordinate", nil).
			WithContext("path", path)
	}
	if total.Times.Len() == 0 {
		return nil, errors.NewStructuralError("heat demand has no snapshots coordinate", nil).
			WithContext("path", path)
	}
	total, err := total.Orient("snapshots", "node")
	if err != nil {
		return nil, err
	}
	total, err = total.PadFullDay()
	if err != nil {
		return nil, err
	}

	tags := make([]string, len(nodes))
	for i, node := range nodes {
		tag, err := xmltree.BuildTag([]string{node},
			xmltree.TagPolicy{Case: xmltree.CaseUpper, StripSpaces: true})
		if err != nil {
			return nil, err
		}
		tags[i] = tag
	}

	b := NestedBuilder{
		Root:  "data",
		Steps: total.HourCount(),
		Time:  YearPeriodEmitter("row", total.Times.Times()),
		Leaf: func(row *xmltree.Node, t int) error {
			demand := row.Child("general_demand")
			for i, tag := range tags {
				demand.AddText(tag, xmltree.FormatFloat(total.Values.At(t, i)))
			}
			return nil
		},
	}
	return b.Build()
}

// Run reads the four component variables, accumulates them and writes
// the row document.
func (c *HeatDemandConverter) Run(ctx context.Context, logger *slog.Logger) error {
	path := c.cfg.HeatDemandPath()
	f, err := gridfile.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var total *dataset.Grid
	for _, component := range heatDemandComponents {
		g, err := f.ReadGrid(component, "snapshots")
		if err != nil {
			return err
		}
		if total == nil {
			total = g
			continue
		}
		if err := total.Values.Add(g.Values); err != nil {
			return err
		}
	}

	root, err := buildHeatDemandTree(total, path)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "heat demand summed",
		slog.String("path", path),
		slog.Int("components", len(heatDemandComponents)),
		slog.Int("nodes", len(total.Labels("node"))),
		slog.Int("hours", len(root.Children)))

	return xmltree.WriteFile(c.cfg.ExportPath(c.OutputFile()), root)
}
