package convert

import (
	"context"
	"fmt"
	"log/slog"

	"h2resconv/internal/align"
	"h2resconv/internal/config"
	"h2resconv/internal/dataset"
	"h2resconv/internal/errors"
	"h2resconv/internal/gridfile"
	"h2resconv/internal/xmltree"
)

// FlexTechConverter merges the 2030 and 2050 heat-pump COP profile
// grids into one hourly document: per hour, per bus, one entry per
// (heat source, heat system) pair carrying both vintages.
type FlexTechConverter struct {
	cfg *config.Config
}

// NewFlexTechConverter creates the flexible technology converter.
func NewFlexTechConverter(cfg *config.Config) *FlexTechConverter {
	return &FlexTechConverter{cfg: cfg}
}

// Name identifies the conversion in logs and on the command line.
func (c *FlexTechConverter) Name() string { return "flex_tech" }

// Inputs lists the files the conversion reads.
func (c *FlexTechConverter) Inputs() []string {
	return []string{c.cfg.CopProfilesPath("2030"), c.cfg.CopProfilesPath("2050")}
}

// OutputFile returns the document name under the export directory.
func (c *FlexTechConverter) OutputFile() string { return "flex_tech_2020_2050_explicit.xml" }

// copProfile is one vintage of the COP grid with its label catalogues
// and resolved axis positions.
type copProfile struct {
	grid    *dataset.Grid
	names   []string
	sources []string
	systems []string

	nameAxis   int
	sourceAxis int
	systemAxis int
	idx        []int
}

// at reads the value for one (heat system, heat source, hour, bus)
// coordinate regardless of the on-disk dimension order.
func (p *copProfile) at(sys, src, t, n int) float64 {
	p.idx[p.systemAxis] = sys
	p.idx[p.sourceAxis] = src
	p.idx[p.grid.TimeDim] = t
	p.idx[p.nameAxis] = n
	return p.grid.Values.At(p.idx...)
}

// extendTo grows the profile along its time axis to steps hours by
// repeating the final slice, keeping the time coordinate in step.
func (p *copProfile) extendTo(steps int) {
	missing := steps - p.grid.HourCount()
	if missing <= 0 {
		return
	}
	out := *p.grid
	out.Values = p.grid.Values.ExtendAxis(p.grid.TimeDim, missing)
	out.Times = p.grid.Times.Extend(missing)
	p.grid = &out
}

// newCopProfile validates that a grid carries the name, heat_source
// and heat_system catalogues plus a time coordinate, and resolves the
// axis positions.
func newCopProfile(g *dataset.Grid, path string) (*copProfile, error) {
	if g.Values.Rank() != 4 {
		return nil, errors.NewStructuralError(
			fmt.Sprintf("cop profile has rank %d, want 4", g.Values.Rank()), nil).
			WithContext("path", path)
	}
	p := &copProfile{
		grid:       g,
		names:      g.Labels("name"),
		sources:    g.Labels("heat_source"),
		systems:    g.Labels("heat_system"),
		nameAxis:   g.AxisIndex("name"),
		sourceAxis: g.AxisIndex("heat_source"),
		systemAxis: g.AxisIndex("heat_system"),
		idx:        make([]int, 4),
	}
	if p.names == nil || p.sources == nil || p.systems == nil {
		return nil, errors.NewStructuralError("cop profile is missing label coordinates", nil).
			WithContext("path", path)
	}
	if g.Times.Len() == 0 {
		return nil, errors.NewStructuralError("cop profile has no time coordinate", nil).
			WithContext("path", path)
	}
	return p, nil
}

func loadCopProfile(path string) (*copProfile, error) {
	f, err := gridfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := f.ReadGrid(xarrayVariable, "time")
	if err != nil {
		return nil, err
	}
	return newCopProfile(g, path)
}

// convertFlexTech verifies the two vintages describe the same
// catalogues, brings both to the same full-day hour count and
// assembles the merged document.
func convertFlexTech(p2030, p2050 *copProfile) (*xmltree.Node, error) {
	if err := align.RequireSameCatalogue("bus/name lists", p2030.names, p2050.names); err != nil {
		return nil, err
	}
	if err := align.RequireSameCatalogue("heat source/system lists", p2030.sources, p2050.sources); err != nil {
		return nil, err
	}
	if err := align.RequireSameCatalogue("heat source/system lists", p2030.systems, p2050.systems); err != nil {
		return nil, err
	}

	for _, p := range []*copProfile{p2030, p2050} {
		padded, err := p.grid.PadFullDay()
		if err != nil {
			return nil, err
		}
		p.grid = padded
	}
	steps := p2030.grid.HourCount()
	if n := p2050.grid.HourCount(); n > steps {
		steps = n
	}
	p2030.extendTo(steps)
	p2050.extendTo(steps)

	busTags := make([]string, len(p2030.names))
	for i, name := range p2030.names {
		tag, err := xmltree.BuildTag([]string{name}, xmltree.TagPolicy{Case: xmltree.CaseLower})
		if err != nil {
			return nil, err
		}
		busTags[i] = tag
	}

	b := NestedBuilder{
		Root:  "data",
		Steps: steps,
		Time:  TimeTextEmitter(p2030.grid.Times.Times()),
		Leaf: func(hour *xmltree.Node, t int) error {
			for n, tag := range busTags {
				bus := hour.Child(tag)
				for src, source := range p2030.sources {
					for sys, system := range p2030.systems {
						entry := bus.Child("entry")
						entry.AddText("heat_source", source)
						entry.AddText("heat_system", system)
						entry.AddText("cop_2030", xmltree.FormatFloat(p2030.at(sys, src, t, n)))
						entry.AddText("cop_2050", xmltree.FormatFloat(p2050.at(sys, src, t, n)))
					}
				}
			}
			return nil
		},
	}
	return b.Build()
}

// Run loads both vintages and writes the merged document.
func (c *FlexTechConverter) Run(ctx context.Context, logger *slog.Logger) error {
	p2030, err := loadCopProfile(c.cfg.CopProfilesPath("2030"))
	if err != nil {
		return err
	}
	p2050, err := loadCopProfile(c.cfg.CopProfilesPath("2050"))
	if err != nil {
		return err
	}

	root, err := convertFlexTech(p2030, p2050)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "cop profiles merged",
		slog.Int("buses", len(p2030.names)),
		slog.Int("heat_sources", len(p2030.sources)),
		slog.Int("heat_systems", len(p2030.systems)),
		slog.Int("hours", p2030.grid.HourCount()))

	return xmltree.WriteFile(c.cfg.ExportPath(c.OutputFile()), root)
}
