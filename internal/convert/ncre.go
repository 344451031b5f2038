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

// ncreTechnologies lists the renewable technologies in emission order.
var ncreTechnologies = []string{
	"offwind-ac",
	"offwind-dc",
	"offwind-float",
	"onwind",
	"solar",
	"solar-hsat",
}

// NCREConverter merges the per-technology availability matrices into
// one hourly document over the sorted union of buses. A bus only
// appears under a technology when its full series is free of missing
// values there.
type NCREConverter struct {
	cfg    *config.Config
	policy align.Policy
}

// NewNCREConverter creates the renewable availability converter with
// the skip policy for invalid bus/technology combinations.
func NewNCREConverter(cfg *config.Config) *NCREConverter {
	return &NCREConverter{cfg: cfg, policy: align.PolicySkip}
}

// Name identifies the conversion in logs and on the command line.
func (c *NCREConverter) Name() string { return "ncre_aval_factor" }

// Inputs lists one availability matrix per technology.
func (c *NCREConverter) Inputs() []string {
	paths := make([]string, len(ncreTechnologies))
	for i, tech := range ncreTechnologies {
		paths[i] = c.cfg.AvailabilityMatrixPath(tech)
	}
	return paths
}

// OutputFile returns the document name under the export directory.
func (c *NCREConverter) OutputFile() string { return "ncre_aval_factor_2020_2050.xml" }

// availabilityMatrix is one technology's grid oriented (bus, time),
// with singleton year/bin dimensions already dropped. Matrices without
// a bus coordinate carry no labels and contribute nothing.
type availabilityMatrix struct {
	tech    string
	grid    *dataset.Grid
	buses   []string
	busIdx  map[string]int
	busAxis int
}

// at reads the availability of one bus at one hour.
func (m *availabilityMatrix) at(bus, t int) float64 {
	if m.busAxis == 0 {
		return m.grid.Values.At(bus, t)
	}
	return m.grid.Values.At(t, bus)
}

// extendTo grows the matrix along its time axis to steps hours by
// repeating the final slice.
func (m *availabilityMatrix) extendTo(steps int) {
	missing := steps - m.grid.HourCount()
	if missing <= 0 {
		return
	}
	out := *m.grid
	out.Values = m.grid.Values.ExtendAxis(m.grid.TimeDim, missing)
	if m.grid.Times.Len() > 0 {
		out.Times = m.grid.Times.Extend(missing)
	}
	m.grid = &out
}

// newAvailabilityMatrix reduces a raw grid to (bus, time): singleton
// year and bin dimensions are dropped, the axes oriented, the series
// padded to a full-day boundary.
func newAvailabilityMatrix(tech string, g *dataset.Grid, path string) (*availabilityMatrix, error) {
	var err error
	for _, dim := range []string{"year", "bin"} {
		g, err = g.SelectFirst(dim)
		if err != nil {
			return nil, err
		}
	}
	if g.TimeDim < 0 {
		return nil, errors.NewStructuralError("availability matrix has no time dimension", nil).
			WithContext("path", path)
	}
	if g.AxisIndex("bus") >= 0 {
		g, err = g.Orient("bus", "time")
		if err != nil {
			return nil, err
		}
	}
	g, err = g.PadFullDay()
	if err != nil {
		return nil, err
	}

	m := &availabilityMatrix{
		tech:    tech,
		grid:    g,
		buses:   g.Labels("bus"),
		busAxis: g.AxisIndex("bus"),
	}
	if m.buses != nil && g.Values.Rank() != 2 {
		return nil, errors.NewStructuralError(
			fmt.Sprintf("availability matrix has rank %d after reduction, want 2", g.Values.Rank()), nil).
			WithContext("path", path)
	}
	m.busIdx = make(map[string]int, len(m.buses))
	for i, bus := range m.buses {
		m.busIdx[bus] = i
	}
	return m, nil
}

func (c *NCREConverter) loadMatrix(tech string) (*availabilityMatrix, error) {
	path := c.cfg.AvailabilityMatrixPath(tech)
	f, err := gridfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := f.ReadGrid("", "time")
	if err != nil {
		return nil, err
	}
	return newAvailabilityMatrix(tech, g, path)
}

// convertNCRE brings all matrices to the same hour count, aligns their
// bus catalogues and assembles the merged document. Hours are numbered
// from the first technology carrying a time coordinate; without one, a
// plain row counter under year 0 is used.
func convertNCRE(matrices []*availabilityMatrix, policy align.Policy) (*xmltree.Node, error) {
	steps := 0
	for _, m := range matrices {
		if n := m.grid.HourCount(); n > steps {
			steps = n
		}
	}
	var times *dataset.TimeAxis
	for _, m := range matrices {
		m.extendTo(steps)
		if times == nil && m.grid.Times.Len() > 0 {
			times = m.grid.Times
		}
	}

	sources := make([]align.Source, len(matrices))
	for i, m := range matrices {
		m := m
		sources[i] = align.Source{
			ID:     m.tech,
			Labels: m.buses,
			HasMissing: func(bus string) bool {
				return m.grid.HasMissingAt(m.busAxis, m.busIdx[bus])
			},
		}
	}
	result := align.Align(sources)

	// Each cell is one (bus, technology) element of every hour, in
	// union-bus then declared-technology order. Invalid combinations
	// either vanish or carry the sentinel, per policy.
	type cell struct {
		tag    string
		matrix *availabilityMatrix
		idx    int
	}
	var cells []cell
	for _, bus := range result.Union {
		for _, m := range matrices {
			valid := result.Valid(m.tech, bus)
			if !valid && policy == align.PolicySkip {
				continue
			}
			tag, err := xmltree.BuildTag([]string{bus, "profile_" + m.tech}, xmltree.TagPolicy{})
			if err != nil {
				return nil, err
			}
			if !valid {
				cells = append(cells, cell{tag: tag})
				continue
			}
			cells = append(cells, cell{tag: tag, matrix: m, idx: m.busIdx[bus]})
		}
	}

	var emit TimeEmitter
	if times != nil {
		emit = YearPeriodEmitter("time", times.Times())
	} else {
		emit = CounterEmitter("time")
	}

	b := NestedBuilder{
		Root:  "data",
		Steps: steps,
		Time:  emit,
		Leaf: func(hour *xmltree.Node, t int) error {
			for _, cl := range cells {
				if cl.matrix == nil {
					hour.AddText(cl.tag, align.SentinelText)
					continue
				}
				hour.AddText(cl.tag, xmltree.FormatFloat(cl.matrix.at(cl.idx, t)))
			}
			return nil
		},
	}
	return b.Build()
}

// Run loads all technologies and writes the merged document.
func (c *NCREConverter) Run(ctx context.Context, logger *slog.Logger) error {
	matrices := make([]*availabilityMatrix, 0, len(ncreTechnologies))
	for _, tech := range ncreTechnologies {
		m, err := c.loadMatrix(tech)
		if err != nil {
			return err
		}
		logger.DebugContext(ctx, "availability matrix loaded",
			slog.String("technology", tech),
			slog.Int("buses", len(m.buses)),
			slog.Int("hours", m.grid.HourCount()))
		matrices = append(matrices, m)
	}

	root, err := convertNCRE(matrices, c.policy)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "availability matrices merged",
		slog.Int("technologies", len(matrices)),
		slog.Int("hours", len(root.Children)))

	return xmltree.WriteFile(c.cfg.ExportPath(c.OutputFile()), root)
}
