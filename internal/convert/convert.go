package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"h2resconv/internal/config"
	apperrors "h2resconv/internal/errors"
	"h2resconv/internal/infrastructure"
)

// Converter is one dataset conversion: a stable name, the input files
// it reads, the document it produces and the run itself.
type Converter interface {
	Name() string
	Inputs() []string
	OutputFile() string
	Run(ctx context.Context, logger *slog.Logger) error
}

// sheetCatalogue lists the spreadsheet datasets in pipeline order.
var sheetCatalogue = []SheetSpec{
	{Name: "cooling_demand", File: "cooling_demand_2020_2050.xml", RootTag: "data"},
	{Name: "demand_h2", File: "demand_H2_2020_2050.xml", RootTag: "root"},
	{Name: "driving_cycles", File: "driving_cycles_scaled_1MWh.xml", RootTag: "root"},
	{Name: "ev_transp_load", File: "ev_transp_load.xml", RootTag: "root"},
	{Name: "fuel_cost", File: "fuel_cost_2020_2050.xml", RootTag: "root"},
	{Name: "import_export", File: "import_export_2020_2050.xml", RootTag: "root"},
}

// Registry returns every converter in pipeline order: the resource
// directory datasets first, then the spreadsheet family.
func Registry(cfg *config.Config) []Converter {
	converters := []Converter{
		NewDemandConverter(cfg),
		NewFlexTechConverter(cfg),
		NewHeatDemandConverter(cfg),
		NewNCREConverter(cfg),
		NewInflowsConverter(cfg),
	}
	for _, spec := range sheetCatalogue {
		converters = append(converters, NewSheetConverter(cfg, spec))
	}
	return converters
}

// Select filters converters by name, keeping the requested order. An
// empty request selects everything.
func Select(converters []Converter, names []string) ([]Converter, error) {
	if len(names) == 0 {
		return converters, nil
	}
	byName := make(map[string]Converter, len(converters))
	for _, c := range converters {
		byName[c.Name()] = c
	}
	out := make([]Converter, 0, len(names))
	for _, name := range names {
		c, ok := byName[name]
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("conversion %q", name))
		}
		out = append(out, c)
	}
	return out, nil
}

// Runner executes converters concurrently. Conversions are independent
// of each other, so a failure does not stop the others unless FailFast
// is set; all failures are aggregated into the returned error.
type Runner struct {
	Concurrency int
	FailFast    bool
}

// Run executes the converters and returns the joined failures, nil
// when every conversion succeeded.
func (r Runner) Run(ctx context.Context, logger *slog.Logger, converters []Converter) error {
	g, ctx := errgroup.WithContext(ctx)
	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	var mu sync.Mutex
	var failures []error

	for _, conv := range converters {
		conv := conv
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := runOne(ctx, logger, conv)
			if err == nil {
				return nil
			}
			if r.FailFast {
				return fmt.Errorf("%s: %w", conv.Name(), err)
			}
			mu.Lock()
			failures = append(failures, fmt.Errorf("%s: %w", conv.Name(), err))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return errors.Join(failures...)
}

// runOne gives the conversion a run ID, logs its lifecycle and
// delegates to it.
func runOne(ctx context.Context, logger *slog.Logger, conv Converter) error {
	runID := infrastructure.GenerateTraceID()
	ctx = infrastructure.WithTraceID(ctx, runID)
	log := logger.With(
		slog.String("conversion", conv.Name()),
		slog.String("run_id", runID))

	start := time.Now()
	log.InfoContext(ctx, "conversion started",
		slog.String("output", conv.OutputFile()))

	if err := conv.Run(ctx, log); err != nil {
		log.ErrorContext(ctx, "conversion failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return err
	}

	log.InfoContext(ctx, "conversion completed",
		slog.Duration("duration", time.Since(start)))
	return nil
}
