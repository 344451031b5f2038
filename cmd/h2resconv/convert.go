package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"h2resconv/internal/config"
	"h2resconv/internal/convert"
	"h2resconv/internal/infrastructure"
)

var (
	concurrency int
	failFast    bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [conversion...]",
	Short: "Run conversions and write their XML documents",
	Long: `Run the named conversions, or every conversion when none are named.
Independent conversions run concurrently. By default a failure does not
stop the others and all failures are reported together at the end; with
--fail-fast no new conversions start after the first failure.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().IntVar(&concurrency, "concurrency", 0,
		"maximum conversions running at once (default from config)")
	convertCmd.Flags().BoolVar(&failFast, "fail-fast", false,
		"stop scheduling new conversions after the first failure")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = infrastructure.GetLogger()
	}
	defer infrastructure.CloseLogFile()

	if err := cfg.EnsureExportDir(); err != nil {
		return err
	}

	selected, err := convert.Select(convert.Registry(cfg), args)
	if err != nil {
		return err
	}

	limit := cfg.Run.Concurrency
	if concurrency > 0 {
		limit = concurrency
	}

	// The whole run shares one trace ID; each conversion overrides it
	// with its own run ID.
	ctx := infrastructure.EnsureTraceID(cmd.Context())

	logger.InfoContext(ctx, "conversion run starting",
		slog.Int("conversions", len(selected)),
		slog.Int("concurrency", limit),
		slog.Bool("fail_fast", failFast),
		slog.String("export_dir", cfg.Export.Dir))

	runner := convert.Runner{Concurrency: limit, FailFast: failFast}
	if err := runner.Run(ctx, logger, selected); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "conversion run failed")
		return err
	}

	logger.InfoContext(ctx, "conversion run complete", slog.Int("conversions", len(selected)))
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d datasets to %s\n", len(selected), cfg.Export.Dir)
	return nil
}
