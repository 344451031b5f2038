package main

import (
	"context"

	"github.com/spf13/cobra"
)

// cfgFile is the --config override; empty falls back to H2RES_CONFIG
// and then ./config.yaml.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "h2resconv",
	Short: "Convert energy-model exports into hourly H2RES XML documents",
	Long: `h2resconv turns the heterogeneous exports of a clustered energy-model
run (wide CSV series, spreadsheet workbooks and NetCDF grids) into the
uniform hourly XML documents the H2RES model consumes.

Every produced document covers whole days: a series that stops mid-day
is extended to the next 24-period boundary by repeating its final value.`,
	SilenceUsage: true,
}

// Execute runs the root command under the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"path to the YAML config file")
}
