package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"h2resconv/internal/config"
	"h2resconv/internal/convert"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available conversions and their output documents",
	Run: func(cmd *cobra.Command, args []string) {
		// Names and output files are static, so no configuration is
		// loaded and no input paths are touched.
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, c := range convert.Registry(&config.Config{}) {
			fmt.Fprintf(w, "%s\t%s\n", c.Name(), c.OutputFile())
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
