package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"h2resconv/internal/config"
	"h2resconv/internal/convert"
	"h2resconv/internal/errors"
)

var checkCmd = &cobra.Command{
	Use:   "check [conversion...]",
	Short: "Verify that the input files of the conversions exist",
	Long: `Check stats every input file of the named conversions, or of every
conversion when none are named, and reports the missing ones without
reading or converting anything.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	selected, err := convert.Select(convert.Registry(cfg), args)
	if err != nil {
		return err
	}

	statuses := convert.CheckInputs(selected)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, s := range statuses {
		state := "ok"
		if !s.OK() {
			state = "missing"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Conversion, state, s.Path)
	}
	w.Flush()

	if missing := convert.MissingInputs(statuses); missing > 0 {
		return errors.NewStorageError(
			fmt.Sprintf("%d of %d input files missing", missing, len(statuses)), nil)
	}
	return nil
}
