package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	app "github.com/mohammadpnp/bizimport/internal/application/importing"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent import runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := getServices(cmd).ListRuns.Execute(cmd.Context(), app.ListImportRunsInput{Limit: limit})
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No import runs yet.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTABLE\tFILE\tSTATUS\tSUCCEEDED\tFAILED\tCREATED")
		for _, run := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				run.ID, run.Table, run.SourceName, run.Status,
				humanize.Comma(run.Succeeded), humanize.Comma(run.Failed), humanize.Time(run.CreatedAt))
		}
		return tw.Flush()
	},
}

func init() {
	runsCmd.Flags().Int("limit", 20, "Maximum number of runs to show")
}
