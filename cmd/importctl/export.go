package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	app "github.com/mohammadpnp/bizimport/internal/application/importing"
	infrafile "github.com/mohammadpnp/bizimport/internal/infrastructure/file"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <table>",
	Short: "Export a table as xlsx, csv or json",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		dir, _ := cmd.Flags().GetString("out")

		result, err := getServices(cmd).Export.Execute(cmd.Context(), app.ExportTableInput{
			Table:  args[0],
			Format: format,
		})
		if err != nil {
			return err
		}

		path, err := infrafile.NewLocalFiles(dir).Save(cmd.Context(), result.FileName, result.Content)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s rows to %s (%s)\n",
			humanize.Comma(int64(result.RowCount)), path, humanize.Bytes(uint64(len(result.Content))))
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "xlsx", "Output format: xlsx, csv or json")
	exportCmd.Flags().String("out", ".", "Directory the file is written to")
}
