package main

import (
	"fmt"

	app "github.com/mohammadpnp/bizimport/internal/application/importing"
	"github.com/mohammadpnp/bizimport/internal/infrastructure/repository"
	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:         "columns <table>",
	Short:       "List the importable columns of a table",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"skipDB": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		uc := app.NewListTableColumns(repository.NewSchemaCatalog(nil))

		out, err := uc.Execute(cmd.Context(), app.ListTableColumnsInput{Table: args[0]})
		if err != nil {
			return err
		}

		required := make(map[string]bool, len(out.Required))
		for _, column := range out.Required {
			required[column] = true
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s\n", out.Table)
		for _, column := range out.Columns {
			if required[column] {
				fmt.Fprintf(w, "  %s (required)\n", column)
				continue
			}
			fmt.Fprintf(w, "  %s\n", column)
		}
		return nil
	},
}
