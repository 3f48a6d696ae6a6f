package main

import (
	"fmt"

	"github.com/mohammadpnp/bizimport/internal/bootstrap"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the business tables and import history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootstrap.Migrate(cmd.Context(), getDB(cmd)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date.")
		return nil
	},
}
