package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohammadpnp/bizimport/internal/bootstrap"
	"github.com/mohammadpnp/bizimport/internal/config"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type contextKey string

// opened holds the connections of the running command. cobra skips post-run
// hooks when a command fails, so Execute closes them.
var opened struct {
	db   *gorm.DB
	pool *pgxpool.Pool
}

var closeDatabase = bootstrap.CloseDatabase

const (
	cfgKey  contextKey = "cfg"
	dbKey   contextKey = "db"
	poolKey contextKey = "pool"
)

var rootCmd = &cobra.Command{
	Use:   "importctl",
	Short: "Import spreadsheets into the business tables and export them back",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := cmd.Annotations["skipDB"]; ok {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, pool, err := bootstrap.OpenDatabase(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		opened.db, opened.pool = db, pool

		ctx := context.WithValue(cmd.Context(), cfgKey, cfg)
		ctx = context.WithValue(ctx, dbKey, db)
		ctx = context.WithValue(ctx, poolKey, pool)
		cmd.SetContext(ctx)
		return nil
	},
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(importCmd, exportCmd, columnsCmd, runsCmd, migrateCmd)
}

func getCfg(cmd *cobra.Command) config.Config {
	cfg, _ := cmd.Context().Value(cfgKey).(config.Config)
	return cfg
}

func getDB(cmd *cobra.Command) *gorm.DB {
	db, _ := cmd.Context().Value(dbKey).(*gorm.DB)
	return db
}

func getPool(cmd *cobra.Command) *pgxpool.Pool {
	pool, _ := cmd.Context().Value(poolKey).(*pgxpool.Pool)
	return pool
}

func getServices(cmd *cobra.Command) *bootstrap.Services {
	return bootstrap.NewServices(getDB(cmd), getPool(cmd), getCfg(cmd))
}

// Execute runs the root command and returns an exit code. SIGINT cancels the
// running command; an import stops before its next batch.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if opened.db != nil || opened.pool != nil {
		closeDatabase(opened.db, opened.pool)
		opened.db, opened.pool = nil, nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
