package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	app "github.com/mohammadpnp/bizimport/internal/application/importing"
	"github.com/mohammadpnp/bizimport/internal/bootstrap"
	infrafile "github.com/mohammadpnp/bizimport/internal/infrastructure/file"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <table> <file>",
	Short: "Import a spreadsheet (.xlsx, .xls, .csv, .json) into a table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		overrides, _ := cmd.Flags().GetStringArray("map")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		batchSize, _ := cmd.Flags().GetInt("batch-size")

		mappings, err := parseMappings(overrides)
		if err != nil {
			return err
		}

		cfg := getCfg(cmd)
		if batchSize > 0 {
			cfg.BatchSize = batchSize
		}
		services := bootstrap.NewServices(getDB(cmd), getPool(cmd), cfg)

		src, err := infrafile.NewLocalFiles("").Open(ctx, args[1])
		if err != nil {
			return err
		}
		defer src.Close()

		return runImport(ctx, services, importRequest{
			Table:    args[0],
			FileName: args[1],
			File:     src,
			Mappings: mappings,
			DryRun:   dryRun,
		}, cmd.OutOrStdout())
	},
}

type importRequest struct {
	Table    string
	FileName string
	File     io.Reader
	Mappings []mappingOverride
	DryRun   bool
}

// runImport drives one import from upload to execution. Once the upload has
// opened a session, any failure cancels it so the run does not stay in mapping.
func runImport(ctx context.Context, services *bootstrap.Services, req importRequest, out io.Writer) error {
	session, err := services.Upload.Execute(ctx, app.UploadSpreadsheetInput{
		Table:    req.Table,
		FileName: req.FileName,
		File:     req.File,
	})
	if err != nil {
		return err
	}

	runID := session.RunID
	abandon := func(cause error) error {
		_, err := services.Cancel.Execute(context.WithoutCancel(ctx), app.CancelImportInput{RunID: runID})
		if err != nil && !errors.Is(err, app.ErrSessionNotFound) {
			return fmt.Errorf("%w (cancel run %s: %v)", cause, runID, err)
		}
		return cause
	}

	for _, m := range req.Mappings {
		session, err = services.UpdateMapping.Execute(ctx, app.UpdateMappingInput{
			RunID:  runID,
			Header: m.Header,
			Column: m.Column,
		})
		if err != nil {
			return abandon(fmt.Errorf("map %q: %w", m.Header, err))
		}
	}

	fmt.Fprintf(out, "Run %s: %s rows for %s\n", session.RunID, humanize.Comma(int64(session.RowCount)), session.Table)
	for _, entry := range session.Mapping {
		column := entry.Column
		if column == "" {
			column = "(ignored)"
		}
		fmt.Fprintf(out, "  %-30s -> %s\n", entry.Header, column)
	}

	run, err := services.Execute.Execute(ctx, app.ExecuteImportInput{RunID: runID, DryRun: req.DryRun})
	if err != nil {
		return abandon(err)
	}

	if req.DryRun {
		fmt.Fprintf(out, "Dry run: %s rows would be written, %s rejected\n",
			humanize.Comma(run.TotalRows-run.Failed), humanize.Comma(run.Failed))
	} else {
		fmt.Fprintf(out, "Import %s: %s succeeded, %s failed\n",
			run.Status, humanize.Comma(run.Succeeded), humanize.Comma(run.Failed))
	}
	for _, msg := range run.Errors {
		fmt.Fprintf(out, "  ! %s\n", msg)
	}

	if !req.DryRun && !run.Success {
		return fmt.Errorf("import finished with %d failed rows", run.Failed)
	}
	return nil
}

func init() {
	importCmd.Flags().StringArray("map", nil, "Override a mapping as Header=column (empty column ignores the header)")
	importCmd.Flags().Int("batch-size", 0, "Records per batch (default from IMPORT_BATCH_SIZE)")
	importCmd.Flags().Bool("dry-run", false, "Validate rows without writing them")
}

type mappingOverride struct {
	Header string
	Column string
}

// parseMappings splits each Header=column on the last '=' so headers may
// themselves contain '='.
func parseMappings(raw []string) ([]mappingOverride, error) {
	out := make([]mappingOverride, 0, len(raw))
	for _, item := range raw {
		i := strings.LastIndex(item, "=")
		if i <= 0 {
			return nil, fmt.Errorf("invalid --map %q: expected Header=column", item)
		}
		out = append(out, mappingOverride{
			Header: item[:i],
			Column: strings.TrimSpace(item[i+1:]),
		})
	}
	return out, nil
}
