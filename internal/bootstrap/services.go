package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	app "github.com/mohammadpnp/bizimport/internal/application/importing"
	"github.com/mohammadpnp/bizimport/internal/config"
	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
	infrafile "github.com/mohammadpnp/bizimport/internal/infrastructure/file"
	"github.com/mohammadpnp/bizimport/internal/infrastructure/repository"
	"gorm.io/gorm"
)

// Services holds the use cases shared by the HTTP server and the CLI.
type Services struct {
	Upload        app.UploadSpreadsheet
	UpdateMapping app.UpdateMapping
	Execute       app.ExecuteImport
	Cancel        app.CancelImport
	Expire        app.ExpireSessions
	GetRun        app.GetImportRun
	ListRuns      app.ListImportRuns
	Columns       app.ListTableColumns
	Export        app.ExportTable
	Sessions      *app.SessionRegistry
}

func NewServices(db *gorm.DB, pool *pgxpool.Pool, cfg config.Config) *Services {
	sessions := app.NewSessionRegistry()
	transformer := domain.NewTransformer(cfg.Location)

	runRepo := repository.NewImportRunRepository(db)
	catalog := repository.NewSchemaCatalog(db.NamingStrategy)
	writer := app.NewBatchWriter(repository.NewRecordInserter(pool), cfg.BatchSize)

	return &Services{
		Upload:        app.NewUploadSpreadsheet(infrafile.NewSpreadsheetReader(), catalog, runRepo, sessions, transformer),
		UpdateMapping: app.NewUpdateMapping(sessions, transformer),
		Execute:       app.NewExecuteImport(sessions, runRepo, writer, transformer),
		Cancel:        app.NewCancelImport(sessions, runRepo),
		Expire:        app.NewExpireSessions(sessions, runRepo),
		GetRun:        app.NewGetImportRun(runRepo),
		ListRuns:      app.NewListImportRuns(runRepo),
		Columns:       app.NewListTableColumns(catalog),
		Export:        app.NewExportTable(repository.NewTableReader(db), infrafile.NewTableEncoder()),
		Sessions:      sessions,
	}
}
