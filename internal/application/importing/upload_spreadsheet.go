package importing

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

type UploadSpreadsheetInput struct {
	Table    string
	FileName string
	File     io.Reader
}

// UploadSpreadsheet reads an uploaded file, proposes a column mapping and
// opens an import session waiting for the user to confirm it.
type UploadSpreadsheet interface {
	Execute(ctx context.Context, in UploadSpreadsheetInput) (SessionOutput, error)
}

type uploadSpreadsheet struct {
	reader      domain.SheetReader
	catalog     domain.SchemaCatalog
	runs        domain.RunRepository
	sessions    *SessionRegistry
	transformer domain.Transformer
}

func NewUploadSpreadsheet(
	reader domain.SheetReader,
	catalog domain.SchemaCatalog,
	runs domain.RunRepository,
	sessions *SessionRegistry,
	transformer domain.Transformer,
) UploadSpreadsheet {
	return &uploadSpreadsheet{
		reader:      reader,
		catalog:     catalog,
		runs:        runs,
		sessions:    sessions,
		transformer: transformer,
	}
}

func (uc *uploadSpreadsheet) Execute(ctx context.Context, in UploadSpreadsheetInput) (SessionOutput, error) {
	table, err := domain.ParseTableName(in.Table)
	if err != nil {
		return SessionOutput{}, err
	}

	fileName := filepath.Base(strings.TrimSpace(in.FileName))
	if fileName == "" || fileName == "." || in.File == nil {
		return SessionOutput{}, ErrInvalidImportSource
	}

	run := domain.NewImportRun(uuid.NewString(), table, fileName, time.Now())
	if err := run.Transition(domain.RunUploading, time.Now()); err != nil {
		return SessionOutput{}, err
	}

	sheet, err := uc.reader.Read(in.File, fileName)
	if err != nil {
		return SessionOutput{}, fmt.Errorf("%w: %w", ErrReadSpreadsheet, err)
	}

	schema, err := uc.catalog.Schema(ctx, table)
	if err != nil {
		return SessionOutput{}, fmt.Errorf("%w: %v", ErrLoadSchema, err)
	}

	s := &session{
		rows:    sheet.Rows(),
		schema:  schema,
		mapping: domain.ProposeMapping(sheet.Headers, schema.Columns),
	}
	run.TotalRows = int64(len(s.rows))
	if err := run.Transition(domain.RunMapping, time.Now()); err != nil {
		return SessionOutput{}, err
	}
	s.run = run

	if err := uc.runs.Save(ctx, run); err != nil {
		return SessionOutput{}, fmt.Errorf("%w: %v", ErrSaveRun, err)
	}
	uc.sessions.put(s)

	return newSessionOutput(s, uc.transformer), nil
}
