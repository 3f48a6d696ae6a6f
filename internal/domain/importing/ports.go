package importing

import (
	"context"
	"io"
)

// RecordInserter writes one batch atomically to a table.
type RecordInserter interface {
	InsertBatch(ctx context.Context, table TableName, records []StagedRecord) error
}

// SchemaCatalog lists the importable columns of a table.
type SchemaCatalog interface {
	Schema(ctx context.Context, table TableName) (TableSchema, error)
}

// SheetReader decodes an uploaded file into a Sheet. The file name selects the format.
type SheetReader interface {
	Read(r io.Reader, fileName string) (Sheet, error)
}

// RunRepository persists import runs for history.
type RunRepository interface {
	Save(ctx context.Context, run ImportRun) error
	Get(ctx context.Context, id string) (ImportRun, error)
	ListRecent(ctx context.Context, limit int) ([]ImportRun, error)
}

// TableReader returns the full contents of a table, columns in table order.
type TableReader interface {
	ReadAll(ctx context.Context, table TableName) ([]string, []map[string]any, error)
}
