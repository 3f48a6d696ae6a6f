package importing

import (
	"bytes"
	"context"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

type ListTableColumnsInput struct {
	Table string
}

type ListTableColumnsOutput struct {
	Table    string   `json:"table"`
	Columns  []string `json:"columns"`
	Required []string `json:"required"`
}

type ListTableColumns interface {
	Execute(ctx context.Context, in ListTableColumnsInput) (ListTableColumnsOutput, error)
}

type listTableColumns struct {
	catalog domain.SchemaCatalog
}

func NewListTableColumns(catalog domain.SchemaCatalog) ListTableColumns {
	return &listTableColumns{catalog: catalog}
}

func (uc *listTableColumns) Execute(ctx context.Context, in ListTableColumnsInput) (ListTableColumnsOutput, error) {
	table, err := domain.ParseTableName(in.Table)
	if err != nil {
		return ListTableColumnsOutput{}, err
	}

	schema, err := uc.catalog.Schema(ctx, table)
	if err != nil {
		return ListTableColumnsOutput{}, fmt.Errorf("%w: %v", ErrLoadSchema, err)
	}

	return ListTableColumnsOutput{
		Table:    table.String(),
		Columns:  schema.Columns,
		Required: schema.Required,
	}, nil
}

// TableEncoder renders table contents in one export format.
type TableEncoder interface {
	Encode(buf *bytes.Buffer, format domain.ExportFormat, columns []string, rows []map[string]any) error
}

type ExportTableInput struct {
	Table  string
	Format string
}

type ExportTableOutput struct {
	FileName    string
	ContentType string
	RowCount    int
	Content     []byte
}

type ExportTable interface {
	Execute(ctx context.Context, in ExportTableInput) (ExportTableOutput, error)
}

type exportTable struct {
	reader  domain.TableReader
	encoder TableEncoder
}

func NewExportTable(reader domain.TableReader, encoder TableEncoder) ExportTable {
	return &exportTable{reader: reader, encoder: encoder}
}

func (uc *exportTable) Execute(ctx context.Context, in ExportTableInput) (ExportTableOutput, error) {
	table, err := domain.ParseTableName(in.Table)
	if err != nil {
		return ExportTableOutput{}, err
	}
	format, err := domain.ParseExportFormat(in.Format)
	if err != nil {
		return ExportTableOutput{}, err
	}

	columns, rows, err := uc.reader.ReadAll(ctx, table)
	if err != nil {
		return ExportTableOutput{}, fmt.Errorf("%w: %v", ErrExportTable, err)
	}

	var buf bytes.Buffer
	if err := uc.encoder.Encode(&buf, format, columns, rows); err != nil {
		return ExportTableOutput{}, fmt.Errorf("%w: %v", ErrExportTable, err)
	}

	return ExportTableOutput{
		FileName:    domain.ExportFileName(table, format, time.Now()),
		ContentType: format.ContentType(),
		RowCount:    len(rows),
		Content:     buf.Bytes(),
	}, nil
}
