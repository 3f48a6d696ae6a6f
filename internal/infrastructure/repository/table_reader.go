package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
	"gorm.io/gorm"
)

// TableReader dumps a business table for export.
type TableReader struct {
	db *gorm.DB
}

func NewTableReader(db *gorm.DB) *TableReader {
	return &TableReader{db: db}
}

func (r *TableReader) ReadAll(ctx context.Context, table domain.TableName) ([]string, []map[string]any, error) {
	if _, err := domain.ParseTableName(table.String()); err != nil {
		return nil, nil, err
	}

	rows, err := r.db.WithContext(ctx).Table(table.String()).Order("created_at").Rows()
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s columns: %w", table, err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s column types: %w", table, err)
	}

	out := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, nil, fmt.Errorf("scan %s row: %w", table, err)
		}

		record := make(map[string]any, len(columns))
		for i, column := range columns {
			record[column] = exportValue(values[i], types[i].DatabaseTypeName())
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate %s rows: %w", table, err)
	}

	return columns, out, nil
}

// exportValue turns driver values into plain scalars. DATE columns are
// formatted from their calendar fields so no zone conversion can move the day.
func exportValue(value any, databaseType string) any {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case time.Time:
		if strings.EqualFold(databaseType, "DATE") {
			return domain.FormatDate(v)
		}
		return v.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
