package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

// RecordInserter writes a batch of staged records with a single statement.
// Postgres converts the JSON values to the column types, so a batch either
// lands completely or not at all.
type RecordInserter struct {
	pool *pgxpool.Pool
}

func NewRecordInserter(pool *pgxpool.Pool) *RecordInserter {
	return &RecordInserter{pool: pool}
}

func (r *RecordInserter) InsertBatch(ctx context.Context, table domain.TableName, records []domain.StagedRecord) error {
	if len(records) == 0 {
		return nil
	}
	if _, err := domain.ParseTableName(table.String()); err != nil {
		return err
	}

	columns := batchColumns(records)
	if len(columns) == 0 {
		return fmt.Errorf("insert into %s: records carry no columns", table)
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s batch: %w", table, err)
	}

	if _, err := r.pool.Exec(ctx, insertStatement(table, columns), string(payload)); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func insertStatement(table domain.TableName, columns []string) string {
	quoted := make([]string, 0, len(columns))
	for _, column := range columns {
		quoted = append(quoted, pgx.Identifier{column}.Sanitize())
	}
	list := strings.Join(quoted, ", ")
	target := pgx.Identifier{table.String()}.Sanitize()

	return fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM json_populate_recordset(NULL::%s, $1::json)",
		target, list, list, target,
	)
}

// batchColumns is the sorted union of the keys of records.
func batchColumns(records []domain.StagedRecord) []string {
	seen := make(map[string]struct{})
	for _, record := range records {
		for column := range record {
			seen[column] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for column := range seen {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}
