package file

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// TableEncoder renders exported rows as xlsx, csv or json. Columns keep the
// order given by the caller in every format.
type TableEncoder struct{}

func NewTableEncoder() *TableEncoder {
	return &TableEncoder{}
}

func (e *TableEncoder) Encode(buf *bytes.Buffer, format domain.ExportFormat, columns []string, rows []map[string]any) error {
	switch format {
	case domain.FormatXLSX:
		return encodeXLSX(buf, columns, rows)
	case domain.FormatCSV:
		return encodeCSV(buf, columns, rows)
	case domain.FormatJSON:
		return encodeJSON(buf, columns, rows)
	default:
		return domain.ErrUnknownFormat
	}
}

func encodeXLSX(buf *bytes.Buffer, columns []string, rows []map[string]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := make([]any, len(columns))
	for i, column := range columns {
		header[i] = column
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, row := range rows {
		values := make([]any, len(columns))
		for j, column := range columns {
			values[j] = row[column]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(buf); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func encodeCSV(buf *bytes.Buffer, columns []string, rows []map[string]any) error {
	w := csv.NewWriter(buf)
	if err := w.Write(columns); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, column := range columns {
			record[i] = csvValue(row[column])
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func csvValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// encodeJSON writes a pretty-printed array of objects whose keys follow columns.
func encodeJSON(buf *bytes.Buffer, columns []string, rows []map[string]any) error {
	var compact bytes.Buffer
	compact.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			compact.WriteByte(',')
		}
		compact.WriteByte('{')
		for j, column := range columns {
			if j > 0 {
				compact.WriteByte(',')
			}
			key, err := json.Marshal(column)
			if err != nil {
				return err
			}
			value, err := json.Marshal(row[column])
			if err != nil {
				return fmt.Errorf("encode %s: %w", column, err)
			}
			compact.Write(key)
			compact.WriteByte(':')
			compact.Write(value)
		}
		compact.WriteByte('}')
	}
	compact.WriteByte(']')

	if err := json.Indent(buf, compact.Bytes(), "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return nil
}
