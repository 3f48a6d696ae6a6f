package importing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Row is one spreadsheet row keyed by header.
type Row map[string]any

// StagedRecord is one row ready to be written, keyed by target column.
type StagedRecord map[string]any

// Transformer turns spreadsheet rows into staged records.
type Transformer struct {
	// Location receives timestamps that carry their own zone before the
	// calendar day is taken. Nil means time.Local.
	Location *time.Location
}

func NewTransformer(loc *time.Location) Transformer {
	return Transformer{Location: loc}
}

// TransformRow applies mapping to row with the local time zone.
func TransformRow(row Row, mapping ColumnMapping) StagedRecord {
	return Transformer{}.TransformRow(row, mapping)
}

// TransformRow keeps only mapped headers and coerces values bound for date
// columns. Headers are visited in upload order; when two headers feed the same
// column the first non-null value is kept.
func (t Transformer) TransformRow(row Row, mapping ColumnMapping) StagedRecord {
	record := make(StagedRecord, mapping.MappedCount())

	for _, header := range mapping.headers {
		column, ok := mapping.targets[header]
		if !ok {
			continue
		}
		raw, present := row[header]
		if !present {
			continue
		}
		if existing, taken := record[column]; taken && existing != nil {
			continue
		}

		if IsDateColumn(column) {
			record[column] = t.coerceDate(raw)
			continue
		}
		record[column] = raw
	}

	return record
}

func (t Transformer) coerceDate(raw any) any {
	if serial, ok := numericValue(raw); ok {
		if date, ok := SerialToDate(serial); ok {
			return FormatDate(date)
		}
		return raw
	}

	if text, ok := raw.(string); ok {
		if date, ok := ParseDate(text, t.Location); ok {
			return FormatDate(date)
		}
	}
	return raw
}

func numericValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// MissingRequired returns the first required column that record leaves empty.
func MissingRequired(record StagedRecord, required []string) (string, bool) {
	for _, column := range required {
		value, ok := record[column]
		if !ok || value == nil {
			return column, true
		}
		if text, isText := value.(string); isText && strings.TrimSpace(text) == "" {
			return column, true
		}
	}
	return "", false
}

// ValidateRecord checks record against the required columns of schema.
func ValidateRecord(record StagedRecord, schema TableSchema) error {
	if column, missing := MissingRequired(record, schema.Required); missing {
		return fmt.Errorf("%w %q", ErrMissingRequiredValue, column)
	}
	return nil
}
