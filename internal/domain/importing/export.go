package importing

import (
	"strings"
	"time"
)

type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ParseExportFormat accepts xlsx, csv or json; empty defaults to xlsx.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", ErrUnknownFormat
	}
}

func (f ExportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}

// ExportFileName builds {table}_{timestamp}.{ext} with an ISO-8601 UTC
// timestamp whose colons are replaced so the name is valid on every filesystem.
func ExportFileName(table TableName, format ExportFormat, now time.Time) string {
	stamp := strings.ReplaceAll(now.UTC().Format("2006-01-02T15:04:05Z"), ":", "-")
	return string(table) + "_" + stamp + "." + string(format)
}
