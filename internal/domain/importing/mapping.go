package importing

import (
	"strings"
	"unicode"
)

// MappingEntry is one header of an import and the column it feeds.
// An empty Column means the header is ignored.
type MappingEntry struct {
	Header string `json:"header"`
	Column string `json:"column"`
}

// ColumnMapping maps spreadsheet headers onto the columns of a target table.
type ColumnMapping struct {
	headers []string
	columns []string
	targets map[string]string
}

// ProposeMapping guesses a column for each header using DefaultAliases.
func ProposeMapping(headers, columns []string) ColumnMapping {
	return ProposeMappingWithAliases(headers, columns, DefaultAliases)
}

// ProposeMappingWithAliases guesses a column for each header. For every header
// the first successful rule wins: case-insensitive equality, equality after
// normalization, then substring containment on the normalized forms. When the
// raw header matches nothing the same rules are retried on its alias
// translation. Headers that match nothing stay unmapped.
func ProposeMappingWithAliases(headers, columns []string, aliases Aliases) ColumnMapping {
	m := ColumnMapping{
		headers: append([]string(nil), headers...),
		columns: append([]string(nil), columns...),
		targets: make(map[string]string, len(headers)),
	}

	for _, header := range headers {
		column, ok := matchColumn(header, columns)
		if !ok {
			if translated := aliases.Translate(header); translated != "" {
				column, ok = matchColumn(translated, columns)
			}
		}
		if ok {
			m.targets[header] = column
		}
	}

	return m
}

func matchColumn(header string, columns []string) (string, bool) {
	for _, column := range columns {
		if strings.EqualFold(header, column) {
			return column, true
		}
	}

	normalizedHeader := normalizeName(header)
	for _, column := range columns {
		if normalizedHeader == normalizeName(column) {
			return column, true
		}
	}

	if normalizedHeader == "" {
		return "", false
	}
	for _, column := range columns {
		normalizedColumn := normalizeName(column)
		if normalizedColumn == "" {
			continue
		}
		if strings.Contains(normalizedColumn, normalizedHeader) || strings.Contains(normalizedHeader, normalizedColumn) {
			return column, true
		}
	}

	return "", false
}

func normalizeName(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r == '_' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// SetMapping overrides the column for header. An empty column clears it.
func (m *ColumnMapping) SetMapping(header, column string) error {
	if !m.hasHeader(header) {
		return ErrUnknownHeader
	}

	column = strings.TrimSpace(column)
	if column == "" {
		delete(m.targets, header)
		return nil
	}
	if !m.hasColumn(column) {
		return ErrUnknownColumn
	}

	if m.targets == nil {
		m.targets = make(map[string]string)
	}
	m.targets[header] = column
	return nil
}

// Target returns the column header feeds, if any.
func (m ColumnMapping) Target(header string) (string, bool) {
	column, ok := m.targets[header]
	return column, ok
}

func (m ColumnMapping) Headers() []string {
	return append([]string(nil), m.headers...)
}

func (m ColumnMapping) Columns() []string {
	return append([]string(nil), m.columns...)
}

// Entries lists every header in upload order with its current column.
func (m ColumnMapping) Entries() []MappingEntry {
	entries := make([]MappingEntry, 0, len(m.headers))
	for _, header := range m.headers {
		entries = append(entries, MappingEntry{Header: header, Column: m.targets[header]})
	}
	return entries
}

// MappedCount is the number of headers that feed a column.
func (m ColumnMapping) MappedCount() int {
	return len(m.targets)
}

func (m ColumnMapping) hasHeader(header string) bool {
	for _, h := range m.headers {
		if h == header {
			return true
		}
	}
	return false
}

func (m ColumnMapping) hasColumn(column string) bool {
	for _, c := range m.columns {
		if c == column {
			return true
		}
	}
	return false
}
