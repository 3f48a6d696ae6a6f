package importing

// Sheet is a decoded spreadsheet: a header row plus data rows. Cells hold
// nil, string, float64 or bool.
type Sheet struct {
	Headers []string
	Cells   [][]any
}

// Rows keys every non-blank data row by header. Missing trailing cells are
// treated as nil.
func (s Sheet) Rows() []Row {
	rows := make([]Row, 0, len(s.Cells))
	for _, cells := range s.Cells {
		if isBlankRow(cells) {
			continue
		}
		row := make(Row, len(s.Headers))
		for i, header := range s.Headers {
			var value any
			if i < len(cells) {
				value = cells[i]
			}
			row[header] = value
		}
		rows = append(rows, row)
	}
	return rows
}

func isBlankRow(cells []any) bool {
	for _, cell := range cells {
		if cell == nil {
			continue
		}
		if text, ok := cell.(string); ok && text == "" {
			continue
		}
		return false
	}
	return true
}
