package file

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
	"github.com/xuri/excelize/v2"
)

// numericCell matches plain decimals; leading zeros keep a cell textual so
// codes such as "00123" survive.
var numericCell = regexp.MustCompile(`^-?(0|[1-9]\d*)(\.\d+)?$`)

// SpreadsheetReader decodes .xlsx, .xls, .csv and .json uploads. The first row
// (or the keys of the first objects) becomes the header row.
type SpreadsheetReader struct {
	// MaxRows bounds the rows of one file, header included. Larger files are
	// rejected as a whole.
	MaxRows int
}

func NewSpreadsheetReader() *SpreadsheetReader {
	return &SpreadsheetReader{MaxRows: 100000}
}

func (s *SpreadsheetReader) Read(r io.Reader, fileName string) (domain.Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("read upload: %w", err)
	}

	var grid [][]string
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		grid, err = s.readXLSX(data)
	case ".xls":
		grid, err = s.readXLS(data)
	case ".csv", ".txt":
		grid, err = s.readCSV(data)
	case ".json":
		return s.readJSON(data)
	default:
		return domain.Sheet{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filepath.Ext(fileName))
	}
	if err != nil {
		if errors.Is(err, domain.ErrEmptySpreadsheet) {
			return domain.Sheet{}, err
		}
		return domain.Sheet{}, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}

	return gridToSheet(grid)
}

func (s *SpreadsheetReader) readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, domain.ErrEmptySpreadsheet
	}

	// Raw values keep dates as serial numbers instead of display strings.
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if err := s.checkLimit(len(rows)); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SpreadsheetReader) readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, domain.ErrEmptySpreadsheet
	}

	if err := s.checkLimit(int(sheet.MaxRow) + 1); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (s *SpreadsheetReader) readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
		if err := s.checkLimit(len(rows)); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// readJSON accepts an array of objects. Headers follow the order in which keys
// first appear.
func (s *SpreadsheetReader) readJSON(data []byte) (domain.Sheet, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	dec.UseNumber()

	token, err := dec.Token()
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '[' {
		return domain.Sheet{}, fmt.Errorf("%w: payload must be a JSON array", domain.ErrInvalidSpreadsheet)
	}

	var headers []string
	index := make(map[string]int)
	var objects []map[string]any

	for dec.More() {
		object, keys, err := decodeObject(dec)
		if err != nil {
			return domain.Sheet{}, fmt.Errorf("%w: object %d: %v", domain.ErrInvalidSpreadsheet, len(objects), err)
		}
		for _, key := range keys {
			if _, ok := index[key]; !ok {
				index[key] = len(headers)
				headers = append(headers, key)
			}
		}
		objects = append(objects, object)
		// One header row is implied, as for the grid formats.
		if err := s.checkLimit(len(objects) + 1); err != nil {
			return domain.Sheet{}, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return domain.Sheet{}, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}

	if len(headers) == 0 {
		return domain.Sheet{}, domain.ErrEmptySpreadsheet
	}

	cells := make([][]any, 0, len(objects))
	for _, object := range objects {
		row := make([]any, len(headers))
		for key, value := range object {
			row[index[key]] = value
		}
		cells = append(cells, row)
	}
	return domain.Sheet{Headers: headers, Cells: cells}, nil
}

func decodeObject(dec *json.Decoder) (map[string]any, []string, error) {
	token, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.New("expected an object")
	}

	object := make(map[string]any)
	var keys []string
	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := token.(string)
		if !ok {
			return nil, nil, errors.New("expected an object key")
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		if number, isNumber := value.(json.Number); isNumber {
			if f, err := number.Float64(); err == nil {
				value = f
			}
		}

		if _, dup := object[key]; !dup {
			keys = append(keys, key)
		}
		object[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return object, keys, nil
}

func (s *SpreadsheetReader) checkLimit(rows int) error {
	if s.MaxRows > 0 && rows > s.MaxRows {
		return fmt.Errorf("more than %d rows", s.MaxRows)
	}
	return nil
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab on the
// first line, ignoring quoted text. Ties go to the comma.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	counts := map[rune]int{}
	quoted := false
	for _, r := range string(line) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == ',' || r == ';' || r == '\t':
			counts[r]++
		}
	}

	best := ','
	for _, candidate := range []rune{';', '\t'} {
		if counts[candidate] > counts[best] {
			best = candidate
		}
	}
	return best
}

func gridToSheet(grid [][]string) (domain.Sheet, error) {
	if len(grid) == 0 || isBlank(grid[0]) {
		return domain.Sheet{}, domain.ErrEmptySpreadsheet
	}

	headers := uniqueHeaders(grid[0])
	cells := make([][]any, 0, len(grid)-1)
	for _, raw := range grid[1:] {
		row := make([]any, 0, len(headers))
		for i := 0; i < len(headers) && i < len(raw); i++ {
			row = append(row, typedCell(raw[i]))
		}
		cells = append(cells, row)
	}
	return domain.Sheet{Headers: headers, Cells: cells}, nil
}

// uniqueHeaders names blank header cells by their column letter and suffixes
// repeated names with the first free _1, _2 and so on.
func uniqueHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	taken := make(map[string]bool, len(raw))
	for i, cell := range raw {
		name := strings.TrimSpace(cell)
		if name == "" {
			name, _ = excelize.ColumnNumberToName(i + 1)
		}
		for n := 1; taken[name]; n++ {
			candidate := name + "_" + strconv.Itoa(n)
			if !taken[candidate] {
				name = candidate
			}
		}
		taken[name] = true
		headers[i] = name
	}
	return headers
}

func typedCell(raw string) any {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	if numericCell.MatchString(value) {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return raw
}

func isBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
