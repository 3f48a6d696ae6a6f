package importing

import "errors"

var (
	ErrInvalidImportSource = errors.New("invalid import source")
	ErrSessionNotFound     = errors.New("import session not found")
	ErrSessionBusy         = errors.New("import session is busy")
	ErrReadSpreadsheet     = errors.New("failed to read spreadsheet")
	ErrLoadSchema          = errors.New("failed to load table schema")
	ErrSaveRun             = errors.New("failed to save import run")
	ErrRunNotFound         = errors.New("import run not found")
	ErrGetRun              = errors.New("failed to get import run")
	ErrListRuns            = errors.New("failed to list import runs")
	ErrExportTable         = errors.New("failed to export table")
)
