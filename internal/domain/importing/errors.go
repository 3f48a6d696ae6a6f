package importing

import "errors"

var (
	ErrUnknownTable         = errors.New("unknown table")
	ErrUnknownColumn        = errors.New("unknown column")
	ErrUnknownHeader        = errors.New("unknown header")
	ErrInvalidTransition    = errors.New("invalid import run transition")
	ErrUnsupportedFormat    = errors.New("unsupported file format")
	ErrEmptySpreadsheet     = errors.New("spreadsheet is empty")
	ErrInvalidSpreadsheet   = errors.New("invalid spreadsheet")
	ErrMissingRequiredValue = errors.New("missing required column")
	ErrRunNotFound          = errors.New("import run not found")
	ErrUnknownFormat        = errors.New("unknown export format")
)
