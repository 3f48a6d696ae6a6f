package echo

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/bizimport/internal/application/importing"
	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{target: domain.ErrUnknownTable, status: http.StatusNotFound, code: "unknown_table"},
	{target: domain.ErrUnknownHeader, status: http.StatusBadRequest, code: "unknown_header"},
	{target: domain.ErrUnknownColumn, status: http.StatusBadRequest, code: "unknown_column"},
	{target: domain.ErrUnsupportedFormat, status: http.StatusBadRequest, code: "unsupported_format"},
	{target: domain.ErrEmptySpreadsheet, status: http.StatusBadRequest, code: "empty_spreadsheet"},
	{target: domain.ErrInvalidSpreadsheet, status: http.StatusBadRequest, code: "invalid_spreadsheet"},
	{target: domain.ErrUnknownFormat, status: http.StatusBadRequest, code: "unknown_format"},
	{target: app.ErrInvalidImportSource, status: http.StatusBadRequest, code: "invalid_source"},
	{target: app.ErrSessionNotFound, status: http.StatusNotFound, code: "session_not_found"},
	{target: app.ErrRunNotFound, status: http.StatusNotFound, code: "run_not_found"},
	{target: app.ErrSessionBusy, status: http.StatusConflict, code: "session_busy"},
	{target: domain.ErrInvalidTransition, status: http.StatusConflict, code: "invalid_transition"},
}

func writeError(c echo.Context, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.JSON(m.status, apiResponse{Error: &errorBody{Code: m.code, Message: err.Error()}})
		}
	}

	log.Printf("%s %s failed: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
		Code:    "internal_error",
		Message: "internal server error",
	}})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
		Code:    "bad_request",
		Message: message,
	}})
}
