package echo

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/bizimport/internal/application/importing"
	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

type ImportHandler struct {
	upload   app.UploadSpreadsheet
	mapping  app.UpdateMapping
	execute  app.ExecuteImport
	cancel   app.CancelImport
	getRun   app.GetImportRun
	listRuns app.ListImportRuns
}

type updateMappingRequest struct {
	Header string `json:"header"`
	Column string `json:"column"`
}

func NewImportHandler(
	upload app.UploadSpreadsheet,
	mapping app.UpdateMapping,
	execute app.ExecuteImport,
	cancel app.CancelImport,
	getRun app.GetImportRun,
	listRuns app.ListImportRuns,
) *ImportHandler {
	return &ImportHandler{
		upload:   upload,
		mapping:  mapping,
		execute:  execute,
		cancel:   cancel,
		getRun:   getRun,
		listRuns: listRuns,
	}
}

// Upload accepts a multipart form with the target table and the spreadsheet.
func (h *ImportHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "multipart field file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "uploaded file cannot be read")
	}
	defer src.Close()

	out, err := h.upload.Execute(c.Request().Context(), app.UploadSpreadsheetInput{
		Table:    c.FormValue("table"),
		FileName: fileHeader.Filename,
		File:     src,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownTable) {
			return badRequest(c, fmt.Sprintf("table must be one of %v", domain.Tables()))
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *ImportHandler) UpdateMapping(c echo.Context) error {
	var req updateMappingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	out, err := h.mapping.Execute(c.Request().Context(), app.UpdateMappingInput{
		RunID:  c.Param("id"),
		Header: req.Header,
		Column: req.Column,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

// Execute runs the import while the request is open; a client that goes away
// cancels the remaining batches.
func (h *ImportHandler) Execute(c echo.Context) error {
	out, err := h.execute.Execute(c.Request().Context(), app.ExecuteImportInput{RunID: c.Param("id")})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) Cancel(c echo.Context) error {
	out, err := h.cancel.Execute(c.Request().Context(), app.CancelImportInput{RunID: c.Param("id")})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) GetRun(c echo.Context) error {
	out, err := h.getRun.Execute(c.Request().Context(), app.GetImportRunInput{ID: c.Param("id")})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) ListRuns(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "limit must be a positive integer")
		}
		limit = parsed
	}

	out, err := h.listRuns.Execute(c.Request().Context(), app.ListImportRunsInput{Limit: limit})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
