package echo

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/bizimport/internal/application/importing"
)

type TableHandler struct {
	columns app.ListTableColumns
	export  app.ExportTable
}

func NewTableHandler(columns app.ListTableColumns, export app.ExportTable) *TableHandler {
	return &TableHandler{columns: columns, export: export}
}

func (h *TableHandler) Columns(c echo.Context) error {
	out, err := h.columns.Execute(c.Request().Context(), app.ListTableColumnsInput{Table: c.Param("table")})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

// Export streams the table back as an attachment.
func (h *TableHandler) Export(c echo.Context) error {
	out, err := h.export.Execute(c.Request().Context(), app.ExportTableInput{
		Table:  c.Param("table"),
		Format: c.QueryParam("format"),
	})
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+strconv.Quote(out.FileName))
	c.Response().Header().Set("X-Row-Count", strconv.Itoa(out.RowCount))
	return c.Blob(http.StatusOK, out.ContentType, out.Content)
}
