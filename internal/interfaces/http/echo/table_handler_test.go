package echo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/bizimport/internal/application/importing"
	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
	httpecho "github.com/mohammadpnp/bizimport/internal/interfaces/http/echo"
)

type fakeColumns struct{}

func (f *fakeColumns) Execute(ctx context.Context, in app.ListTableColumnsInput) (app.ListTableColumnsOutput, error) {
	table, err := domain.ParseTableName(in.Table)
	if err != nil {
		return app.ListTableColumnsOutput{}, err
	}
	return app.ListTableColumnsOutput{Table: table.String(), Columns: []string{"full_name"}, Required: []string{"full_name"}}, nil
}

type fakeExport struct {
	got app.ExportTableInput
}

func (f *fakeExport) Execute(ctx context.Context, in app.ExportTableInput) (app.ExportTableOutput, error) {
	f.got = in
	format, err := domain.ParseExportFormat(in.Format)
	if err != nil {
		return app.ExportTableOutput{}, err
	}
	return app.ExportTableOutput{
		FileName:    "customers_2026-10-15T09-30-00Z." + string(format),
		ContentType: format.ContentType(),
		RowCount:    1,
		Content:     []byte("full_name\nAna\n"),
	}, nil
}

func newTableServer(export *fakeExport) *echo.Echo {
	e := echo.New()
	importHandler := httpecho.NewImportHandler(&fakeUpload{}, &fakeUpdateMapping{}, &fakeExecute{}, &fakeCancel{}, &fakeGetRun{}, &fakeListRuns{})
	httpecho.RegisterRoutes(e, importHandler, httpecho.NewTableHandler(&fakeColumns{}, export))
	return e
}

func TestTableHandlerColumns(t *testing.T) {
	t.Parallel()

	e := newTableServer(&fakeExport{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tables/customers/columns", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := decodeBody(t, rec)["data"].(map[string]any)
	if data["table"] != "customers" {
		t.Fatalf("unexpected data: %#v", data)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tables/users/columns", nil))
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "unknown_table" {
		t.Fatalf("expected 404 unknown_table, got %d", rec.Code)
	}
}

func TestTableHandlerExport(t *testing.T) {
	t.Parallel()

	export := &fakeExport{}
	e := newTableServer(export)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tables/customers/export?format=csv", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if export.got.Table != "customers" || export.got.Format != "csv" {
		t.Fatalf("unexpected input: %+v", export.got)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); got != `attachment; filename="customers_2026-10-15T09-30-00Z.csv"` {
		t.Fatalf("unexpected content disposition: %s", got)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected content type: %s", got)
	}
	if rec.Body.String() != "full_name\nAna\n" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestTableHandlerExportUnknownFormat(t *testing.T) {
	t.Parallel()

	e := newTableServer(&fakeExport{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tables/customers/export?format=pdf", nil))

	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "unknown_format" {
		t.Fatalf("expected 400 unknown_format, got %d", rec.Code)
	}
}
