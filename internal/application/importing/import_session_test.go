package importing_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	app "github.com/mohammadpnp/bizimport/internal/application/importing"
	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

type fakeSheetReader struct {
	sheet domain.Sheet
	err   error
}

func (f *fakeSheetReader) Read(r io.Reader, fileName string) (domain.Sheet, error) {
	if f.err != nil {
		return domain.Sheet{}, f.err
	}
	return f.sheet, nil
}

type fakeCatalog struct {
	err error
}

func (f *fakeCatalog) Schema(ctx context.Context, table domain.TableName) (domain.TableSchema, error) {
	if f.err != nil {
		return domain.TableSchema{}, f.err
	}
	return domain.TableSchema{
		Table:    table,
		Columns:  []string{"full_name", "email", "birth_date"},
		Required: []string{"full_name"},
	}, nil
}

type fakeRunRepo struct {
	mu      sync.Mutex
	saved   []domain.ImportRun
	runs    map[string]domain.ImportRun
	saveErr error
	getErr  error
}

func (f *fakeRunRepo) Save(ctx context.Context, run domain.ImportRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.runs == nil {
		f.runs = make(map[string]domain.ImportRun)
	}
	f.saved = append(f.saved, run)
	f.runs[run.ID] = run
	return nil
}

func (f *fakeRunRepo) Get(ctx context.Context, id string) (domain.ImportRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return domain.ImportRun{}, f.getErr
	}
	run, ok := f.runs[id]
	if !ok {
		return domain.ImportRun{}, domain.ErrRunNotFound
	}
	return run, nil
}

func (f *fakeRunRepo) ListRecent(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ImportRun, 0, len(f.saved))
	for _, run := range f.runs {
		out = append(out, run)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type pipeline struct {
	sessions *app.SessionRegistry
	runs     *fakeRunRepo
	inserter *fakeInserter
	upload   app.UploadSpreadsheet
	mapping  app.UpdateMapping
	execute  app.ExecuteImport
	cancel   app.CancelImport
}

func newPipeline(sheet domain.Sheet) *pipeline {
	p := &pipeline{
		sessions: app.NewSessionRegistry(),
		runs:     &fakeRunRepo{},
		inserter: &fakeInserter{},
	}
	transformer := domain.NewTransformer(time.UTC)
	p.upload = app.NewUploadSpreadsheet(&fakeSheetReader{sheet: sheet}, &fakeCatalog{}, p.runs, p.sessions, transformer)
	p.mapping = app.NewUpdateMapping(p.sessions, transformer)
	p.execute = app.NewExecuteImport(p.sessions, p.runs, app.NewBatchWriter(p.inserter, 2), transformer)
	p.cancel = app.NewCancelImport(p.sessions, p.runs)
	return p
}

func customerSheet() domain.Sheet {
	return domain.Sheet{
		Headers: []string{"Nome Completo", "E-mail", "Data de Nascimento", "Shoe Size"},
		Cells: [][]any{
			{"Ana Souza", "ana@example.com", 44197.0, 38.0},
			{"Bruno Lima", "bruno@example.com", "1990-12-31", 42.0},
			{nil, "sem-nome@example.com", nil, nil},
			{"Carla Dias", nil, "31/12/1985", nil},
		},
	}
}

func uploadCustomers(t *testing.T, p *pipeline) app.SessionOutput {
	t.Helper()

	out, err := p.upload.Execute(context.Background(), app.UploadSpreadsheetInput{
		Table:    "customers",
		FileName: "clientes.xlsx",
		File:     bytes.NewReader(nil),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return out
}

func TestUploadSpreadsheetProposesMapping(t *testing.T) {
	t.Parallel()

	p := newPipeline(customerSheet())
	out := uploadCustomers(t, p)

	if out.Status != string(domain.RunMapping) {
		t.Fatalf("expected mapping status, got %s", out.Status)
	}
	if out.RowCount != 4 {
		t.Fatalf("expected 4 rows, got %d", out.RowCount)
	}

	want := map[string]string{
		"Nome Completo":      "full_name",
		"E-mail":             "email",
		"Data de Nascimento": "birth_date",
		"Shoe Size":          "",
	}
	for _, entry := range out.Mapping {
		if want[entry.Header] != entry.Column {
			t.Fatalf("header %q: expected %q, got %q", entry.Header, want[entry.Header], entry.Column)
		}
	}

	if len(out.Preview) != 4 || out.Preview[0]["birth_date"] != "2021-01-01" {
		t.Fatalf("unexpected preview: %v", out.Preview)
	}
	if len(p.runs.saved) != 1 || p.runs.saved[0].Status != domain.RunMapping {
		t.Fatalf("expected the run to be saved in mapping state, got %+v", p.runs.saved)
	}
	if p.sessions.Len() != 1 {
		t.Fatalf("expected one open session, got %d", p.sessions.Len())
	}
}

func TestUploadSpreadsheetRejectsBadInput(t *testing.T) {
	t.Parallel()

	p := newPipeline(customerSheet())

	_, err := p.upload.Execute(context.Background(), app.UploadSpreadsheetInput{Table: "users", FileName: "a.csv", File: strings.NewReader("")})
	if !errors.Is(err, domain.ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}

	_, err = p.upload.Execute(context.Background(), app.UploadSpreadsheetInput{Table: "customers", FileName: "  ", File: strings.NewReader("")})
	if !errors.Is(err, app.ErrInvalidImportSource) {
		t.Fatalf("expected ErrInvalidImportSource, got %v", err)
	}
}

func TestUploadSpreadsheetReaderError(t *testing.T) {
	t.Parallel()

	sessions := app.NewSessionRegistry()
	uc := app.NewUploadSpreadsheet(
		&fakeSheetReader{err: domain.ErrUnsupportedFormat},
		&fakeCatalog{},
		&fakeRunRepo{},
		sessions,
		domain.NewTransformer(time.UTC),
	)

	_, err := uc.Execute(context.Background(), app.UploadSpreadsheetInput{Table: "customers", FileName: "a.pdf", File: strings.NewReader("")})
	if !errors.Is(err, app.ErrReadSpreadsheet) || !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected wrapped ErrUnsupportedFormat, got %v", err)
	}
	if sessions.Len() != 0 {
		t.Fatal("failed upload must not leave a session behind")
	}
}

func TestExecuteImportWritesValidRowsAndCountsRejected(t *testing.T) {
	t.Parallel()

	p := newPipeline(customerSheet())
	session := uploadCustomers(t, p)

	run, err := p.execute.Execute(context.Background(), app.ExecuteImportInput{RunID: session.RunID})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if run.Status != string(domain.RunComplete) {
		t.Fatalf("expected complete, got %s", run.Status)
	}
	if run.Succeeded != 3 || run.Failed != 1 || run.Processed != 4 {
		t.Fatalf("unexpected counters: %+v", run)
	}
	if len(run.Errors) != 1 || run.Errors[0] != `row 3: missing required column "full_name"` {
		t.Fatalf("unexpected errors: %v", run.Errors)
	}
	if len(p.inserter.written) != 3 {
		t.Fatalf("expected 3 written records, got %d", len(p.inserter.written))
	}
	if p.inserter.written[2]["birth_date"] != "1985-12-31" {
		t.Fatalf("unexpected birth_date: %#v", p.inserter.written[2]["birth_date"])
	}
	if _, ok := p.inserter.written[0]["Shoe Size"]; ok {
		t.Fatal("unmapped header leaked into record")
	}
	if p.sessions.Len() != 0 {
		t.Fatal("session must be discarded after the run")
	}

	last := p.runs.saved[len(p.runs.saved)-1]
	if last.Status != domain.RunComplete || last.FinishedAt == nil {
		t.Fatalf("expected final save of complete run, got %+v", last)
	}

	if _, err := p.execute.Execute(context.Background(), app.ExecuteImportInput{RunID: session.RunID}); !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second execute, got %v", err)
	}
}

func TestExecuteImportHonoursMappingOverride(t *testing.T) {
	t.Parallel()

	p := newPipeline(customerSheet())
	session := uploadCustomers(t, p)

	out, err := p.mapping.Execute(context.Background(), app.UpdateMappingInput{RunID: session.RunID, Header: "Data de Nascimento", Column: ""})
	if err != nil {
		t.Fatalf("update mapping: %v", err)
	}
	if _, ok := out.Preview[0]["birth_date"]; ok {
		t.Fatalf("expected birth_date to be dropped from preview, got %v", out.Preview[0])
	}

	_, err = p.mapping.Execute(context.Background(), app.UpdateMappingInput{RunID: session.RunID, Header: "Shoe Size", Column: "shoe_size"})
	if !errors.Is(err, domain.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}

	if _, err := p.execute.Execute(context.Background(), app.ExecuteImportInput{RunID: session.RunID}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, record := range p.inserter.written {
		if _, ok := record["birth_date"]; ok {
			t.Fatalf("cleared column was written: %v", record)
		}
	}
}

func TestExecuteImportBatchFailureKeepsGoing(t *testing.T) {
	t.Parallel()

	cells := make([][]any, 0, 120)
	for i := 0; i < 120; i++ {
		cells = append(cells, []any{fmt.Sprintf("Customer %d", i)})
	}
	p := newPipeline(domain.Sheet{Headers: []string{"full_name"}, Cells: cells})
	p.execute = app.NewExecuteImport(p.sessions, p.runs, app.NewBatchWriter(p.inserter, 50), domain.NewTransformer(time.UTC))
	p.inserter.failOn = map[int]error{1: errors.New("connection reset by peer")}

	session := uploadCustomers(t, p)
	run, err := p.execute.Execute(context.Background(), app.ExecuteImportInput{RunID: session.RunID})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if run.Succeeded != 100 || run.Failed != 20 || len(run.Errors) != 1 || run.Status != string(domain.RunComplete) {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Success {
		t.Fatal("run with failed batch must not report success")
	}
}

func TestExecuteImportCancelledContext(t *testing.T) {
	t.Parallel()

	p := newPipeline(customerSheet())
	session := uploadCustomers(t, p)

	ctx, cancel := context.WithCancel(context.Background())
	p.inserter.onCall = func(int) { cancel() }

	run, err := p.execute.Execute(ctx, app.ExecuteImportInput{RunID: session.RunID})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if run.Status != string(domain.RunCancelled) {
		t.Fatalf("expected cancelled, got %s", run.Status)
	}
	if run.Succeeded+run.Failed != run.Processed {
		t.Fatalf("counters out of balance: %+v", run)
	}
	if p.inserter.calls != 1 {
		t.Fatalf("expected a single batch, got %d", p.inserter.calls)
	}
	if p.runs.saved[len(p.runs.saved)-1].Status != domain.RunCancelled {
		t.Fatal("expected cancelled run to be saved")
	}
}

func TestExecuteImportDryRun(t *testing.T) {
	t.Parallel()

	p := newPipeline(customerSheet())
	session := uploadCustomers(t, p)

	run, err := p.execute.Execute(context.Background(), app.ExecuteImportInput{RunID: session.RunID, DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if p.inserter.calls != 0 {
		t.Fatalf("dry run wrote %d batches", p.inserter.calls)
	}
	if run.Failed != 1 || run.Status != string(domain.RunCancelled) {
		t.Fatalf("unexpected run: %+v", run)
	}
}

func TestCancelImport(t *testing.T) {
	t.Parallel()

	p := newPipeline(customerSheet())
	session := uploadCustomers(t, p)

	run, err := p.cancel.Execute(context.Background(), app.CancelImportInput{RunID: session.RunID})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if run.Status != string(domain.RunCancelled) || run.FinishedAt == nil {
		t.Fatalf("unexpected run: %+v", run)
	}
	if p.sessions.Len() != 0 {
		t.Fatal("expected session to be removed")
	}

	if _, err := p.cancel.Execute(context.Background(), app.CancelImportInput{RunID: session.RunID}); !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCancelImportWhileImportingIsRejected(t *testing.T) {
	t.Parallel()

	p := newPipeline(customerSheet())
	session := uploadCustomers(t, p)

	var cancelErr error
	p.inserter.onCall = func(call int) {
		if call == 0 {
			_, cancelErr = p.cancel.Execute(context.Background(), app.CancelImportInput{RunID: session.RunID})
		}
	}

	if _, err := p.execute.Execute(context.Background(), app.ExecuteImportInput{RunID: session.RunID}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !errors.Is(cancelErr, app.ErrSessionBusy) {
		t.Fatalf("expected ErrSessionBusy, got %v", cancelErr)
	}
}

func TestGetImportRun(t *testing.T) {
	t.Parallel()

	runs := &fakeRunRepo{}
	_ = runs.Save(context.Background(), domain.NewImportRun("run-1", domain.TablePayments, "pagamentos.csv", time.Now()))

	uc := app.NewGetImportRun(runs)

	out, err := uc.Execute(context.Background(), app.GetImportRunInput{ID: "run-1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Table != "payments" || out.Errors == nil {
		t.Fatalf("unexpected output: %+v", out)
	}

	if _, err := uc.Execute(context.Background(), app.GetImportRunInput{ID: "missing"}); !errors.Is(err, app.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}

	failing := app.NewGetImportRun(&fakeRunRepo{getErr: errors.New("db down")})
	if _, err := failing.Execute(context.Background(), app.GetImportRunInput{ID: "run-1"}); !errors.Is(err, app.ErrGetRun) {
		t.Fatalf("expected ErrGetRun, got %v", err)
	}
}

func TestListImportRunsClampsLimit(t *testing.T) {
	t.Parallel()

	runs := &fakeRunRepo{}
	for i := 0; i < 3; i++ {
		_ = runs.Save(context.Background(), domain.NewImportRun(fmt.Sprintf("run-%d", i), domain.TableCustomers, "c.csv", time.Now()))
	}

	out, err := app.NewListImportRuns(runs).Execute(context.Background(), app.ListImportRunsInput{Limit: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(out))
	}
}

func TestExpireSessionsCancelsIdleSessions(t *testing.T) {
	t.Parallel()

	p := newPipeline(customerSheet())
	session := uploadCustomers(t, p)
	expire := app.NewExpireSessions(p.sessions, p.runs)

	n, err := expire.Execute(context.Background(), app.ExpireSessionsInput{IdleFor: 30 * time.Minute})
	if err != nil || n != 0 {
		t.Fatalf("expected a fresh session to survive, got n=%d err=%v", n, err)
	}

	n, err = expire.Execute(context.Background(), app.ExpireSessionsInput{
		IdleFor: 30 * time.Minute,
		Now:     time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n != 1 || p.sessions.Len() != 0 {
		t.Fatalf("expected the idle session to be dropped, n=%d open=%d", n, p.sessions.Len())
	}

	run, err := p.runs.Get(context.Background(), session.RunID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if run.Status != domain.RunCancelled || run.FinishedAt == nil {
		t.Fatalf("expected run to be recorded as cancelled, got %+v", run)
	}

	if _, err := p.execute.Execute(context.Background(), app.ExecuteImportInput{RunID: session.RunID}); !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestExpireSessionsSkipsSessionInUse(t *testing.T) {
	t.Parallel()

	p := newPipeline(customerSheet())
	session := uploadCustomers(t, p)
	expire := app.NewExpireSessions(p.sessions, p.runs)

	var expired int
	p.inserter.onCall = func(call int) {
		if call == 0 {
			expired, _ = expire.Execute(context.Background(), app.ExpireSessionsInput{Now: time.Now().Add(time.Hour)})
		}
	}

	out, err := p.execute.Execute(context.Background(), app.ExecuteImportInput{RunID: session.RunID})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if expired != 0 || out.Status != string(domain.RunComplete) {
		t.Fatalf("expected running import to be left alone, expired=%d status=%s", expired, out.Status)
	}
}
