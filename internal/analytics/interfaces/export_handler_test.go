package interfaces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"equipcare-cloud/internal/analytics/application"
	"equipcare-cloud/internal/analytics/domain/kpi"
	"equipcare-cloud/internal/analytics/infrastructure/memory"
	"equipcare-cloud/internal/audit"
	"equipcare-cloud/internal/auth"
	masterdata "equipcare-cloud/internal/masterdata/domain"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingAuditor struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (a *recordingAuditor) Log(_ context.Context, entry audit.Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	return nil
}

func newExportFixture(t *testing.T) (*ExportHandler, *recordingAuditor) {
	t.Helper()
	reader := memory.NewHistoryReader()
	reader.AddAsset(masterdata.Asset{ID: "a-1", Code: "EQ-001", Name: "Press", Active: true})

	svc, err := application.NewKPIService(reader, reader, application.Config{Scoring: kpi.DefaultScoringConfig()}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	auditor := &recordingAuditor{}
	handler, err := NewExportHandler(svc, fixedClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}, auditor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return handler, auditor
}

func TestExportPDF(t *testing.T) {
	handler, auditor := newExportFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/health-report.pdf", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), "t-1", auth.RoleAdmin, "admin-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected PDF content type, got %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "health-report.pdf") {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatal("body is not a PDF document")
	}

	if len(auditor.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(auditor.entries))
	}
	entry := auditor.entries[0]
	if entry.Action != "export.health_report" || entry.TenantID != "t-1" || entry.Actor != "admin-1" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
	if entry.ResourceID != "pdf" {
		t.Fatalf("expected format in resource id, got %q", entry.ResourceID)
	}
}

func TestExportXLSX(t *testing.T) {
	handler, _ := newExportFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/health-report.xlsx", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("expected XLSX content type, got %q", got)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected non-empty body")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	handler, auditor := newExportFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/health-report.csv", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if len(auditor.entries) != 0 {
		t.Fatal("failed export must not be audited")
	}
}

func TestExportMethodNotAllowed(t *testing.T) {
	handler, _ := newExportFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports/health-report.pdf", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestExportNilAuditor(t *testing.T) {
	reader := memory.NewHistoryReader()
	svc, err := application.NewKPIService(reader, reader, application.Config{Scoring: kpi.DefaultScoringConfig()}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	handler, err := NewExportHandler(svc, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/health-report.pdf", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
