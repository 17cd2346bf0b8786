package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/finacals/finacals-backend/internal/service"
	"github.com/finacals/finacals-backend/internal/testutil"
)

func newReportHandler() (*ReportHandler, *testutil.MockExpenseRepository) {
	expenseRepo := testutil.NewMockExpenseRepository()
	reportService := service.NewReportService(expenseRepo, service.NewSummaryService(), nil)
	return NewReportHandler(reportService), expenseRepo
}

func TestDownloadReport_YearRequired(t *testing.T) {
	e := echo.New()
	handler, _ := newReportHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses/report", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupIdentityContext(c, "test@example.com", "Test User")

	if err := handler.DownloadReport(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestDownloadReport_InvalidMonth(t *testing.T) {
	e := echo.New()
	handler, _ := newReportHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses/report?year=2024&month=0", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupIdentityContext(c, "test@example.com", "Test User")

	if err := handler.DownloadReport(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestDownloadReport_EmptyRange(t *testing.T) {
	e := echo.New()
	handler, _ := newReportHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses/report?year=2024&month=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupIdentityContext(c, "test@example.com", "Test User")

	if err := handler.DownloadReport(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Status != "ERROR" {
		t.Errorf("Expected status ERROR for an empty range, got %s", response.Status)
	}
	if response.Message == "" {
		t.Error("Expected an explanatory message")
	}
}

func TestDownloadReport_Success(t *testing.T) {
	e := echo.New()
	handler, expenseRepo := newReportHandler()
	seedExpense(expenseRepo, 1, "test@example.com", "Rice", "2024-05-10", "150.00", true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses/report?year=2024&month=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupIdentityContext(c, "test@example.com", "Test User")

	if err := handler.DownloadReport(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "expense_report_2024_May.xlsx") {
		t.Errorf("Unexpected content disposition: %s", disposition)
	}
	contentType := rec.Header().Get(echo.HeaderContentType)
	if !strings.Contains(contentType, "spreadsheetml") {
		t.Errorf("Unexpected content type: %s", contentType)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected a non-empty spreadsheet body")
	}
}

func TestDownloadReport_FullYearFilename(t *testing.T) {
	e := echo.New()
	handler, expenseRepo := newReportHandler()
	seedExpense(expenseRepo, 1, "test@example.com", "Rice", "2024-05-10", "150.00", true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses/report?year=2024", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupIdentityContext(c, "test@example.com", "Test User")

	if err := handler.DownloadReport(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(disposition, "expense_report_2024_full_year.xlsx") {
		t.Errorf("Unexpected content disposition: %s", disposition)
	}
}
