package service

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/finacals/finacals-backend/internal/domain"
	"github.com/finacals/finacals-backend/internal/testutil"
)

func seedReportExpenses(repo *testutil.MockExpenseRepository) {
	food := &domain.ExpenseCategory{ID: 1, Name: "Food"}
	repo.AddExpense(&domain.Expense{
		ID: 1, Date: date("2024-05-01"), Name: "Rice", Owner: "user@example.com",
		Amount: decimal.NewFromInt(100), ReallyNeeded: true, CategoryID: 1, Category: food,
	})
	repo.AddExpense(&domain.Expense{
		ID: 2, Date: date("2024-05-15"), Name: "Cinema", Owner: "user@example.com",
		Amount: decimal.NewFromInt(50), CategoryID: 1, Category: food,
	})
}

func TestExport_EmptyRangeIsNotAFile(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	svc := NewReportService(expenseRepo, NewSummaryService(), nil)

	_, err := svc.Export("user@example.com", 2024, nil)
	if !errors.Is(err, domain.ErrNoExpensesInRange) {
		t.Errorf("Expected ErrNoExpensesInRange, got %v", err)
	}
}

func TestExport_FullYearFilename(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	seedReportExpenses(expenseRepo)
	svc := NewReportService(expenseRepo, NewSummaryService(), nil)

	report, err := svc.Export("user@example.com", 2024, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.Filename != "expense_report_2024_full_year.xlsx" {
		t.Errorf("Expected full-year filename, got %s", report.Filename)
	}
	if !strings.Contains(report.ContentType, "spreadsheetml") {
		t.Errorf("Expected spreadsheet content type, got %s", report.ContentType)
	}
	if len(report.Data) == 0 {
		t.Error("Expected non-empty report bytes")
	}
}

func TestExport_MonthFilename(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	seedReportExpenses(expenseRepo)
	svc := NewReportService(expenseRepo, NewSummaryService(), nil)

	may := 5
	report, err := svc.Export("user@example.com", 2024, &may)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.Filename != "expense_report_2024_May.xlsx" {
		t.Errorf("Expected May filename, got %s", report.Filename)
	}
}

func TestExport_SpreadsheetLayout(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	seedReportExpenses(expenseRepo)
	svc := NewReportService(expenseRepo, NewSummaryService(), nil)

	report, err := svc.Export("user@example.com", 2024, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(report.Data))
	if err != nil {
		t.Fatalf("Failed to reopen generated spreadsheet: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Expense Report")
	if err != nil {
		t.Fatalf("Failed to read sheet rows: %v", err)
	}

	if len(rows) < 6 {
		t.Fatalf("Expected header, 2 data rows, separator and 3 summary rows, got %d rows", len(rows))
	}

	header := rows[0]
	if header[0] != "Date" || header[1] != "Category" || header[2] != "Amount" {
		t.Errorf("Unexpected header row: %v", header)
	}

	if rows[1][0] != "2024-05-01" {
		t.Errorf("Expected date without time marker, got %q", rows[1][0])
	}

	// Separator row between data and summary
	if len(rows[3]) != 0 {
		t.Errorf("Expected blank separator row, got %v", rows[3])
	}

	labels := []string{"Actual Total Expenditure", "Non-Essential Expenditure", "Desired Essential Expenditure"}
	values := []string{"150", "50", "100"}
	for i, label := range labels {
		row := rows[4+i]
		if row[0] != label {
			t.Errorf("Expected summary label %q, got %q", label, row[0])
		}
		if row[1] != values[i] {
			t.Errorf("Expected summary value %q for %q, got %q", values[i], label, row[1])
		}
	}
}

func TestExport_ScopedToOwner(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	seedReportExpenses(expenseRepo)
	expenseRepo.AddExpense(&domain.Expense{
		ID: 9, Date: date("2024-05-20"), Name: "Foreign", Owner: "other@example.com",
		Amount: decimal.NewFromInt(999), CategoryID: 1,
	})
	svc := NewReportService(expenseRepo, NewSummaryService(), nil)

	report, err := svc.Export("user@example.com", 2024, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(report.Data))
	if err != nil {
		t.Fatalf("Failed to reopen generated spreadsheet: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("Expense Report")
	for _, row := range rows {
		if len(row) > 0 && row[0] == "2024-05-20" {
			t.Error("Expected foreign owner's record to be excluded from the report")
		}
	}
}

func TestExport_ArchivesCopy(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	seedReportExpenses(expenseRepo)
	archive := testutil.NewMockReportArchive()
	svc := NewReportService(expenseRepo, NewSummaryService(), archive)

	report, err := svc.Export("user@example.com", 2024, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(archive.Uploads) != 1 {
		t.Fatalf("Expected 1 archived copy, got %d", len(archive.Uploads))
	}
	for key, data := range archive.Uploads {
		if !strings.HasPrefix(key, "reports/user@example.com/") {
			t.Errorf("Expected owner-namespaced key, got %s", key)
		}
		if !bytes.Equal(data, report.Data) {
			t.Error("Expected archived bytes to match the download")
		}
	}
}

func TestExport_ArchiveFailureDoesNotBlockDownload(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	seedReportExpenses(expenseRepo)
	archive := testutil.NewMockReportArchive()
	archive.Err = errors.New("bucket unavailable")
	svc := NewReportService(expenseRepo, NewSummaryService(), archive)

	report, err := svc.Export("user@example.com", 2024, nil)
	if err != nil {
		t.Fatalf("Expected download to succeed despite archive failure, got %v", err)
	}
	if len(report.Data) == 0 {
		t.Error("Expected report bytes")
	}
}
