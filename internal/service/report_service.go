package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/finacals/finacals-backend/internal/domain"
	"github.com/finacals/finacals-backend/internal/repository/storage"
)

const reportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const reportSheet = "Expense Report"

// ReportService renders filtered expense sets into downloadable spreadsheets
type ReportService struct {
	expenseRepo domain.ExpenseRepository
	summary     *SummaryService
	archive     storage.ReportArchive // nil disables archiving
}

// NewReportService creates a new ReportService. archive may be nil.
func NewReportService(expenseRepo domain.ExpenseRepository, summary *SummaryService, archive storage.ReportArchive) *ReportService {
	return &ReportService{
		expenseRepo: expenseRepo,
		summary:     summary,
		archive:     archive,
	}
}

// Export builds the spreadsheet for the owner's expenses in the given year,
// restricted to one calendar month when month is set. An empty filtered set
// yields ErrNoExpensesInRange rather than an empty file.
func (s *ReportService) Export(owner string, year int, month *int) (*domain.Report, error) {
	filter := domain.ExpenseFilter{Owner: owner, Year: &year, Month: month}
	expenses, err := s.expenseRepo.List(filter)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, domain.ErrNoExpensesInRange
	}

	totals := s.summary.Totals(expenses)

	data, err := renderSpreadsheet(expenses, totals)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Filename:    reportFilename(year, month),
		ContentType: reportContentType,
		Data:        data,
	}

	// Best effort: a failed archive upload never blocks the download
	if s.archive != nil {
		key := storage.ObjectKey(owner, report.Filename)
		if _, err := s.archive.Upload(context.Background(), key, report.Data, report.ContentType); err != nil {
			log.Warn().Err(err).Str("owner", owner).Str("key", key).Msg("Failed to archive report")
		}
	}

	return report, nil
}

func renderSpreadsheet(expenses []*domain.Expense, totals domain.Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(reportSheet, "A1", &[]any{"Date", "Category", "Amount"}); err != nil {
		return nil, err
	}

	row := 2
	for _, expense := range expenses {
		categoryName := ""
		if expense.Category != nil {
			categoryName = expense.Category.Name
		}
		cell := fmt.Sprintf("A%d", row)
		values := []any{
			expense.Date.Format("2006-01-02"),
			categoryName,
			expense.Amount.InexactFloat64(),
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return nil, err
		}
		row++
	}

	// Blank separator row before the summary block
	row++
	summaryRows := []struct {
		label string
		value float64
	}{
		{"Actual Total Expenditure", totals.Total.InexactFloat64()},
		{"Non-Essential Expenditure", totals.NonEssential.InexactFloat64()},
		{"Desired Essential Expenditure", totals.Essential.InexactFloat64()},
	}
	for _, sr := range summaryRows {
		cell := fmt.Sprintf("A%d", row)
		values := []any{sr.label, sr.value}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return nil, err
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func reportFilename(year int, month *int) string {
	if month != nil {
		return fmt.Sprintf("expense_report_%d_%s.xlsx", year, time.Month(*month).String())
	}
	return fmt.Sprintf("expense_report_%d_full_year.xlsx", year)
}
