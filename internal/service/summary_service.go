package service

import (
	"github.com/shopspring/decimal"

	"github.com/finacals/finacals-backend/internal/domain"
	"github.com/finacals/finacals-backend/internal/util"
)

// SummaryService computes aggregate views over filtered expense sets
type SummaryService struct{}

// NewSummaryService creates a new SummaryService
func NewSummaryService() *SummaryService {
	return &SummaryService{}
}

// Totals computes overall, non-essential and essential expenditure for a set
// of expenses. The three values satisfy total == essential + nonEssential
// exactly; an empty set yields three zeros.
func (s *SummaryService) Totals(expenses []*domain.Expense) domain.Totals {
	total := decimal.Zero
	nonEssential := decimal.Zero

	for _, expense := range expenses {
		total = total.Add(expense.Amount)
		if !expense.ReallyNeeded {
			nonEssential = nonEssential.Add(expense.Amount)
		}
	}

	return domain.Totals{
		Total:        total,
		NonEssential: nonEssential,
		Essential:    total.Sub(nonEssential),
	}
}

// GroupForChart buckets expenses by "Month Year" label, then by category
// display name, keeping only the fields the charts consume.
func (s *SummaryService) GroupForChart(expenses []*domain.Expense) domain.ChartData {
	grouped := make(domain.ChartData)

	for _, expense := range expenses {
		label := util.MonthLabel(expense.Date)

		categoryName := ""
		if expense.Category != nil {
			categoryName = expense.Category.Name
		}

		byCategory, ok := grouped[label]
		if !ok {
			byCategory = make(map[string][]domain.ChartEntry)
			grouped[label] = byCategory
		}

		byCategory[categoryName] = append(byCategory[categoryName], domain.ChartEntry{
			Name:         expense.Name,
			Amount:       expense.Amount,
			ReallyNeeded: expense.ReallyNeeded,
		})
	}

	return grouped
}
