package domain

import "github.com/shopspring/decimal"

// Totals partitions a set of expenses by the really-needed flag.
// Total == Essential + NonEssential always holds exactly.
type Totals struct {
	Total        decimal.Decimal
	NonEssential decimal.Decimal
	Essential    decimal.Decimal
}

// ChartEntry is one expense as shown in the charts view.
type ChartEntry struct {
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	ReallyNeeded bool            `json:"really_needed"`
}

// ChartData groups entries by "January 2006" month label, then by category
// display name. Per-category totals are intentionally omitted; clients sum.
type ChartData map[string]map[string][]ChartEntry

// Report is a generated spreadsheet ready for download.
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}
