package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single owner-scoped expense record. Date is a pure calendar
// date stored at UTC midnight; time of day carries no meaning.
type Expense struct {
	ID                int32
	Date              time.Time
	Name              string
	QuantityPurchased int32
	UnitPrice         decimal.Decimal
	Amount            decimal.Decimal
	ReallyNeeded      bool
	CategoryID        int32
	Category          *ExpenseCategory
	Owner             string
}

// DeriveAmount enforces the write-time amount rule: when a unit price is given
// and no amount was supplied, the amount is quantity * unit price. A nonzero
// supplied amount is never overwritten.
func (e *Expense) DeriveAmount() {
	if e.UnitPrice.IsPositive() && e.Amount.IsZero() {
		e.Amount = e.UnitPrice.Mul(decimal.NewFromInt32(e.QuantityPurchased))
	}
}

// ExpenseFilter selects owned expenses. Month applies only together with Year;
// Year alone restricts to the whole calendar year. NameContains is a
// case-insensitive substring match.
type ExpenseFilter struct {
	Owner        string
	Month        *int
	Year         *int
	NameContains string
}

// DatePrefix returns the "YYYY" or "YYYY-MM" prefix the filter's date
// restriction corresponds to, or "" when no date restriction applies.
// Matching is done against the YYYY-MM-DD form of the stored date, so a record
// on a month boundary belongs to exactly one month.
func (f ExpenseFilter) DatePrefix() string {
	if f.Year == nil {
		return ""
	}
	if f.Month != nil {
		return fmt.Sprintf("%04d-%02d", *f.Year, *f.Month)
	}
	return fmt.Sprintf("%04d", *f.Year)
}

type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(owner string, id int32) (*Expense, error)
	List(filter ExpenseFilter) ([]*Expense, error)
	Update(expense *Expense) (*Expense, error)
	Delete(owner string, id int32) error
	// DeleteRange removes every owned expense whose date matches the prefix,
	// atomically. It returns ErrNoExpensesInRange without side effects when
	// nothing matches.
	DeleteRange(owner, datePrefix string) (int64, error)
}
