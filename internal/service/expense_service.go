package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/finacals/finacals-backend/internal/domain"
	"github.com/finacals/finacals-backend/internal/util"
)

// ExpenseService handles expense business logic. Every operation takes the
// owner explicitly; there is no way to reach another owner's records.
type ExpenseService struct {
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, categoryRepo domain.CategoryRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// ExpenseInput carries the mutable fields of an expense for create and update
type ExpenseInput struct {
	Date              time.Time
	Name              string
	QuantityPurchased int32
	UnitPrice         decimal.Decimal
	Amount            decimal.Decimal
	ReallyNeeded      bool
	CategoryID        int32
}

func (in *ExpenseInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.ErrNameRequired
	}
	if len(in.Name) > domain.MaxExpenseNameLength {
		return domain.ErrNameTooLong
	}
	if in.QuantityPurchased < 0 {
		return domain.ErrNegativeQuantity
	}
	if in.UnitPrice.IsNegative() || in.Amount.IsNegative() {
		return domain.ErrNegativeAmount
	}
	if in.QuantityPurchased == 0 {
		in.QuantityPurchased = 1
	}
	return nil
}

// CreateExpense records a new expense for the owner. The amount is derived
// from quantity and unit price when not supplied directly.
func (s *ExpenseService) CreateExpense(owner string, in ExpenseInput) (*domain.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		Date:              util.DateOnly(in.Date),
		Name:              in.Name,
		QuantityPurchased: in.QuantityPurchased,
		UnitPrice:         in.UnitPrice,
		Amount:            in.Amount,
		ReallyNeeded:      in.ReallyNeeded,
		CategoryID:        category.ID,
		Category:          category,
		Owner:             owner,
	}
	expense.DeriveAmount()

	return s.expenseRepo.Create(expense)
}

// GetExpense retrieves a single owned expense
func (s *ExpenseService) GetExpense(owner string, id int32) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(owner, id)
}

// ListExpenses retrieves the owner's expenses. Year alone restricts to the
// calendar year, year plus month to one month; month without year is ignored.
func (s *ExpenseService) ListExpenses(owner string, month, year *int) ([]*domain.Expense, error) {
	filter := domain.ExpenseFilter{Owner: owner}
	if year != nil {
		filter.Year = year
		filter.Month = month
	}
	return s.expenseRepo.List(filter)
}

// SearchExpenses finds owned expenses whose name contains the term,
// case-insensitively. Terms under three characters are rejected; an empty
// result is a not-found outcome.
func (s *ExpenseService) SearchExpenses(owner, term string) ([]*domain.Expense, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < domain.MinSearchTermLength {
		return nil, domain.ErrSearchTermTooShort
	}

	expenses, err := s.expenseRepo.List(domain.ExpenseFilter{Owner: owner, NameContains: term})
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, domain.ErrExpenseNotFound
	}
	return expenses, nil
}

// UpdateExpense replaces all mutable fields of an owned expense, re-applying
// the amount derivation rule.
func (s *ExpenseService) UpdateExpense(owner string, id int32, in ExpenseInput) (*domain.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		ID:                id,
		Date:              util.DateOnly(in.Date),
		Name:              in.Name,
		QuantityPurchased: in.QuantityPurchased,
		UnitPrice:         in.UnitPrice,
		Amount:            in.Amount,
		ReallyNeeded:      in.ReallyNeeded,
		CategoryID:        category.ID,
		Category:          category,
		Owner:             owner,
	}
	expense.DeriveAmount()

	return s.expenseRepo.Update(expense)
}

// DeleteExpense removes a single owned expense
func (s *ExpenseService) DeleteExpense(owner string, id int32) error {
	return s.expenseRepo.Delete(owner, id)
}

// DeleteRange removes every owned expense in the given year, or calendar
// month when month is set. The deletion is atomic; when nothing matches it
// fails with ErrNoExpensesInRange and changes nothing.
func (s *ExpenseService) DeleteRange(owner string, year int, month *int) (int64, error) {
	filter := domain.ExpenseFilter{Owner: owner, Year: &year, Month: month}
	return s.expenseRepo.DeleteRange(owner, filter.DatePrefix())
}
