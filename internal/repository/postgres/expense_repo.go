package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finacals/finacals-backend/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `e.id, e.date, e.name, e.quantity_purchased, e.unit_price,
	e.amount, e.really_needed, e.category_id, e.owner_email, c.name`

// Create inserts a new expense record
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	unitPrice, err := decimalToPgNumeric(expense.UnitPrice)
	if err != nil {
		return nil, err
	}
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, err
	}

	var date pgtype.Date
	date.Time = expense.Date
	date.Valid = true

	err = r.pool.QueryRow(ctx,
		`INSERT INTO daily_expenses
			(date, name, quantity_purchased, unit_price, amount, really_needed, category_id, owner_email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		date, expense.Name, expense.QuantityPurchased, unitPrice, amount,
		expense.ReallyNeeded, expense.CategoryID, expense.Owner,
	).Scan(&expense.ID)
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// GetByID retrieves an expense by ID, scoped to its owner. A record owned by
// someone else is indistinguishable from a missing one.
func (r *ExpenseRepository) GetByID(owner string, id int32) (*domain.Expense, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+expenseColumns+`
		 FROM daily_expenses e
		 JOIN expense_categories c ON c.id = e.category_id
		 WHERE e.id = $1 AND e.owner_email = $2`,
		id, owner,
	)

	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// List retrieves owned expenses matching the filter, each joined with its
// category. Date restriction is a prefix match on the YYYY-MM-DD form.
func (r *ExpenseRepository) List(filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT `+expenseColumns+`
		 FROM daily_expenses e
		 JOIN expense_categories c ON c.id = e.category_id
		 WHERE e.owner_email = $1
		   AND ($2 = '' OR to_char(e.date, 'YYYY-MM-DD') LIKE $2 || '%')
		   AND ($3 = '' OR e.name ILIKE '%' || $3 || '%')
		 ORDER BY e.date, e.id`,
		filter.Owner, filter.DatePrefix(), filter.NameContains,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// Update replaces all mutable fields of an owned expense
func (r *ExpenseRepository) Update(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	unitPrice, err := decimalToPgNumeric(expense.UnitPrice)
	if err != nil {
		return nil, err
	}
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, err
	}

	var date pgtype.Date
	date.Time = expense.Date
	date.Valid = true

	tag, err := r.pool.Exec(ctx,
		`UPDATE daily_expenses
		 SET date = $3, name = $4, quantity_purchased = $5, unit_price = $6,
		     amount = $7, really_needed = $8, category_id = $9
		 WHERE id = $1 AND owner_email = $2`,
		expense.ID, expense.Owner, date, expense.Name, expense.QuantityPurchased,
		unitPrice, amount, expense.ReallyNeeded, expense.CategoryID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrExpenseNotFound
	}
	return expense, nil
}

// Delete removes a single owned expense
func (r *ExpenseRepository) Delete(owner string, id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM daily_expenses WHERE id = $1 AND owner_email = $2`,
		id, owner,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// DeleteRange removes every owned expense whose date matches the prefix in a
// single transaction: either all matching rows go, or none do.
func (r *ExpenseRepository) DeleteRange(owner, datePrefix string) (int64, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var count int64
	err = tx.QueryRow(ctx,
		`SELECT count(*) FROM daily_expenses
		 WHERE owner_email = $1 AND to_char(date, 'YYYY-MM-DD') LIKE $2 || '%'`,
		owner, datePrefix,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, domain.ErrNoExpensesInRange
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM daily_expenses
		 WHERE owner_email = $1 AND to_char(date, 'YYYY-MM-DD') LIKE $2 || '%'`,
		owner, datePrefix,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var (
		expense      domain.Expense
		date         pgtype.Date
		unitPrice    pgtype.Numeric
		amount       pgtype.Numeric
		categoryName string
	)

	err := row.Scan(
		&expense.ID, &date, &expense.Name, &expense.QuantityPurchased,
		&unitPrice, &amount, &expense.ReallyNeeded, &expense.CategoryID,
		&expense.Owner, &categoryName,
	)
	if err != nil {
		return nil, err
	}

	expense.Date = date.Time.UTC()
	expense.UnitPrice = pgNumericToDecimal(unitPrice)
	expense.Amount = pgNumericToDecimal(amount)
	expense.Category = &domain.ExpenseCategory{ID: expense.CategoryID, Name: categoryName}
	return &expense, nil
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
