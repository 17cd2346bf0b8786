package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finacals/finacals-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new expense category
func (r *CategoryRepository) Create(category *domain.ExpenseCategory) (*domain.ExpenseCategory, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`INSERT INTO expense_categories (name) VALUES ($1) RETURNING id, name`,
		category.Name,
	)

	var created domain.ExpenseCategory
	if err := row.Scan(&created.ID, &created.Name); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(id int32) (*domain.ExpenseCategory, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT id, name FROM expense_categories WHERE id = $1`,
		id,
	)

	var category domain.ExpenseCategory
	if err := row.Scan(&category.ID, &category.Name); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetAll retrieves all categories ordered by display name
func (r *CategoryRepository) GetAll() ([]*domain.ExpenseCategory, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM expense_categories ORDER BY name, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.ExpenseCategory
	for rows.Next() {
		var category domain.ExpenseCategory
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

// Update renames a category
func (r *CategoryRepository) Update(id int32, name string) (*domain.ExpenseCategory, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`UPDATE expense_categories SET name = $2 WHERE id = $1 RETURNING id, name`,
		id, name,
	)

	var category domain.ExpenseCategory
	if err := row.Scan(&category.ID, &category.Name); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM expense_categories WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// CountExpenses counts the expense records referencing a category
func (r *CategoryRepository) CountExpenses(id int32) (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM daily_expenses WHERE category_id = $1`,
		id,
	).Scan(&count)
	return count, err
}
