package domain

// ExpenseCategory classifies expenses. Categories are shared across owners;
// only expense records themselves are owner-scoped.
type ExpenseCategory struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type CategoryRepository interface {
	Create(category *ExpenseCategory) (*ExpenseCategory, error)
	GetByID(id int32) (*ExpenseCategory, error)
	GetAll() ([]*ExpenseCategory, error)
	Update(id int32, name string) (*ExpenseCategory, error)
	Delete(id int32) error
	CountExpenses(id int32) (int64, error)
}
