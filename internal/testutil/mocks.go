package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/finacals/finacals-backend/internal/domain"
)

// MockCategoryRepository is an in-memory implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.ExpenseCategory
	// ExpenseCounts maps category ID to the number of referencing expenses
	ExpenseCounts map[int32]int64
	nextID        int32
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories:    make(map[int32]*domain.ExpenseCategory),
		ExpenseCounts: make(map[int32]int64),
		nextID:        1,
	}
}

// AddCategory seeds a category with a fixed ID
func (m *MockCategoryRepository) AddCategory(category *domain.ExpenseCategory) {
	m.Categories[category.ID] = category
	if category.ID >= m.nextID {
		m.nextID = category.ID + 1
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.ExpenseCategory) (*domain.ExpenseCategory, error) {
	created := &domain.ExpenseCategory{ID: m.nextID, Name: category.Name}
	m.nextID++
	m.Categories[created.ID] = created
	return created, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id int32) (*domain.ExpenseCategory, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all categories
func (m *MockCategoryRepository) GetAll() ([]*domain.ExpenseCategory, error) {
	categories := make([]*domain.ExpenseCategory, 0, len(m.Categories))
	for _, category := range m.Categories {
		categories = append(categories, category)
	}
	// Same ordering as the real store: name, then ID
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

// Update renames a category
func (m *MockCategoryRepository) Update(id int32, name string) (*domain.ExpenseCategory, error) {
	category, ok := m.Categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	category.Name = name
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id int32) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// CountExpenses counts expenses referencing a category
func (m *MockCategoryRepository) CountExpenses(id int32) (int64, error) {
	return m.ExpenseCounts[id], nil
}

// MockExpenseRepository is an in-memory implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[int32]*domain.Expense
	nextID   int32
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[int32]*domain.Expense),
		nextID:   1,
	}
}

// AddExpense seeds an expense with a fixed ID
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	m.Expenses[expense.ID] = expense
	if expense.ID >= m.nextID {
		m.nextID = expense.ID + 1
	}
}

// Create inserts a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	expense.ID = m.nextID
	m.nextID++
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// GetByID retrieves an owned expense
func (m *MockExpenseRepository) GetByID(owner string, id int32) (*domain.Expense, error) {
	expense, ok := m.Expenses[id]
	if !ok || expense.Owner != owner {
		return nil, domain.ErrExpenseNotFound
	}
	return expense, nil
}

// List retrieves owned expenses matching the filter
func (m *MockExpenseRepository) List(filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	prefix := filter.DatePrefix()
	needle := strings.ToLower(filter.NameContains)

	var expenses []*domain.Expense
	for _, expense := range m.Expenses {
		if expense.Owner != filter.Owner {
			continue
		}
		if prefix != "" && !strings.HasPrefix(expense.Date.Format("2006-01-02"), prefix) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(expense.Name), needle) {
			continue
		}
		expenses = append(expenses, expense)
	}
	// Same ordering as the real store: date, then ID
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.Before(expenses[j].Date)
		}
		return expenses[i].ID < expenses[j].ID
	})
	return expenses, nil
}

// Update replaces an owned expense
func (m *MockExpenseRepository) Update(expense *domain.Expense) (*domain.Expense, error) {
	existing, ok := m.Expenses[expense.ID]
	if !ok || existing.Owner != expense.Owner {
		return nil, domain.ErrExpenseNotFound
	}
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// Delete removes an owned expense
func (m *MockExpenseRepository) Delete(owner string, id int32) error {
	expense, ok := m.Expenses[id]
	if !ok || expense.Owner != owner {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// DeleteRange removes owned expenses whose date matches the prefix
func (m *MockExpenseRepository) DeleteRange(owner, datePrefix string) (int64, error) {
	var ids []int32
	for id, expense := range m.Expenses {
		if expense.Owner == owner && strings.HasPrefix(expense.Date.Format("2006-01-02"), datePrefix) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return 0, domain.ErrNoExpensesInRange
	}
	for _, id := range ids {
		delete(m.Expenses, id)
	}
	return int64(len(ids)), nil
}

// MockReportArchive records report uploads in memory
type MockReportArchive struct {
	mu      sync.Mutex
	Uploads map[string][]byte
	Err     error
}

// NewMockReportArchive creates a new MockReportArchive
func NewMockReportArchive() *MockReportArchive {
	return &MockReportArchive{Uploads: make(map[string][]byte)}
}

// Upload stores the report bytes under the object path
func (m *MockReportArchive) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Uploads[objectPath] = data
	return "mock://" + objectPath, nil
}
