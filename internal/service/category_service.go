package service

import (
	"strings"

	"github.com/finacals/finacals-backend/internal/domain"
)

// CategoryService handles expense category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new expense category
func (s *CategoryService) CreateCategory(name string) (*domain.ExpenseCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}

	return s.categoryRepo.Create(&domain.ExpenseCategory{Name: name})
}

// GetCategories retrieves all categories
func (s *CategoryService) GetCategories() ([]*domain.ExpenseCategory, error) {
	return s.categoryRepo.GetAll()
}

// GetCategoryByID retrieves a category by ID
func (s *CategoryService) GetCategoryByID(id int32) (*domain.ExpenseCategory, error) {
	return s.categoryRepo.GetByID(id)
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(id int32, name string) (*domain.ExpenseCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}

	return s.categoryRepo.Update(id, name)
}

// DeleteCategory removes a category. Deletion is refused while any expense
// still references the category, so expense rows never dangle.
func (s *CategoryService) DeleteCategory(id int32) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountExpenses(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}

	return s.categoryRepo.Delete(id)
}
