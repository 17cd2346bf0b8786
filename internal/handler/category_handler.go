package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/finacals/finacals-backend/internal/domain"
	"github.com/finacals/finacals-backend/internal/middleware"
	"github.com/finacals/finacals-backend/internal/service"
)

// CategoryHandler handles expense category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the create/rename request body
type CategoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	category, err := h.categoryService.CreateCategory(req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) || errors.Is(err, domain.ErrNameTooLong) {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Msg("Failed to create category")
		return respondError(c, http.StatusInternalServerError, "failed to create category")
	}

	log.Info().Int32("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return respondOK(c, http.StatusCreated, category)
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	categories, err := h.categoryService.GetCategories()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		return respondError(c, http.StatusInternalServerError, "failed to list categories")
	}
	if categories == nil {
		categories = []*domain.ExpenseCategory{}
	}
	return respondOK(c, http.StatusOK, categories)
}

// GetCategory handles GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid category id")
	}

	category, err := h.categoryService.GetCategoryByID(int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return respondError(c, http.StatusNotFound, "category not found")
		}
		log.Error().Err(err).Int("category_id", id).Msg("Failed to get category")
		return respondError(c, http.StatusInternalServerError, "failed to get category")
	}
	return respondOK(c, http.StatusOK, category)
}

// UpdateCategory handles PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid category id")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	category, err := h.categoryService.UpdateCategory(int32(id), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			return respondError(c, http.StatusNotFound, "category not found")
		case errors.Is(err, domain.ErrNameRequired), errors.Is(err, domain.ErrNameTooLong):
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Int("category_id", id).Msg("Failed to update category")
		return respondError(c, http.StatusInternalServerError, "failed to update category")
	}

	log.Info().Int32("category_id", category.ID).Str("name", category.Name).Msg("Category renamed")
	return respondOK(c, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid category id")
	}

	if err := h.categoryService.DeleteCategory(int32(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			return respondError(c, http.StatusNotFound, "category not found")
		case errors.Is(err, domain.ErrCategoryInUse):
			return respondError(c, http.StatusConflict, "category is still referenced by expenses")
		}
		log.Error().Err(err).Int("category_id", id).Msg("Failed to delete category")
		return respondError(c, http.StatusInternalServerError, "failed to delete category")
	}

	log.Info().Int("category_id", id).Msg("Category deleted")
	return respondOK(c, http.StatusOK, nil)
}
