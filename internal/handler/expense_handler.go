package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/finacals/finacals-backend/internal/domain"
	"github.com/finacals/finacals-backend/internal/middleware"
	"github.com/finacals/finacals-backend/internal/service"
	"github.com/finacals/finacals-backend/internal/util"
)

// ExpenseHandler handles daily expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	summaryService *service.SummaryService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService, summaryService *service.SummaryService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		summaryService: summaryService,
	}
}

// ExpenseRequest represents the create/update request body
type ExpenseRequest struct {
	Date              string `json:"date"`
	Name              string `json:"name"`
	QuantityPurchased int32  `json:"quantity_purchased"`
	UnitPrice         string `json:"unit_price"`
	Amount            string `json:"amount"`
	ReallyNeeded      bool   `json:"really_needed"`
	CategoryID        int32  `json:"category_id"`
}

// ExpenseResponse represents one expense in API responses
type ExpenseResponse struct {
	ID                int32  `json:"id"`
	Date              string `json:"date"`
	Name              string `json:"name"`
	QuantityPurchased int32  `json:"quantity_purchased"`
	UnitPrice         string `json:"unit_price"`
	Amount            string `json:"amount"`
	ReallyNeeded      bool   `json:"really_needed"`
	CategoryID        int32  `json:"category_id"`
	ExpenseType       string `json:"expense_type"`
	UserEmail         string `json:"user_email"`
}

// ExpenseListResponse is the list envelope carrying aggregate totals alongside
// the rows. Totals are formatted with Indian digit grouping.
type ExpenseListResponse struct {
	Status                  string             `json:"status"`
	Data                    []*ExpenseResponse `json:"data"`
	ActualTotalExpenditure  string             `json:"actual_total_expenditure"`
	NonEssentialExpenditure string             `json:"non_essential_expenditure"`
	EssentialExpenditure    string             `json:"essential_expenditure"`
}

func toExpenseResponse(e *domain.Expense) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:                e.ID,
		Date:              e.Date.Format("2006-01-02"),
		Name:              e.Name,
		QuantityPurchased: e.QuantityPurchased,
		UnitPrice:         e.UnitPrice.StringFixed(2),
		Amount:            e.Amount.StringFixed(2),
		ReallyNeeded:      e.ReallyNeeded,
		CategoryID:        e.CategoryID,
		UserEmail:         e.Owner,
	}
	if e.Category != nil {
		resp.ExpenseType = e.Category.Name
	}
	return resp
}

func toExpenseResponses(expenses []*domain.Expense) []*ExpenseResponse {
	out := make([]*ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out
}

func (req *ExpenseRequest) toInput() (service.ExpenseInput, error) {
	var in service.ExpenseInput

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return in, errors.New("date must be in YYYY-MM-DD format")
	}

	unitPrice := decimal.Zero
	if req.UnitPrice != "" {
		unitPrice, err = decimal.NewFromString(req.UnitPrice)
		if err != nil {
			return in, errors.New("invalid unit_price")
		}
	}

	amount := decimal.Zero
	if req.Amount != "" {
		amount, err = decimal.NewFromString(req.Amount)
		if err != nil {
			return in, errors.New("invalid amount")
		}
	}

	in = service.ExpenseInput{
		Date:              date,
		Name:              req.Name,
		QuantityPurchased: req.QuantityPurchased,
		UnitPrice:         unitPrice,
		Amount:            amount,
		ReallyNeeded:      req.ReallyNeeded,
		CategoryID:        req.CategoryID,
	}
	return in, nil
}

// parseMonthYear reads the optional month and year query parameters. Both must
// be supplied together for the filter to apply.
func parseMonthYear(c echo.Context) (month, year *int, err error) {
	if raw := c.QueryParam("month"); raw != "" {
		m, convErr := strconv.Atoi(raw)
		if convErr != nil || !util.ValidMonth(m) {
			return nil, nil, errors.New("month must be between 1 and 12")
		}
		month = &m
	}
	if raw := c.QueryParam("year"); raw != "" {
		y, convErr := strconv.Atoi(raw)
		if convErr != nil || y < 1 {
			return nil, nil, errors.New("year must be a positive number")
		}
		year = &y
	}
	return month, year, nil
}

// CreateExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	in, err := req.toInput()
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	expense, err := h.expenseService.CreateExpense(identity.Email, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			return respondError(c, http.StatusBadRequest, "unknown category")
		case errors.Is(err, domain.ErrNameRequired),
			errors.Is(err, domain.ErrNameTooLong),
			errors.Is(err, domain.ErrNegativeAmount),
			errors.Is(err, domain.ErrNegativeQuantity):
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Str("owner", identity.Email).Msg("Failed to create expense")
		return respondError(c, http.StatusInternalServerError, "failed to create expense")
	}

	log.Info().Int32("expense_id", expense.ID).Str("owner", identity.Email).Msg("Expense created")
	return respondOK(c, http.StatusCreated, toExpenseResponse(expense))
}

// GetExpense handles GET /api/v1/expenses/:id
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid expense id")
	}

	expense, err := h.expenseService.GetExpense(identity.Email, int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return respondError(c, http.StatusNotFound, "expense not found")
		}
		log.Error().Err(err).Int("expense_id", id).Msg("Failed to get expense")
		return respondError(c, http.StatusInternalServerError, "failed to get expense")
	}
	return respondOK(c, http.StatusOK, toExpenseResponse(expense))
}

// ListExpenses handles GET /api/v1/expenses. With both month and year query
// parameters present the list is narrowed to that month; with only year, to
// that year. The response carries formatted expenditure totals for the rows
// returned.
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	month, year, err := parseMonthYear(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	expenses, err := h.expenseService.ListExpenses(identity.Email, month, year)
	if err != nil {
		log.Error().Err(err).Str("owner", identity.Email).Msg("Failed to list expenses")
		return respondError(c, http.StatusInternalServerError, "failed to list expenses")
	}

	totals := h.summaryService.Totals(expenses)
	return c.JSON(http.StatusOK, &ExpenseListResponse{
		Status:                  statusOK,
		Data:                    toExpenseResponses(expenses),
		ActualTotalExpenditure:  util.FormatIndian(totals.Total),
		NonEssentialExpenditure: util.FormatIndian(totals.NonEssential),
		EssentialExpenditure:    util.FormatIndian(totals.Essential),
	})
}

// SearchExpenses handles GET /api/v1/expenses/search/:term
func (h *ExpenseHandler) SearchExpenses(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	term := c.Param("term")
	expenses, err := h.expenseService.SearchExpenses(identity.Email, term)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSearchTermTooShort):
			return respondError(c, http.StatusBadRequest, "search term must be at least 3 characters")
		case errors.Is(err, domain.ErrExpenseNotFound):
			return respondError(c, http.StatusNotFound, "no matching expenses")
		}
		log.Error().Err(err).Str("owner", identity.Email).Msg("Failed to search expenses")
		return respondError(c, http.StatusInternalServerError, "failed to search expenses")
	}
	return respondOK(c, http.StatusOK, toExpenseResponses(expenses))
}

// GetChartData handles GET /api/v1/expenses/chart-data. Expenses are grouped
// by month label and category for the charts view.
func (h *ExpenseHandler) GetChartData(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	expenses, err := h.expenseService.ListExpenses(identity.Email, nil, nil)
	if err != nil {
		log.Error().Err(err).Str("owner", identity.Email).Msg("Failed to load expenses for chart")
		return respondError(c, http.StatusInternalServerError, "failed to load chart data")
	}
	return respondOK(c, http.StatusOK, h.summaryService.GroupForChart(expenses))
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid expense id")
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	in, err := req.toInput()
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	expense, err := h.expenseService.UpdateExpense(identity.Email, int32(id), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrExpenseNotFound):
			return respondError(c, http.StatusNotFound, "expense not found")
		case errors.Is(err, domain.ErrCategoryNotFound):
			return respondError(c, http.StatusBadRequest, "unknown category")
		case errors.Is(err, domain.ErrNameRequired),
			errors.Is(err, domain.ErrNameTooLong),
			errors.Is(err, domain.ErrNegativeAmount),
			errors.Is(err, domain.ErrNegativeQuantity):
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Int("expense_id", id).Msg("Failed to update expense")
		return respondError(c, http.StatusInternalServerError, "failed to update expense")
	}

	log.Info().Int32("expense_id", expense.ID).Str("owner", identity.Email).Msg("Expense updated")
	return respondOK(c, http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid expense id")
	}

	if err := h.expenseService.DeleteExpense(identity.Email, int32(id)); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return respondError(c, http.StatusNotFound, "expense not found")
		}
		log.Error().Err(err).Int("expense_id", id).Msg("Failed to delete expense")
		return respondError(c, http.StatusInternalServerError, "failed to delete expense")
	}

	log.Info().Int("expense_id", id).Str("owner", identity.Email).Msg("Expense deleted")
	return respondOK(c, http.StatusOK, nil)
}

// DeleteRangeResponse reports how many rows a range delete removed
type DeleteRangeResponse struct {
	Deleted int64 `json:"deleted"`
}

// DeleteExpenseRange handles DELETE /api/v1/expenses/range?year=&month=.
// Year is required; with month it narrows to one calendar month, without it
// the whole year is removed. An empty range deletes nothing and reports 404.
func (h *ExpenseHandler) DeleteExpenseRange(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	if c.QueryParam("year") == "" {
		return respondError(c, http.StatusBadRequest, "year is required")
	}
	month, year, err := parseMonthYear(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	deleted, err := h.expenseService.DeleteRange(identity.Email, *year, month)
	if err != nil {
		if errors.Is(err, domain.ErrNoExpensesInRange) {
			return respondError(c, http.StatusNotFound, "no expenses in the given range")
		}
		log.Error().Err(err).Str("owner", identity.Email).Msg("Failed to delete expense range")
		return respondError(c, http.StatusInternalServerError, "failed to delete expenses")
	}

	log.Info().Int64("deleted", deleted).Str("owner", identity.Email).Msg("Expense range deleted")
	return respondOK(c, http.StatusOK, &DeleteRangeResponse{Deleted: deleted})
}
