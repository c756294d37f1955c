package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/centsible/centsible-backend/internal/middleware"
	"github.com/centsible/centsible-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService         *service.BudgetService
	reconciliationService *service.ReconciliationService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService, reconciliationService *service.ReconciliationService) *BudgetHandler {
	return &BudgetHandler{
		budgetService:         budgetService,
		reconciliationService: reconciliationService,
	}
}

// CreateBudgetRequest represents the budget creation request body. Income
// fields and expense breakdown values may arrive as JSON numbers or strings.
type CreateBudgetRequest struct {
	Month        int            `json:"month"`
	Year         int            `json:"year"`
	Income       any            `json:"income"`
	ActualIncome any            `json:"actualIncome"`
	Expenses     map[string]any `json:"expenses"`
}

// UpdateBudgetRequest represents the budget update request body
type UpdateBudgetRequest struct {
	RecordedIncome   any `json:"recordedIncome"`
	PlannedExpenses  any `json:"plannedExpenses"`
	RecordedExpenses any `json:"recordedExpenses"`
}

// BudgetResponse represents a stored budget in API responses
type BudgetResponse struct {
	ID               int32   `json:"id"`
	UserID           string  `json:"userId"`
	Month            int     `json:"month"`
	Year             int     `json:"year"`
	PlannedIncome    *string `json:"plannedIncome"`
	RecordedIncome   *string `json:"recordedIncome"`
	PlannedExpenses  string  `json:"plannedExpenses"`
	RecordedExpenses string  `json:"recordedExpenses"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ReconciledBudgetResponse represents the reconciled view in API responses
type ReconciledBudgetResponse struct {
	ID                    int32  `json:"id"`
	UserID                string `json:"userId"`
	Month                 int    `json:"month"`
	Year                  int    `json:"year"`
	PlannedIncome         string `json:"plannedIncome"`
	ActualIncome          string `json:"actualIncome"`
	PlannedExpenses       string `json:"plannedExpenses"`
	ActualExpenses        string `json:"actualExpenses"`
	TransactionIncomeSum  string `json:"transactionIncomeSum"`
	TransactionExpenseSum string `json:"transactionExpenseSum"`
	Balance               string `json:"balance"`
}

// CreateBudget handles POST /api/v1/budgets
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	plannedIncome, err := parseOptionalAmount(req.Income)
	if err != nil {
		return NewValidationError(c, "Invalid income", []FieldError{
			{Field: "income", Message: "Must be a valid decimal number"},
		})
	}
	recordedIncome, err := parseOptionalAmount(req.ActualIncome)
	if err != nil {
		return NewValidationError(c, "Invalid actual income", []FieldError{
			{Field: "actualIncome", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.CreateBudget(userID, service.CreateBudgetInput{
		Month:          req.Month,
		Year:           req.Year,
		PlannedIncome:  plannedIncome,
		RecordedIncome: recordedIncome,
		Expenses:       req.Expenses,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) || errors.Is(err, domain.ErrInvalidYear) {
			return NewValidationError(c, err.Error(), nil)
		}
		if errors.Is(err, domain.ErrBudgetExists) {
			return NewConflictError(c, "A budget already exists for this month and year")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int("month", req.Month).Int("year", req.Year).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	log.Info().Str("user_id", userID.String()).Int32("budget_id", budget.ID).Int("month", budget.Month).Int("year", budget.Year).Msg("Budget created")

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets handles GET /api/v1/budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgets, err := h.reconciliationService.GetAllBudgets(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}

	response := make([]ReconciledBudgetResponse, len(budgets))
	for i, budget := range budgets {
		response[i] = toReconciledBudgetResponse(budget)
	}

	return c.JSON(http.StatusOK, response)
}

// GetBudget handles GET /api/v1/budgets/:id
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgetID, err := parseIDParam(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	budget, err := h.reconciliationService.GetBudget(userID, budgetID)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", budgetID).Msg("Failed to get budget")
		return NewInternalError(c, "Failed to get budget")
	}

	return c.JSON(http.StatusOK, toReconciledBudgetResponse(budget))
}

// UpdateBudget handles PUT /api/v1/budgets/:id
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgetID, err := parseIDParam(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	recordedIncome, err := parseOptionalAmount(req.RecordedIncome)
	if err != nil {
		return NewValidationError(c, "Invalid recorded income", []FieldError{
			{Field: "recordedIncome", Message: "Must be a valid decimal number"},
		})
	}
	plannedExpenses, err := parseOptionalAmount(req.PlannedExpenses)
	if err != nil {
		return NewValidationError(c, "Invalid planned expenses", []FieldError{
			{Field: "plannedExpenses", Message: "Must be a valid decimal number"},
		})
	}
	recordedExpenses, err := parseOptionalAmount(req.RecordedExpenses)
	if err != nil {
		return NewValidationError(c, "Invalid recorded expenses", []FieldError{
			{Field: "recordedExpenses", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.UpdateBudget(userID, budgetID, domain.BudgetUpdate{
		RecordedIncome:   recordedIncome,
		PlannedExpenses:  plannedExpenses,
		RecordedExpenses: recordedExpenses,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", budgetID).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}

	log.Info().Str("user_id", userID.String()).Int32("budget_id", budgetID).Msg("Budget updated")

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget handles DELETE /api/v1/budgets/:id
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgetID, err := parseIDParam(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(userID, budgetID); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", budgetID).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	log.Info().Str("user_id", userID.String()).Int32("budget_id", budgetID).Msg("Budget deleted")

	return c.JSON(http.StatusOK, ConfirmationResponse{
		Success: true,
		Message: "Budget deleted",
	})
}

// parseIDParam parses a positive integer path parameter
func parseIDParam(c echo.Context, name string) (int32, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return int32(id), nil
}

// parseOptionalAmount converts a JSON number-or-string value to a decimal.
// Absent values stay nil; malformed values are an error.
func parseOptionalAmount(value any) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil, nil
		}
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return nil, err
		}
		return &amount, nil
	case float64:
		amount := decimal.NewFromFloat(v)
		return &amount, nil
	default:
		return nil, domain.ErrInvalidAmount
	}
}

func toBudgetResponse(b *domain.Budget) BudgetResponse {
	response := BudgetResponse{
		ID:               b.ID,
		UserID:           b.UserID.String(),
		Month:            b.Month,
		Year:             b.Year,
		PlannedExpenses:  b.PlannedExpenses.StringFixed(2),
		RecordedExpenses: b.RecordedExpenses.StringFixed(2),
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        b.UpdatedAt.Format(time.RFC3339),
	}
	if b.PlannedIncome != nil {
		planned := b.PlannedIncome.StringFixed(2)
		response.PlannedIncome = &planned
	}
	if b.RecordedIncome != nil {
		recorded := b.RecordedIncome.StringFixed(2)
		response.RecordedIncome = &recorded
	}
	return response
}

func toReconciledBudgetResponse(b *domain.ReconciledBudget) ReconciledBudgetResponse {
	return ReconciledBudgetResponse{
		ID:                    b.ID,
		UserID:                b.UserID.String(),
		Month:                 b.Month,
		Year:                  b.Year,
		PlannedIncome:         b.PlannedIncome.StringFixed(2),
		ActualIncome:          b.ActualIncome.StringFixed(2),
		PlannedExpenses:       b.PlannedExpenses.StringFixed(2),
		ActualExpenses:        b.ActualExpenses.StringFixed(2),
		TransactionIncomeSum:  b.TransactionIncomeSum.StringFixed(2),
		TransactionExpenseSum: b.TransactionExpenseSum.StringFixed(2),
		Balance:               b.Balance.StringFixed(2),
	}
}
