package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/centsible/centsible-backend/internal/middleware"
	"github.com/centsible/centsible-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the transaction creation request body.
// All four fields are required.
type CreateTransactionRequest struct {
	BudgetID    int32  `json:"budgetId"`
	Type        string `json:"type"`
	Amount      any    `json:"amount"`
	Description string `json:"description"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          int32  `json:"id"`
	UserID      string `json:"userId"`
	BudgetID    int32  `json:"budgetId"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := parseOptionalAmount(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []FieldError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	transaction, err := h.transactionService.CreateTransaction(userID, service.CreateTransactionInput{
		BudgetID:    req.BudgetID,
		Type:        req.Type,
		Amount:      amount,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBudgetIDRequired),
			errors.Is(err, domain.ErrTypeRequired),
			errors.Is(err, domain.ErrAmountRequired),
			errors.Is(err, domain.ErrDescriptionRequired),
			errors.Is(err, domain.ErrInvalidTransactionType),
			errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrDescriptionTooLong):
			return NewValidationError(c, err.Error(), nil)
		case errors.Is(err, domain.ErrBudgetNotFound):
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", req.BudgetID).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Str("user_id", userID.String()).Int32("transaction_id", transaction.ID).Int32("budget_id", transaction.BudgetID).Str("type", string(transaction.Type)).Msg("Transaction created")

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactionsByBudget handles GET /api/v1/transactions/:budgetId
func (h *TransactionHandler) GetTransactionsByBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgetID, err := parseIDParam(c, "budgetId")
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	transactions, err := h.transactionService.GetTransactionsByBudget(userID, budgetID)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("budget_id", budgetID).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	response := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		response[i] = toTransactionResponse(transaction)
	}

	return c.JSON(http.StatusOK, response)
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID.String(),
		BudgetID:    t.BudgetID,
		Type:        string(t.Type),
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}
