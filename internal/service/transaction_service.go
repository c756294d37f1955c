package service

import (
	"strings"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction recording business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	budgetRepo      domain.BudgetRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, budgetRepo domain.BudgetRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
	}
}

// CreateTransactionInput holds the input for recording a transaction. All
// fields are required; Amount is nil when the client omitted it.
type CreateTransactionInput struct {
	BudgetID    int32
	Type        string
	Amount      *decimal.Decimal
	Description string
}

// CreateTransaction records a transaction under a caller-owned budget.
// Validation runs before any write; the target budget must exist and belong
// to the caller, otherwise domain.ErrBudgetNotFound.
func (s *TransactionService) CreateTransaction(userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	if input.BudgetID == 0 {
		return nil, domain.ErrBudgetIDRequired
	}
	if input.Type == "" {
		return nil, domain.ErrTypeRequired
	}
	if input.Amount == nil {
		return nil, domain.ErrAmountRequired
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.ErrDescriptionRequired
	}
	if len(description) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}

	transactionType := domain.TransactionType(input.Type)
	if transactionType != domain.TransactionTypeIncome && transactionType != domain.TransactionTypeExpense {
		return nil, domain.ErrInvalidTransactionType
	}

	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	// Ownership gate: never attach a transaction to a budget the caller
	// does not own.
	if _, err := s.budgetRepo.GetByID(userID, input.BudgetID); err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		UserID:      userID,
		BudgetID:    input.BudgetID,
		Type:        transactionType,
		Amount:      *input.Amount,
		Description: description,
	}

	return s.transactionRepo.Create(transaction)
}

// GetTransactionsByBudget lists a budget's transactions after verifying the
// caller owns the budget.
func (s *TransactionService) GetTransactionsByBudget(userID uuid.UUID, budgetID int32) ([]*domain.Transaction, error) {
	if _, err := s.budgetRepo.GetByID(userID, budgetID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByBudget(budgetID)
}
