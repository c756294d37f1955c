package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a single income or expense event linked to a budget.
// Transactions are append-only: no update or delete operations exist.
type Transaction struct {
	ID          int32           `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	BudgetID    int32           `json:"budgetId"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TransactionSums holds the per-budget aggregate of transaction amounts,
// split by type. Both sums are zero, never null, when no rows match.
type TransactionSums struct {
	BudgetID   int32
	IncomeSum  decimal.Decimal
	ExpenseSum decimal.Decimal
}

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	// GetByBudget returns the budget's transactions in insertion order.
	GetByBudget(budgetID int32) ([]*Transaction, error)
	// SumsByBudget aggregates one budget's transactions, computed fresh on
	// every call.
	SumsByBudget(budgetID int32) (*TransactionSums, error)
	// SumsByUser aggregates transactions for every budget of the user,
	// grouped by budget.
	SumsByUser(userID uuid.UUID) ([]*TransactionSums, error)
}
