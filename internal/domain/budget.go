package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a per-user, per-period record of planned and recorded figures.
// At most one budget exists per (user, month, year); month and year are
// immutable once created.
type Budget struct {
	ID               int32            `json:"id"`
	UserID           uuid.UUID        `json:"userId"`
	Month            int              `json:"month"`
	Year             int              `json:"year"`
	PlannedIncome    *decimal.Decimal `json:"plannedIncome"`
	RecordedIncome   *decimal.Decimal `json:"recordedIncome"`
	PlannedExpenses  decimal.Decimal  `json:"plannedExpenses"`
	RecordedExpenses decimal.Decimal  `json:"recordedExpenses"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// ReconciledBudget is the client-facing view of a budget merged with its
// transaction sums. It is computed at read time and never persisted.
type ReconciledBudget struct {
	ID                    int32           `json:"id"`
	UserID                uuid.UUID       `json:"userId"`
	Month                 int             `json:"month"`
	Year                  int             `json:"year"`
	PlannedIncome         decimal.Decimal `json:"plannedIncome"`
	ActualIncome          decimal.Decimal `json:"actualIncome"`
	PlannedExpenses       decimal.Decimal `json:"plannedExpenses"`
	ActualExpenses        decimal.Decimal `json:"actualExpenses"`
	TransactionIncomeSum  decimal.Decimal `json:"transactionIncomeSum"`
	TransactionExpenseSum decimal.Decimal `json:"transactionExpenseSum"`
	Balance               decimal.Decimal `json:"balance"`
}

// BudgetUpdate holds the updatable budget fields. RecordedIncome stays
// nullable; nil expense overrides are written as zero, not left unset.
type BudgetUpdate struct {
	RecordedIncome   *decimal.Decimal
	PlannedExpenses  *decimal.Decimal
	RecordedExpenses *decimal.Decimal
}

type BudgetRepository interface {
	// Create inserts a budget. A (user_id, month, year) collision surfaces
	// as ErrBudgetExists, enforced by a unique constraint so concurrent
	// creates cannot both succeed.
	Create(budget *Budget) (*Budget, error)
	// GetByID returns ErrBudgetNotFound both when the budget is missing and
	// when it belongs to another user.
	GetByID(userID uuid.UUID, id int32) (*Budget, error)
	// GetAllByUser returns the user's budgets ordered by year, then month.
	GetAllByUser(userID uuid.UUID) ([]*Budget, error)
	// Update applies the fields in a single conditional statement scoped to
	// the owner; ErrBudgetNotFound on miss.
	Update(userID uuid.UUID, id int32, update BudgetUpdate) (*Budget, error)
	// Delete removes the budget and its transactions atomically;
	// ErrBudgetNotFound on miss.
	Delete(userID uuid.UUID, id int32) error
}
