package service

import (
	"encoding/json"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget lifecycle business logic
type BudgetService struct {
	budgetRepo domain.BudgetRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo}
}

// CreateBudgetInput holds the input for creating a budget. Expenses is the
// client-supplied breakdown; JSON values may arrive as numbers or strings.
type CreateBudgetInput struct {
	Month          int
	Year           int
	PlannedIncome  *decimal.Decimal
	RecordedIncome *decimal.Decimal
	Expenses       map[string]any
}

// CreateBudget creates a budget for the caller's (month, year) slot. The
// derived planned_expenses is the breakdown sum rounded to 2 decimal places;
// recorded_expenses starts at zero. A second budget for the same period
// fails with domain.ErrBudgetExists and writes nothing.
func (s *BudgetService) CreateBudget(userID uuid.UUID, input CreateBudgetInput) (*domain.Budget, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, domain.ErrInvalidMonth
	}
	if input.Year < domain.MinYear || input.Year > domain.MaxYear {
		return nil, domain.ErrInvalidYear
	}

	budget := &domain.Budget{
		UserID:           userID,
		Month:            input.Month,
		Year:             input.Year,
		PlannedIncome:    input.PlannedIncome,
		RecordedIncome:   input.RecordedIncome,
		PlannedExpenses:  SumExpenseBreakdown(input.Expenses),
		RecordedExpenses: decimal.Zero,
	}

	return s.budgetRepo.Create(budget)
}

// UpdateBudget applies field overrides to a caller-owned budget. Month and
// year are immutable. Omitted expense overrides are written as zero rather
// than left unset; recorded income stays nullable.
func (s *BudgetService) UpdateBudget(userID uuid.UUID, budgetID int32, update domain.BudgetUpdate) (*domain.Budget, error) {
	if update.PlannedExpenses == nil {
		zero := decimal.Zero
		update.PlannedExpenses = &zero
	}
	if update.RecordedExpenses == nil {
		zero := decimal.Zero
		update.RecordedExpenses = &zero
	}
	return s.budgetRepo.Update(userID, budgetID, update)
}

// DeleteBudget removes a caller-owned budget together with its transactions.
// A miss, whether the budget is absent or owned by someone else, is reported
// as domain.ErrBudgetNotFound.
func (s *BudgetService) DeleteBudget(userID uuid.UUID, budgetID int32) error {
	return s.budgetRepo.Delete(userID, budgetID)
}

// SumExpenseBreakdown totals a client-supplied expense breakdown. Values may
// be JSON numbers or strings; anything non-numeric or empty counts as zero.
// The result is rounded to 2 decimal places.
func SumExpenseBreakdown(expenses map[string]any) decimal.Decimal {
	total := decimal.Zero
	for _, value := range expenses {
		total = total.Add(coerceAmount(value))
	}
	return total.Round(2)
}

func coerceAmount(value any) decimal.Decimal {
	switch v := value.(type) {
	case string:
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return amount
	case float64:
		return decimal.NewFromFloat(v)
	case json.Number:
		amount, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero
		}
		return amount
	default:
		return decimal.Zero
	}
}
