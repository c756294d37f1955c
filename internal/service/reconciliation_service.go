package service

import (
	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationService merges stored budget fields with aggregated
// transaction sums into the client-facing view. List and detail reads go
// through the same combination rule, so the two can never disagree.
type ReconciliationService struct {
	budgetRepo      domain.BudgetRepository
	transactionRepo domain.TransactionRepository
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(budgetRepo domain.BudgetRepository, transactionRepo domain.TransactionRepository) *ReconciliationService {
	return &ReconciliationService{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
	}
}

// GetBudget returns the reconciled view of a single budget. Missing and
// foreign-owned budgets are both reported as domain.ErrBudgetNotFound.
func (s *ReconciliationService) GetBudget(userID uuid.UUID, budgetID int32) (*domain.ReconciledBudget, error) {
	budget, err := s.budgetRepo.GetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	sums, err := s.transactionRepo.SumsByBudget(budgetID)
	if err != nil {
		return nil, err
	}

	return reconcile(budget, sums), nil
}

// GetAllBudgets returns the reconciled views of every budget owned by the
// user, ordered by year then month.
func (s *ReconciliationService) GetAllBudgets(userID uuid.UUID) ([]*domain.ReconciledBudget, error) {
	budgets, err := s.budgetRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}

	sums, err := s.transactionRepo.SumsByUser(userID)
	if err != nil {
		return nil, err
	}

	sumsByBudget := make(map[int32]*domain.TransactionSums, len(sums))
	for _, sum := range sums {
		sumsByBudget[sum.BudgetID] = sum
	}

	result := make([]*domain.ReconciledBudget, len(budgets))
	for i, budget := range budgets {
		result[i] = reconcile(budget, sumsByBudget[budget.ID])
	}
	return result, nil
}

// reconcile applies the canonical combination rule:
//
//	actual_income   = recorded_income + income transaction sum
//	actual_expenses = planned_expenses + expense transaction sum
//	balance         = actual_income - actual_expenses
//
// Absent inputs count as zero; recorded_expenses is stored but never folded
// into the actuals. Every read path in the API funnels through here.
func reconcile(budget *domain.Budget, sums *domain.TransactionSums) *domain.ReconciledBudget {
	incomeSum := decimal.Zero
	expenseSum := decimal.Zero
	if sums != nil {
		incomeSum = sums.IncomeSum
		expenseSum = sums.ExpenseSum
	}

	plannedIncome := decimal.Zero
	if budget.PlannedIncome != nil {
		plannedIncome = *budget.PlannedIncome
	}
	recordedIncome := decimal.Zero
	if budget.RecordedIncome != nil {
		recordedIncome = *budget.RecordedIncome
	}

	actualIncome := recordedIncome.Add(incomeSum)
	actualExpenses := budget.PlannedExpenses.Add(expenseSum)

	return &domain.ReconciledBudget{
		ID:                    budget.ID,
		UserID:                budget.UserID,
		Month:                 budget.Month,
		Year:                  budget.Year,
		PlannedIncome:         plannedIncome,
		ActualIncome:          actualIncome,
		PlannedExpenses:       budget.PlannedExpenses,
		ActualExpenses:        actualExpenses,
		TransactionIncomeSum:  incomeSum,
		TransactionExpenseSum: expenseSum,
		Balance:               actualIncome.Sub(actualExpenses),
	}
}
