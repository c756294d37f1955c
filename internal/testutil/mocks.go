package testutil

import (
	"time"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users map[string]*domain.User
	ByID  map[uuid.UUID]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetBySubject retrieves a user by token subject
func (m *MockUserRepository) GetBySubject(subject string) (*domain.User, error) {
	if user, ok := m.Users[subject]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// UpdateName updates only the user's name by token subject
func (m *MockUserRepository) UpdateName(subject string, name string) (*domain.User, error) {
	user, ok := m.Users[subject]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Name = &name
	user.UpdatedAt = time.Now()
	return user, nil
}

// CreateOrGetBySubject creates or retrieves a user by token subject
func (m *MockUserRepository) CreateOrGetBySubject(subject, email string, name *string) (*domain.User, error) {
	if user, ok := m.Users[subject]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:        uuid.New(),
		Subject:   subject,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.Users[subject] = user
	m.ByID[user.ID] = user
	return user, nil
}

// Delete removes the user
func (m *MockUserRepository) Delete(id uuid.UUID) error {
	user, ok := m.ByID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(m.Users, user.Subject)
	delete(m.ByID, id)
	return nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Subject] = user
	m.ByID[user.ID] = user
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository.
// It enforces the same (user, month, year) uniqueness and owner-scoped
// conditional writes as the real storage layer.
type MockBudgetRepository struct {
	Budgets map[int32]*domain.Budget
	NextID  int32

	// Transactions, when set, lets Delete cascade like the database does
	Transactions *MockTransactionRepository
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int32]*domain.Budget),
		NextID:  1,
	}
}

// Create inserts a budget, rejecting duplicate (user, month, year) slots
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	for _, existing := range m.Budgets {
		if existing.UserID == budget.UserID && existing.Month == budget.Month && existing.Year == budget.Year {
			return nil, domain.ErrBudgetExists
		}
	}
	created := *budget
	created.ID = m.NextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.NextID++
	m.Budgets[created.ID] = &created
	return &created, nil
}

// GetByID retrieves a budget scoped to its owner
func (m *MockBudgetRepository) GetByID(userID uuid.UUID, id int32) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok || budget.UserID != userID {
		return nil, domain.ErrBudgetNotFound
	}
	return budget, nil
}

// GetAllByUser retrieves all budgets for a user ordered by period
func (m *MockBudgetRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	for _, budget := range m.Budgets {
		if budget.UserID == userID {
			budgets = append(budgets, budget)
		}
	}
	// Order by year, then month
	for i := 0; i < len(budgets); i++ {
		for j := i + 1; j < len(budgets); j++ {
			if budgets[j].Year < budgets[i].Year ||
				(budgets[j].Year == budgets[i].Year && budgets[j].Month < budgets[i].Month) {
				budgets[i], budgets[j] = budgets[j], budgets[i]
			}
		}
	}
	return budgets, nil
}

// Update applies the overrides to an owner-scoped budget
func (m *MockBudgetRepository) Update(userID uuid.UUID, id int32, update domain.BudgetUpdate) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok || budget.UserID != userID {
		return nil, domain.ErrBudgetNotFound
	}
	budget.RecordedIncome = update.RecordedIncome
	if update.PlannedExpenses != nil {
		budget.PlannedExpenses = *update.PlannedExpenses
	}
	if update.RecordedExpenses != nil {
		budget.RecordedExpenses = *update.RecordedExpenses
	}
	budget.UpdatedAt = time.Now()
	return budget, nil
}

// Delete removes an owner-scoped budget and cascades its transactions
func (m *MockBudgetRepository) Delete(userID uuid.UUID, id int32) error {
	budget, ok := m.Budgets[id]
	if !ok || budget.UserID != userID {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	if m.Transactions != nil {
		m.Transactions.RemoveByBudget(id)
	}
	return nil
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	m.Budgets[budget.ID] = budget
	if budget.ID >= m.NextID {
		m.NextID = budget.ID + 1
	}
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions []*domain.Transaction
	NextID       int32
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{NextID: 1}
}

// Create inserts a transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	created := *transaction
	created.ID = m.NextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.NextID++
	m.Transactions = append(m.Transactions, &created)
	return &created, nil
}

// GetByBudget retrieves a budget's transactions in insertion order
func (m *MockTransactionRepository) GetByBudget(budgetID int32) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.BudgetID == budgetID {
			transactions = append(transactions, transaction)
		}
	}
	return transactions, nil
}

// SumsByBudget aggregates a single budget's transactions by type
func (m *MockTransactionRepository) SumsByBudget(budgetID int32) (*domain.TransactionSums, error) {
	sums := &domain.TransactionSums{
		BudgetID:   budgetID,
		IncomeSum:  decimal.Zero,
		ExpenseSum: decimal.Zero,
	}
	for _, transaction := range m.Transactions {
		if transaction.BudgetID != budgetID {
			continue
		}
		switch transaction.Type {
		case domain.TransactionTypeIncome:
			sums.IncomeSum = sums.IncomeSum.Add(transaction.Amount)
		case domain.TransactionTypeExpense:
			sums.ExpenseSum = sums.ExpenseSum.Add(transaction.Amount)
		}
	}
	return sums, nil
}

// SumsByUser aggregates transactions for every budget of a user
func (m *MockTransactionRepository) SumsByUser(userID uuid.UUID) ([]*domain.TransactionSums, error) {
	byBudget := make(map[int32]*domain.TransactionSums)
	var order []int32
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		sums, ok := byBudget[transaction.BudgetID]
		if !ok {
			sums = &domain.TransactionSums{
				BudgetID:   transaction.BudgetID,
				IncomeSum:  decimal.Zero,
				ExpenseSum: decimal.Zero,
			}
			byBudget[transaction.BudgetID] = sums
			order = append(order, transaction.BudgetID)
		}
		switch transaction.Type {
		case domain.TransactionTypeIncome:
			sums.IncomeSum = sums.IncomeSum.Add(transaction.Amount)
		case domain.TransactionTypeExpense:
			sums.ExpenseSum = sums.ExpenseSum.Add(transaction.Amount)
		}
	}
	result := make([]*domain.TransactionSums, len(order))
	for i, budgetID := range order {
		result[i] = byBudget[budgetID]
	}
	return result, nil
}

// RemoveByBudget drops all transactions for a budget (cascade helper)
func (m *MockTransactionRepository) RemoveByBudget(budgetID int32) {
	var kept []*domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.BudgetID != budgetID {
			kept = append(kept, transaction)
		}
	}
	m.Transactions = kept
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	m.Transactions = append(m.Transactions, transaction)
	if transaction.ID >= m.NextID {
		m.NextID = transaction.ID + 1
	}
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories []*domain.Category
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

// GetAll retrieves the full category reference list
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	return m.Categories, nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories = append(m.Categories, category)
}
