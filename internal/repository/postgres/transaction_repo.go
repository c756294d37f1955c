package postgres

import (
	"context"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, user_id, budget_id, type, amount, description, created_at, updated_at`

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a new transaction with server-assigned timestamps
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO transactions (user_id, budget_id, type, amount, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+transactionColumns,
		uuidToPg(transaction.UserID), transaction.BudgetID,
		string(transaction.Type), amount, transaction.Description,
	)

	return scanTransaction(row)
}

// GetByBudget retrieves a budget's transactions in insertion order
func (r *TransactionRepository) GetByBudget(budgetID int32) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE budget_id = $1
		ORDER BY id ASC`,
		budgetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// SumsByBudget aggregates a single budget's transactions by type. Empty
// result sets yield zero sums, never null.
func (r *TransactionRepository) SumsByBudget(budgetID int32) (*domain.TransactionSums, error) {
	var incomeSum, expenseSum pgtype.Numeric

	err := r.pool.QueryRow(context.Background(), `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE budget_id = $1`,
		budgetID,
	).Scan(&incomeSum, &expenseSum)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionSums{
		BudgetID:   budgetID,
		IncomeSum:  pgNumericToDecimal(incomeSum),
		ExpenseSum: pgNumericToDecimal(expenseSum),
	}, nil
}

// SumsByUser aggregates transactions for every budget of a user
func (r *TransactionRepository) SumsByUser(userID uuid.UUID) ([]*domain.TransactionSums, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT
			budget_id,
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1
		GROUP BY budget_id`,
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sums []*domain.TransactionSums
	for rows.Next() {
		var (
			budgetID   int32
			incomeSum  pgtype.Numeric
			expenseSum pgtype.Numeric
		)
		if err := rows.Scan(&budgetID, &incomeSum, &expenseSum); err != nil {
			return nil, err
		}
		sums = append(sums, &domain.TransactionSums{
			BudgetID:   budgetID,
			IncomeSum:  pgNumericToDecimal(incomeSum),
			ExpenseSum: pgNumericToDecimal(expenseSum),
		})
	}
	return sums, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction     domain.Transaction
		userID          pgtype.UUID
		transactionType string
		amount          pgtype.Numeric
	)

	err := row.Scan(
		&transaction.ID, &userID, &transaction.BudgetID, &transactionType,
		&amount, &transaction.Description,
		&transaction.CreatedAt, &transaction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	transaction.UserID = uuid.UUID(userID.Bytes)
	transaction.Type = domain.TransactionType(transactionType)
	transaction.Amount = pgNumericToDecimal(amount)
	return &transaction, nil
}
