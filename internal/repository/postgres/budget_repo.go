package postgres

import (
	"context"
	"errors"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

const budgetColumns = `id, user_id, month, year, planned_income, recorded_income, planned_expenses, recorded_expenses, created_at, updated_at`

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Create inserts a new budget. The (user_id, month, year) unique constraint
// is the arbiter for concurrent creates: the loser surfaces as
// domain.ErrBudgetExists without a partial write.
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	plannedIncome, err := decimalPtrToPgNumeric(budget.PlannedIncome)
	if err != nil {
		return nil, err
	}
	recordedIncome, err := decimalPtrToPgNumeric(budget.RecordedIncome)
	if err != nil {
		return nil, err
	}
	plannedExpenses, err := decimalToPgNumeric(budget.PlannedExpenses)
	if err != nil {
		return nil, err
	}
	recordedExpenses, err := decimalToPgNumeric(budget.RecordedExpenses)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (user_id, month, year, planned_income, recorded_income, planned_expenses, recorded_expenses)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+budgetColumns,
		uuidToPg(budget.UserID), budget.Month, budget.Year,
		plannedIncome, recordedIncome, plannedExpenses, recordedExpenses,
	)

	created, err := scanBudget(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrBudgetExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a budget scoped to its owner. A miss and an ownership
// mismatch are indistinguishable to the caller.
func (r *BudgetRepository) GetByID(userID uuid.UUID, id int32) (*domain.Budget, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE id = $1 AND user_id = $2`,
		id, uuidToPg(userID),
	)

	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// GetAllByUser retrieves all budgets for a user ordered by period
func (r *BudgetRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE user_id = $1
		ORDER BY year ASC, month ASC`,
		uuidToPg(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// Update applies the overrides in one conditional statement so the ownership
// check and the write cannot race.
func (r *BudgetRepository) Update(userID uuid.UUID, id int32, update domain.BudgetUpdate) (*domain.Budget, error) {
	recordedIncome, err := decimalPtrToPgNumeric(update.RecordedIncome)
	if err != nil {
		return nil, err
	}
	plannedExpenses, err := decimalPtrToPgNumeric(update.PlannedExpenses)
	if err != nil {
		return nil, err
	}
	recordedExpenses, err := decimalPtrToPgNumeric(update.RecordedExpenses)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE budgets
		SET recorded_income = $3, planned_expenses = $4, recorded_expenses = $5, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+budgetColumns,
		id, uuidToPg(userID), recordedIncome, plannedExpenses, recordedExpenses,
	)

	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// Delete removes a budget and its transactions in one database transaction
func (r *BudgetRepository) Delete(userID uuid.UUID, id int32) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM transactions
		WHERE budget_id = $1 AND user_id = $2`,
		id, uuidToPg(userID),
	); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM budgets
		WHERE id = $1 AND user_id = $2`,
		id, uuidToPg(userID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}

	return tx.Commit(ctx)
}

// Helper functions

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget           domain.Budget
		userID           pgtype.UUID
		plannedIncome    pgtype.Numeric
		recordedIncome   pgtype.Numeric
		plannedExpenses  pgtype.Numeric
		recordedExpenses pgtype.Numeric
	)

	err := row.Scan(
		&budget.ID, &userID, &budget.Month, &budget.Year,
		&plannedIncome, &recordedIncome, &plannedExpenses, &recordedExpenses,
		&budget.CreatedAt, &budget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	budget.UserID = uuid.UUID(userID.Bytes)
	budget.PlannedIncome = pgNumericToDecimalPtr(plannedIncome)
	budget.RecordedIncome = pgNumericToDecimalPtr(recordedIncome)
	budget.PlannedExpenses = pgNumericToDecimal(plannedExpenses)
	budget.RecordedExpenses = pgNumericToDecimal(recordedExpenses)
	return &budget, nil
}

func uuidToPg(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func decimalPtrToPgNumeric(d *decimal.Decimal) (pgtype.Numeric, error) {
	if d == nil {
		return pgtype.Numeric{}, nil
	}
	return decimalToPgNumeric(*d)
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func pgNumericToDecimalPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := pgNumericToDecimal(n)
	return &d
}
