package postgres

import (
	"context"
	"errors"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, subject, email, name, created_at, updated_at`

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`,
		uuidToPg(id),
	)
	return scanUser(row)
}

// GetBySubject retrieves a user by their token subject
func (r *UserRepository) GetBySubject(subject string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+`
		FROM users
		WHERE subject = $1`,
		subject,
	)
	return scanUser(row)
}

// UpdateName updates only the user's name by token subject
func (r *UserRepository) UpdateName(subject string, name string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE users
		SET name = $2, updated_at = now()
		WHERE subject = $1
		RETURNING `+userColumns,
		subject, name,
	)
	return scanUser(row)
}

// CreateOrGetBySubject creates a new user or refreshes the existing row
// (upsert on login)
func (r *UserRepository) CreateOrGetBySubject(subject, email string, name *string) (*domain.User, error) {
	var pgName pgtype.Text
	if name != nil {
		pgName = pgtype.Text{String: *name, Valid: true}
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO users (subject, email, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (subject) DO UPDATE SET email = EXCLUDED.email, updated_at = now()
		RETURNING `+userColumns,
		subject, email, pgName,
	)
	return scanUser(row)
}

// Delete removes the user together with their budgets and transactions in
// one database transaction
func (r *UserRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1`, uuidToPg(id)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM budgets WHERE user_id = $1`, uuidToPg(id)); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, uuidToPg(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return tx.Commit(ctx)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user   domain.User
		userID pgtype.UUID
		name   pgtype.Text
	)

	err := row.Scan(&userID, &user.Subject, &user.Email, &name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	user.ID = uuid.UUID(userID.Bytes)
	if name.Valid {
		user.Name = &name.String
	}
	return &user, nil
}
