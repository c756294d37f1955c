package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the system
type User struct {
	ID        uuid.UUID `json:"id"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(id uuid.UUID) (*User, error)
	GetBySubject(subject string) (*User, error)
	UpdateName(subject string, name string) (*User, error)
	CreateOrGetBySubject(subject, email string, name *string) (*User, error)
	// Delete removes the user and everything they own (budgets and
	// transactions) in a single database transaction.
	Delete(id uuid.UUID) error
}
