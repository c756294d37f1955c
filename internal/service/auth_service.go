package service

import (
	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// AuthenticateUser upserts the user row after token validation. The identity
// provider has already verified the caller; this only mirrors the claims.
func (s *AuthService) AuthenticateUser(subject, email string, name *string) (*domain.User, error) {
	user, err := s.userRepo.CreateOrGetBySubject(subject, email, name)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to create or get user")
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// GetUserBySubject retrieves a user by their token subject
func (s *AuthService) GetUserBySubject(subject string) (*domain.User, error) {
	return s.userRepo.GetBySubject(subject)
}
