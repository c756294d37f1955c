package service

import (
	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
)

// ProfileService handles profile-related business logic
type ProfileService struct {
	userRepo domain.UserRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo domain.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// GetProfile retrieves a user's profile by token subject
func (s *ProfileService) GetProfile(subject string) (*domain.User, error) {
	return s.userRepo.GetBySubject(subject)
}

// UpdateProfile updates a user's name by token subject
func (s *ProfileService) UpdateProfile(subject string, name string) (*domain.User, error) {
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	return s.userRepo.UpdateName(subject, name)
}

// DeleteProfile removes the user and, with them, every budget and
// transaction they own.
func (s *ProfileService) DeleteProfile(userID uuid.UUID) error {
	return s.userRepo.Delete(userID)
}
