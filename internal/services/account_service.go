package services

import (
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// AccountService handles shopper profiles. There are no credentials:
// identity is whatever the session says it is.
type AccountService struct {
	users repositories.UserRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(users repositories.UserRepository) *AccountService {
	return &AccountService{
		users: users,
	}
}

// UpsertProfile creates or updates a user keyed by normalized email.
// An existing user gets their name refreshed; otherwise a new user is
// created.
func (s *AccountService) UpsertProfile(name, email string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := s.users.GetByEmail(email); err == nil && existing != nil {
		existing.Name = name
		if err := s.users.Save(existing); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
		return existing, nil
	}

	user := &models.User{
		Name:  name,
		Email: email,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by their ID.
func (s *AccountService) GetByID(id string) (*models.User, error) {
	return s.users.GetByID(id)
}
