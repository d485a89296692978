package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"carvault/internal/common"
	"carvault/internal/server/auth"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service implements account registration and credential verification on
// top of the user repository.
type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	tokens *auth.TokenService
}

func NewService(repo Repository, hasher auth.PasswordHasher, tokens *auth.TokenService) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

func validateRegistration(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: all fields are required", common.ErrorValidation)
	}

	if len(username) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters long", common.ErrorValidation)
	}

	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters long", common.ErrorValidation)
	}

	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", common.ErrorValidation)
	}

	return nil
}

// Register creates an account and returns it together with a fresh identity
// token. Duplicate email or username fails with common.ErrorConflict.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, string, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return nil, "", err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.repo.Create(ctx, &User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials exclusively through the password hasher, keyed
// by email lookup. Unknown email and wrong password collapse into the same
// unauthorized signal.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetProfile returns the account behind a verified identity.
func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}
