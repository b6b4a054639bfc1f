// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"

	"motors/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

const bcryptCost = 10

// AccountService handles registration, credential checks, and profile
// maintenance. It is the only place a stored password hash is read.
type AccountService struct {
	accounts domain.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accounts domain.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// Authenticate verifies an email/password pair and returns the account's
// public identity. Unknown email and wrong password collapse to the same
// ErrInvalidCredentials; a stored hash that bcrypt cannot parse is an
// infrastructure fault, not a mismatch.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.Identity, error) {
	acct, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("account lookup: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("stored hash unusable for account %d: %w", acct.ID, err)
	}

	return acct.Public(), nil
}

// Register validates email uniqueness, hashes the password, and creates
// the account with the default role. A hashing failure aborts the
// registration; nothing is written.
func (s *AccountService) Register(ctx context.Context, firstName, lastName, email, password string) (domain.Identity, error) {
	taken, err := s.accounts.EmailExists(ctx, email, 0)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("email check: %w", err)
	}
	if taken {
		return domain.Identity{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	acct, err := s.accounts.Create(ctx, firstName, lastName, email, string(hash))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("create account: %w", err)
	}
	return acct.Public(), nil
}

// IdentityByID reloads an account's public identity from storage. Used
// after profile mutations to keep the session cookie in sync.
func (s *AccountService) IdentityByID(ctx context.Context, id int64) (domain.Identity, error) {
	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return domain.Identity{}, err
	}
	return acct.Public(), nil
}

// UpdateProfile changes name and email, enforcing email uniqueness
// against every account except the one being updated.
func (s *AccountService) UpdateProfile(ctx context.Context, id int64, firstName, lastName, email string) error {
	taken, err := s.accounts.EmailExists(ctx, email, id)
	if err != nil {
		return fmt.Errorf("email check: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	return s.accounts.UpdateProfile(ctx, id, firstName, lastName, email)
}

// UpdatePassword re-hashes synchronously and stores the new hash. A
// hashing failure aborts the request; the stored hash is left untouched.
func (s *AccountService) UpdatePassword(ctx context.Context, id int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.accounts.UpdatePassword(ctx, id, string(hash))
}

// Recipients lists every account as a message recipient candidate.
func (s *AccountService) Recipients(ctx context.Context) ([]domain.Identity, error) {
	accts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]domain.Identity, 0, len(accts))
	for i := range accts {
		ids = append(ids, accts[i].Public())
	}
	return ids, nil
}
