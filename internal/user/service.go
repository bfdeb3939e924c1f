package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Typed errors surfaced to the HTTP boundary.
var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation failed")
)

// Repository is the storage surface the account service depends on.
type Repository interface {
	Create(ctx context.Context, in RegisterInput, passwordHash string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// Service implements account registration and credential verification.
type Service struct {
	repo       Repository
	bcryptCost int
}

// NewService creates an account service. cost tunes the bcrypt work factor;
// zero selects bcrypt.DefaultCost.
func NewService(repo Repository, cost int) *Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: cost}
}

// Register creates a new account with an irreversibly hashed password.
// A duplicate email yields ErrDuplicateEmail regardless of other fields;
// the pre-check here is advisory and the storage unique constraint is the
// final arbiter under concurrency.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	// Duplicate check runs before field validation so that an already-taken
	// email always reports ErrDuplicateEmail, whatever the other fields hold.
	if in.Email != "" {
		if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
			return nil, ErrDuplicateEmail
		} else if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("checking existing email: %w", err)
		}
	}

	if err := validateRegister(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u, err := s.repo.Create(ctx, in, string(hash))
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials by exact email match and bcrypt comparison.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID retrieves an account by id.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func validateRegister(in RegisterInput) error {
	switch {
	case strings.TrimSpace(in.FullName) == "":
		return fmt.Errorf("%w: fullName is required", ErrValidation)
	case strings.TrimSpace(in.Email) == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case in.Password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return nil
}
