package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/civictrack/internal/core/account"
	"github.com/example/civictrack/internal/core/errs"
	"github.com/example/civictrack/internal/ports/primary"
	"github.com/example/civictrack/internal/ports/secondary"
)

// AccountServiceImpl implements the AccountService interface.
type AccountServiceImpl struct {
	userRepo secondary.UserRepository
	cache    secondary.SnapshotCache
}

// NewAccountService creates a new AccountService with injected dependencies.
func NewAccountService(userRepo secondary.UserRepository, cache secondary.SnapshotCache) *AccountServiceImpl {
	return &AccountServiceImpl{userRepo: userRepo, cache: cache}
}

// Register creates a citizen account. Inputs are cleaned of non-breaking
// spaces before validation; the password is stored as a bcrypt hash only.
func (s *AccountServiceImpl) Register(ctx context.Context, req primary.RegisterRequest) (*primary.User, error) {
	name := account.Clean(req.Name)
	phone := account.Clean(req.Phone)
	email := account.Clean(req.Email)
	password := account.Clean(req.Password)

	guard := account.CanRegister(account.RegisterContext{
		Name:     name,
		Phone:    phone,
		Email:    email,
		Password: password,
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%s: %w", guard.Reason, errs.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.userRepo.Create(ctx, &secondary.UserRecord{
		Name:         name,
		Phone:        phone,
		Email:        email,
		Role:         "citizen",
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	created, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created user: %w", err)
	}

	// The citizen count lives under the stats prefix.
	s.cache.InvalidatePrefix(ctx, "stats:")

	return recordToUser(created), nil
}

// Authenticate resolves credentials plus role to a user identity. Unknown
// email, wrong role, and wrong password are indistinguishable to the caller.
func (s *AccountServiceImpl) Authenticate(ctx context.Context, req primary.AuthenticateRequest) (*primary.User, error) {
	email := account.Clean(req.Email)
	password := account.Clean(req.Password)

	record, err := s.userRepo.GetByEmailAndRole(ctx, email, req.Role)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", errs.ErrNotFound)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", errs.ErrNotFound)
	}

	return recordToUser(record), nil
}

// GetUser retrieves a user by ID.
func (s *AccountServiceImpl) GetUser(ctx context.Context, userID int64) (*primary.User, error) {
	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recordToUser(record), nil
}

func recordToUser(r *secondary.UserRecord) *primary.User {
	return &primary.User{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure AccountServiceImpl implements the interface
var _ primary.AccountService = (*AccountServiceImpl)(nil)
