package core

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// AccountService registers and authenticates users. Passwords are stored as
// bcrypt hashes.
type AccountService struct {
	store  UserStorage
	logger *slog.Logger
	cost   int
}

// NewAccountService creates an account service.
func NewAccountService(store UserStorage, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{store: store, logger: logger, cost: bcrypt.DefaultCost}
}

// Register creates a user. Returns ErrDuplicateUsername if the name is taken,
// leaving the existing account untouched.
func (s *AccountService) Register(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	id, err := s.store.InsertUser(ctx, username, string(hash))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "username", username)
	return &User{ID: id, Username: username}, nil
}

// Authenticate checks a username/password pair.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	rec, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &User{ID: rec.ID, Username: rec.Username}, nil
}
