package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UserRecord represents a row of the users table. Password holds whatever the
// caller chose to persist (a hash in this application).
type UserRecord struct {
	ID       int64
	Username string
	Password string
}

// InsertUser creates a user. Returns ErrDuplicateUsername when the name is taken.
func (s *Store) InsertUser(ctx context.Context, username, password string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES (?, ?)`, username, password)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

// GetUserByUsername retrieves a user by name.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*UserRecord, error) {
	var u UserRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &u, nil
}
