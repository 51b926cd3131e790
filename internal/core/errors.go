package core

import (
	"errors"

	"github.com/scrummycpro/the-quarries/internal/storage"
)

var (
	// ErrNotFound is returned when a note or record does not exist.
	ErrNotFound = storage.ErrNotFound

	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = storage.ErrDuplicateUsername

	// ErrInvalidCredentials is returned for empty or wrong login details.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
