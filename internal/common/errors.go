// Package common defines shared constants and sentinel errors used across
// interviewkeeper layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrorStorageUnavailable reports an I/O failure of the underlying store.
	ErrorStorageUnavailable = errors.New("storage unavailable")
	// ErrorPersistence is returned when a write could not be applied.
	// It also matches ErrorStorageUnavailable.
	ErrorPersistence = fmt.Errorf("persistence error: %w", ErrorStorageUnavailable)

	// Validation errors.
	ErrorInvalidArgument = errors.New("invalid argument")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
