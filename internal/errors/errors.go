package errors

import (
	"errors"
	"fmt"
)

// Common error types for the console
var (
	// Token store errors
	ErrTokenNotFound  = errors.New("token not found")
	ErrNoRefreshToken = errors.New("no refresh token available")
	ErrInvalidKind    = errors.New("invalid token kind")

	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionClosed    = errors.New("session closed")

	// Input errors
	ErrValidation = errors.New("validation failed")

	// Token inspection
	ErrOpaqueToken = errors.New("token is not a JWT")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers need a single errors import.
func New(text string) error {
	return errors.New(text)
}
