package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized  = errors.New("could not validate credentials")
	ErrInvalidToken  = errors.New("invalid token")
	ErrForbidden     = errors.New("access forbidden")
	ErrUsernameTaken = errors.New("username already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrRoleNotFound  = errors.New("role not found")
	ErrInvalidInput  = errors.New("invalid input")
)

// ForbiddenError names the capability the caller was missing.
type ForbiddenError struct {
	Action string
}

func (e *ForbiddenError) Error() string {
	return "you do not have permission to " + e.Action
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// Forbidden builds a ForbiddenError for action, e.g. "view users".
func Forbidden(action string) error {
	return &ForbiddenError{Action: action}
}

func invalid(field string) error {
	return fmt.Errorf("%w: missing %s", ErrInvalidInput, field)
}
