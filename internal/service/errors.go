package service

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers switch on these with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrAuth           = errors.New("login failed: invalid email or password")
	ErrDuplicateEmail = errors.New("this email is already registered, please login")
	ErrNotFound       = errors.New("not found")
	ErrNotLoggedIn    = errors.New("not logged in")
)

// ValidationError is malformed input the user can correct.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var (
	ErrNameRequired     = &ValidationError{Field: "name", Message: "name is required"}
	ErrEmailRequired    = &ValidationError{Field: "email", Message: "email is required"}
	ErrPasswordRequired = &ValidationError{Field: "password", Message: "password is required"}
	ErrInvalidEmail     = &ValidationError{Field: "email", Message: "invalid email format"}
	ErrPasswordTooShort = &ValidationError{Field: "password", Message: fmt.Sprintf("password needs to be %d+ characters", MinPasswordLength)}
	ErrTaskTextRequired = &ValidationError{Field: "text", Message: "task description cannot be empty"}
	ErrInvalidTheme     = &ValidationError{Field: "theme", Message: "theme must be light or dark"}
	ErrInvalidFilter    = &ValidationError{Field: "filter", Message: "filter must be all, active or completed"}
)

var (
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)
)
