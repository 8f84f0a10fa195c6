package service

import (
	"errors"

	"github.com/Shivanand-hulikatti/edusync/internal/model"
)

var (
	// ErrUnauthenticated is returned when an operation needs a signed-in viewer.
	ErrUnauthenticated = errors.New("sign in required")

	// ErrForbidden is returned when the viewer's role does not allow the operation.
	ErrForbidden = errors.New("not allowed")

	// ErrInvalidCredentials is returned when sign-in fails for any reason.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrLoadEvents is returned alongside the prior event list when a fetch fails.
	ErrLoadEvents = errors.New("failed to load events")
)

// ValidationError reports bad user input. No write is attempted.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Notice renders the error for the client.
func (e *ValidationError) Notice() model.Notice {
	n := model.Failure(e.Message)
	if e.Title != "" {
		n.Title = e.Title
	}
	return n
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
