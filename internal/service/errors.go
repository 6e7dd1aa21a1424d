package service

import (
	"errors"
	"fmt"
	"net/http"

	"recommender/internal/repository"
)

// Error carries the HTTP status a request failure should be reported with
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

// NewError creates a coded error
func NewError(code int, message string) error {
	return &Error{Code: code, Err: errors.New(message)}
}

var (
	ErrEmptyMessage     = NewError(http.StatusBadRequest, "Message vide")
	ErrUserIDRequired   = NewError(http.StatusBadRequest, "User ID required")
	ErrUserNotFound     = NewError(http.StatusNotFound, "User not found")
	ErrEventNotFound    = NewError(http.StatusNotFound, "Événement non trouvé")
	ErrStoreUnavailable = NewError(http.StatusServiceUnavailable, "Service temporairement indisponible")
)

// storeError maps an unreachable store onto ErrStoreUnavailable and passes other failures through.
func storeError(err error) error {
	if errors.Is(err, repository.ErrUnavailable) {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return err
}
