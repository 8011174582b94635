package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Test with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

// Error is a classified failure carrying a caller-safe message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound reports a missing resource, e.g. NotFound("Hostel", 7).
func NotFound(resource string, id int64) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found with id: %d", resource, id)}
}

// UserNotFound reports an id the identity service does not know.
func UserNotFound(userID int64) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("User not found with id: %d", userID)}
}

// Conflict reports a uniqueness violation.
func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput reports a rejected request value.
func InvalidInput(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}
