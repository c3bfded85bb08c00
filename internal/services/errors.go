package services

import (
	"errors"
	"fmt"

	"github.com/fxledger/backend/internal/currency"
	"github.com/fxledger/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Kind classifies a service error. The HTTP layer maps each kind to a status.
type Kind string

const (
	KindInvalidInput      Kind = "InvalidInput"
	KindInsufficientFunds Kind = "InsufficientFunds"
	KindNotFound          Kind = "NotFound"
	KindForbidden         Kind = "Forbidden"
	KindUnauthorized      Kind = "Unauthorized"
	KindConflict          Kind = "Conflict"
	KindTooManyRequests   Kind = "TooManyRequests"
	KindUnexpected        Kind = "Unexpected"
)

// Error is the error type returned by every service operation.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindUnexpected {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so callers can write
// errors.Is(err, services.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrTooManyRequests   = &Error{Kind: KindTooManyRequests}
	ErrUnexpected        = &Error{Kind: KindUnexpected}
)

func invalidInput(message string, details map[string]string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message, Details: details}
}

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "You are not allowed to perform this action"}
}

func unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "An Internal Error Occurred", Err: err}
}

// validationFailed turns validator errors into an InvalidInput error that
// lists the offending fields.
func validationFailed(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalidInput(err.Error(), nil)
	}
	return invalidInput("Validation failed", validationDetails(verrs))
}

// KindOf returns the kind of err, or KindUnexpected when err was not produced
// by this package.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnexpected
}

// classify converts errors raised inside a unit of work into service errors.
func classify(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}

	var insufficient *models.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		return &Error{Kind: KindInsufficientFunds, Message: insufficient.Error(), Err: err}
	case errors.Is(err, ErrConcurrentModification):
		return conflict("The account was modified by another operation, please retry", err)
	case errors.Is(err, currency.ErrUnsupportedCurrency):
		return invalidInput(err.Error(), map[string]string{"Currency": "unsupported"})
	case errors.Is(err, currency.ErrBelowPrecision):
		return invalidInput(err.Error(), map[string]string{"Amount": "too small to convert"})
	case isUniqueViolation(err):
		return conflict("Resource already exists", err)
	default:
		return unexpected(err)
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
