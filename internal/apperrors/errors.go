package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure inside the service.
var ErrInternal = errors.New("internal error")

// Money movement errors.
var (
	// ErrInvalidAmount is returned for non-positive amounts or amounts with more than two decimals.
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)

	// ErrSameAccount is returned when sender and recipient resolve to the same account.
	ErrSameAccount = fmt.Errorf("%w: sender and recipient are the same account", ErrValidation)

	// ErrInsufficientFunds is returned when a debit would take a balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrRecipientNotFound is returned when no account matches the recipient identifier.
	ErrRecipientNotFound = fmt.Errorf("%w: recipient not found", ErrNotFound)

	// ErrConcurrencyConflict is a transient failure (lock timeout, deadlock, serialization failure).
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrChainIntegrityViolation marks a ledger whose hash chain does not verify.
	ErrChainIntegrityViolation = errors.New("ledger chain integrity violation")

	// ErrStorageFailure wraps errors coming from the underlying store.
	ErrStorageFailure = errors.New("storage failure")
)

// AppError carries an HTTP-ish status code and a message next to the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
