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

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when the cause should not be exposed to callers.
var ErrInternal = errors.New("internal error")

// Ledger posting taxonomy.
var (
	// ErrInvalidEntry is a single entry violating non-negativity, exclusivity or non-emptiness.
	ErrInvalidEntry = fmt.Errorf("%w: invalid entry", ErrValidation)

	// ErrUnbalancedTransaction means total debits differ from total credits.
	ErrUnbalancedTransaction = fmt.Errorf("%w: unbalanced transaction", ErrValidation)

	// ErrPersistenceFailed means the store rejected a write or could not be reached.
	ErrPersistenceFailed = errors.New("persistence failed")

	// ErrPartialWriteFailed means a transaction header was written but its entries were not.
	ErrPartialWriteFailed = fmt.Errorf("%w: partial write", ErrPersistenceFailed)
)

// AppError carries an HTTP-ish status code alongside a message and the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds a 404 AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// Persistence wraps a store error so that it matches ErrPersistenceFailed while
// keeping the underlying cause reachable through errors.Is / errors.As.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPersistenceFailed) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistenceFailed, op, err)
}
