// Package errors translates domain failures into application error codes.
// The API layer maps codes to HTTP statuses; nothing below it knows about
// HTTP.
package errors

import (
	"errors"
	"fmt"

	"backoffice/domain/order"
	"backoffice/domain/quote"
	"backoffice/domain/shared"
)

type ErrorCode string

const (
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeTooManyRequest   ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation       ErrorCode = "VALIDATION_ERROR"
	CodeDuplicateKey     ErrorCode = "DUPLICATE_KEY"
	CodeConcurrentModify ErrorCode = "CONCURRENT_MODIFICATION"

	CodeInvalidAmount ErrorCode = "INVALID_AMOUNT"
	CodeNoItems       ErrorCode = "NO_ITEMS"
)

// AppError is what the API layer renders. Details carries structured data
// safe to show the caller, such as field violations.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationDetails is the Details payload of CodeValidation errors: the
// rejected fields and the submission echoed back.
type ValidationDetails struct {
	Violations []shared.Violation `json:"violations"`
	Input      any                `json:"input,omitempty"`
}

// DuplicateDetails is the Details payload of CodeDuplicateKey errors.
type DuplicateDetails struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Input any    `json:"input,omitempty"`
}

// InputDetails echoes the submission of a rejected request.
type InputDetails struct {
	Input any `json:"input"`
}

func inputOf(err error) any {
	var withInput *shared.InputError
	if errors.As(err, &withInput) {
		return withInput.Input
	}
	return nil
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError classifies err by its sentinels and typed errors, most
// specific first. Unknown errors become CodeInternal with the original
// kept in Err for logging.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validation *shared.ValidationError
	if errors.As(err, &validation) {
		return &AppError{
			Code:    CodeValidation,
			Message: validation.Error(),
			Details: ValidationDetails{Violations: validation.Violations, Input: validation.Input},
			Err:     err,
		}
	}

	var duplicate *shared.DuplicateKeyError
	if errors.As(err, &duplicate) {
		return &AppError{
			Code:    CodeDuplicateKey,
			Message: duplicate.Error(),
			Details: DuplicateDetails{Field: duplicate.Field, Value: duplicate.Value, Input: inputOf(err)},
			Err:     err,
		}
	}

	switch {
	case errors.Is(err, order.ErrInvalidAmount):
		appErr := Wrap(err, CodeInvalidAmount, err.Error())
		if input := inputOf(err); input != nil {
			appErr.Details = InputDetails{Input: input}
		}
		return appErr
	case errors.Is(err, quote.ErrNoItems):
		return Wrap(err, CodeNoItems, err.Error())
	case errors.Is(err, shared.ErrConcurrentModification):
		return Wrap(err, CodeConcurrentModify, "the record was changed by someone else, reload and try again")
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeBadRequest, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
