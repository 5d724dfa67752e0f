/*
Package shared holds the building blocks every subdomain relies on:
aggregate contracts, domain events, the unit of work, money and errors.

Errors follow two rules:
 1. Sentinel errors classify a failure and are matched with errors.Is.
 2. Structured errors carry context plus the call stack captured at
    construction time; the stack is only formatted when logged.

Domain errors carry no transport concepts such as HTTP status codes.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrConflict covers state conflicts that a retry will not fix.
	ErrConflict = errors.New("conflict")

	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateKey is raised when a unique column already holds the value.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrConcurrentModification is raised when an optimistic lock check fails.
	// The unit of work retries the whole operation on it.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// DomainError carries business context and the stack of its origin.
type DomainError struct {
	Err     error
	Entity  string
	Message string
	Field   string

	stack []uintptr
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Err }

// Stack formats the captured frames on demand.
func (e *DomainError) Stack() []string { return FormatStack(e.stack) }

// CaptureStack records the current call stack.
// skip is usually 3: runtime.Callers, CaptureStack and the constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders frames as "file:line function", dropping runtime
// frames and keeping at most ten.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

func NewNotFoundError(entity, id string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found: " + id,
		stack:   CaptureStack(3),
	}
}

func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewConcurrentModificationError reports a lost optimistic lock race.
func NewConcurrentModificationError(entity, id string) error {
	return &DomainError{
		Err:     ErrConcurrentModification,
		Entity:  entity,
		Message: entity + " " + id + " was modified by another transaction, please retry",
		stack:   CaptureStack(3),
	}
}

// ============================================================================
// Validation
// ============================================================================

// Violation names one rejected field and why it was rejected.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every rejected field of a submission together
// with the submission itself, so a form can be re-rendered with what the
// user typed.
type ValidationError struct {
	Entity     string
	Violations []Violation
	Input      any

	stack []uintptr
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return e.Entity + " validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func (e *ValidationError) Stack() []string { return FormatStack(e.stack) }

// WithInput returns a copy of the error that echoes the given input.
func (e *ValidationError) WithInput(input any) *ValidationError {
	cp := *e
	cp.Input = input
	return &cp
}

// NewValidationError builds a single-field validation error.
func NewValidationError(entity, field, reason string) error {
	return &ValidationError{
		Entity:     entity,
		Violations: []Violation{{Field: field, Message: reason}},
		stack:      CaptureStack(3),
	}
}

// Violations accumulates field errors before turning them into one error.
type Violations struct {
	list []Violation
}

func (v *Violations) Add(field, message string) {
	v.list = append(v.list, Violation{Field: field, Message: message})
}

func (v *Violations) Empty() bool { return len(v.list) == 0 }

// Err returns nil when nothing was added.
func (v *Violations) Err(entity string, input any) error {
	if len(v.list) == 0 {
		return nil
	}
	list := make([]Violation, len(v.list))
	copy(list, v.list)
	return &ValidationError{
		Entity:     entity,
		Violations: list,
		Input:      input,
		stack:      CaptureStack(3),
	}
}

// ============================================================================
// Duplicate key
// ============================================================================

// DuplicateKeyError is raised by repositories when a unique constraint
// rejects a write. The surrounding unit of work is rolled back.
type DuplicateKeyError struct {
	Entity string
	Field  string
	Value  string

	stack []uintptr
}

func (e *DuplicateKeyError) Error() string {
	if e.Value == "" {
		return e.Entity + " " + e.Field + " already exists"
	}
	return fmt.Sprintf("%s %s %q already exists", e.Entity, e.Field, e.Value)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

func (e *DuplicateKeyError) Stack() []string { return FormatStack(e.stack) }

func NewDuplicateKeyError(entity, field, value string) error {
	return &DuplicateKeyError{
		Entity: entity,
		Field:  field,
		Value:  value,
		stack:  CaptureStack(3),
	}
}

// InputError attaches the submission that caused Err so callers can be
// shown what they sent. Validation errors carry their own Input instead.
type InputError struct {
	Err   error
	Input any
}

func (e *InputError) Error() string { return e.Err.Error() }

func (e *InputError) Unwrap() error { return e.Err }

// Stacker is implemented by errors that can report their origin stack.
type Stacker interface {
	Stack() []string
}
