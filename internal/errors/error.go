package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Error is an immutable, first-class failure value carried by a failed
// Result. It is a tagged union: Kind selects which of the payload fields are
// meaningful. Error does not implement the error interface; use ToFault to
// turn it into one.
type Error struct {
	kind       Kind
	code       string
	message    string
	traceID    string
	occurredAt time.Time

	// Business payload.
	solution     string
	severity     Severity
	businessType BusinessType

	// Validation payload.
	fields []FieldErrors

	// Unexpected and canceled payload.
	cause error
}

// FieldErrors collects the messages reported for a single source (a field
// or an object) of an invalid request.
type FieldErrors struct {
	Source   string
	Messages []string
}

func newError(kind Kind, code, message string) *Error {
	return &Error{
		kind:       kind,
		code:       code,
		message:    message,
		occurredAt: time.Now().UTC(),
	}
}

// New creates a generic error with the given code and developer-facing message.
func New(code, message string) *Error {
	return newError(KindGeneric, code, message)
}

// NotFound creates a not-found error. An empty message falls back to a
// default one.
func NotFound(message string) *Error {
	return NotFoundCode(CodeNotFound, message)
}

// NotFoundCode creates a not-found error with a custom code.
func NotFoundCode(code, message string) *Error {
	if message == "" {
		message = "The requested resource was not found"
	}
	return newError(KindNotFound, code, message)
}

// Forbidden creates the access-denied error.
func Forbidden() *Error {
	return New(CodeForbidden, "Forbidden access")
}

// Unauthorized is treated as Forbidden.
func Unauthorized() *Error {
	return Forbidden()
}

// BusinessOption customizes a business error.
type BusinessOption func(*Error)

// WithSolution attaches a remediation hint shown to the user.
func WithSolution(solution string) BusinessOption {
	return func(e *Error) { e.solution = solution }
}

// WithSeverity overrides the default SeverityError.
func WithSeverity(s Severity) BusinessOption {
	return func(e *Error) { e.severity = s }
}

// WithBusinessType overrides the default BusinessBadRequest.
func WithBusinessType(t BusinessType) BusinessOption {
	return func(e *Error) { e.businessType = t }
}

// Business creates a user-facing business error.
func Business(code, message string, opts ...BusinessOption) *Error {
	e := newError(KindBusiness, code, message)
	e.severity = SeverityError
	e.businessType = BusinessBadRequest
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BadRequest creates a business error for invalid client data.
func BadRequest(code, message string) *Error {
	return Business(code, message, WithBusinessType(BusinessBadRequest))
}

// Conflict creates a business error for an action that violates the current
// state of a resource.
func Conflict(code, message string) *Error {
	return Business(code, message, WithBusinessType(BusinessConflict))
}

// UnexpectedBusiness creates a business error for an unanticipated business
// rule failure.
func UnexpectedBusiness(code, message string) *Error {
	return Business(code, message, WithBusinessType(BusinessUnexpected))
}

// Validation creates a validation error from grouped findings. The slice is
// copied, so later changes by the caller are not observed.
func Validation(fields []FieldErrors) *Error {
	e := newError(KindValidation, CodeValidation, "Validation error")
	e.fields = make([]FieldErrors, len(fields))
	for i, f := range fields {
		e.fields[i] = FieldErrors{Source: f.Source, Messages: append([]string(nil), f.Messages...)}
	}
	return e
}

// Unexpected wraps an arbitrary fault. The message is generic; the cause is
// kept for logging only.
func Unexpected(cause error) *Error {
	e := newError(KindUnexpected, CodeUnexpected, "An unexpected error occurred")
	e.cause = cause
	return e
}

// Canceled wraps a cancellation signal. The message is public and fixed;
// the cause is kept for logging only.
func Canceled(cause error) *Error {
	msg := "The operation was canceled"
	if errors.Is(cause, context.DeadlineExceeded) {
		msg = "The operation timed out"
	}
	e := newError(KindCanceled, CodeTaskCanceled, msg)
	e.cause = cause
	return e
}

func (e *Error) Kind() Kind                 { return e.kind }
func (e *Error) Code() string               { return e.code }
func (e *Error) Message() string            { return e.message }
func (e *Error) TraceID() string            { return e.traceID }
func (e *Error) OccurredAt() time.Time      { return e.occurredAt }
func (e *Error) Solution() string           { return e.solution }
func (e *Error) Severity() Severity         { return e.severity }
func (e *Error) BusinessType() BusinessType { return e.businessType }
func (e *Error) Cause() error               { return e.cause }

// Fields returns a copy of the validation findings.
func (e *Error) Fields() []FieldErrors {
	out := make([]FieldErrors, len(e.fields))
	for i, f := range e.fields {
		out[i] = FieldErrors{Source: f.Source, Messages: append([]string(nil), f.Messages...)}
	}
	return out
}

// WithTraceID returns a copy of e carrying the given trace identifier.
func (e *Error) WithTraceID(traceID string) *Error {
	cp := *e
	cp.traceID = traceID
	return &cp
}

func (e *Error) String() string {
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Log writes e to logger. Each variant decides whether and at which level it
// is logged: business and validation errors are expected outcomes aimed at
// the user and are never logged. A nil logger means slog.Default.
func (e *Error) Log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	switch e.kind {
	case KindBusiness, KindValidation:
		return
	case KindCanceled:
		logger.Warn("Request canceled", "errorCode", e.code, "errorMessage", e.message, "error", e.cause)
	case KindUnexpected:
		logger.Error("Unexpected error", "errorCode", e.code, "errorMessage", e.message, "error", e.cause)
	default:
		logger.Error("Request failed", "errorCode", e.code, "errorMessage", e.message)
	}
}
