package errors

import "errors"

// This package defines the closed set of application errors that handlers
// return inside a Result, plus the sentinel errors every fault matches via
// errors.Is. Services never produce HTTP status codes; the API layer projects
// an Error onto the wire based on its Kind.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// field validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrBusiness signifies that a business rule rejected the request.
	ErrBusiness = errors.New("business rule violated")

	// ErrConflict signifies that an operation could not be completed because
	// it conflicts with the current state of a resource (e.g., completing a
	// todo that is already completed).
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrForbidden signifies that the caller is not allowed to perform the
	// requested action.
	// This is typically mapped to a 403 Forbidden HTTP status.
	ErrForbidden = errors.New("permission denied")

	// ErrUnexpected signifies an unexpected error on the server. The message
	// sent to clients is generic so implementation details never leak.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrUnexpected = errors.New("internal server error")

	// ErrCanceled signifies that the request was canceled or timed out
	// before it could complete.
	ErrCanceled = errors.New("request canceled")
)

// Codes used throughout the system. They are kebab-case, stable and never
// localized.
const (
	CodeNotFound     = "not-found"
	CodeForbidden    = "forbidden"
	CodeValidation   = "validation"
	CodeUnexpected   = "unexpected"
	CodeTaskCanceled = "task-canceled"
)

// Kind discriminates the variants of Error.
type Kind int

const (
	KindGeneric Kind = iota
	KindNotFound
	KindBusiness
	KindValidation
	KindUnexpected
	KindCanceled

	kindCount
)

// Kinds returns every Kind in declaration order. Projections that switch on
// Kind are tested against this list.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindNotFound:
		return "not-found"
	case KindBusiness:
		return "business"
	case KindValidation:
		return "validation"
	case KindUnexpected:
		return "unexpected"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Severity classifies the impact of a business error for UI treatment.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	default:
		return "error"
	}
}

// BusinessType drives the HTTP status a business error is projected to.
type BusinessType int

const (
	BusinessBadRequest BusinessType = iota
	BusinessConflict
	BusinessUnexpected
	BusinessNotFound
)

func (t BusinessType) String() string {
	switch t {
	case BusinessConflict:
		return "conflict"
	case BusinessUnexpected:
		return "unexpected"
	case BusinessNotFound:
		return "not-found"
	default:
		return "bad-request"
	}
}
