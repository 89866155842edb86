package errors

import (
	"context"
	"errors"
)

// Fault is the error-interface form of an Error. ToFault wraps it in the
// most specific fault type for the Error's variant so that callers (the
// explicit route style in particular) can match on the concrete type.
type Fault struct {
	err *Error
}

func (f *Fault) Error() string { return f.err.String() }

// AppError returns the wrapped Error.
func (f *Fault) AppError() *Error { return f.err }

// Unwrap exposes the original cause of unexpected and canceled errors, so
// errors.Is(fault, context.Canceled) keeps working.
func (f *Fault) Unwrap() error { return f.err.cause }

// Is matches the package sentinels by kind and code.
func (f *Fault) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return f.err.kind == KindNotFound || f.err.code == CodeNotFound
	case ErrForbidden:
		return f.err.code == CodeForbidden
	case ErrValidation:
		return f.err.kind == KindValidation
	case ErrBusiness:
		return f.err.kind == KindBusiness
	case ErrConflict:
		return f.err.kind == KindBusiness && f.err.businessType == BusinessConflict
	case ErrUnexpected:
		return f.err.kind == KindUnexpected
	case ErrCanceled:
		return f.err.kind == KindCanceled
	}
	return false
}

type (
	NotFoundFault   struct{ *Fault }
	ForbiddenFault  struct{ *Fault }
	BusinessFault   struct{ *Fault }
	ValidationFault struct{ *Fault }
	UnexpectedFault struct{ *Fault }
	CanceledFault   struct{ *Fault }
)

func (f *NotFoundFault) Unwrap() error   { return f.Fault }
func (f *ForbiddenFault) Unwrap() error  { return f.Fault }
func (f *BusinessFault) Unwrap() error   { return f.Fault }
func (f *ValidationFault) Unwrap() error { return f.Fault }
func (f *UnexpectedFault) Unwrap() error { return f.Fault }
func (f *CanceledFault) Unwrap() error   { return f.Fault }

// ToFault converts e into an error, selecting the most specific fault
// wrapper for its variant. It returns nil for a nil Error.
func ToFault(e *Error) error {
	if e == nil {
		return nil
	}
	base := &Fault{err: e}
	switch e.kind {
	case KindBusiness:
		return &BusinessFault{base}
	case KindValidation:
		return &ValidationFault{base}
	case KindUnexpected:
		return &UnexpectedFault{base}
	case KindCanceled:
		return &CanceledFault{base}
	case KindNotFound:
		return &NotFoundFault{base}
	}
	if e.code == CodeForbidden {
		return &ForbiddenFault{base}
	}
	return base
}

// ToError classifies an arbitrary fault. A fault produced by ToFault
// unwraps to the very same Error; cancellation becomes a canceled error and
// everything else an unexpected one. It returns nil for a nil error.
func ToError(err error) *Error {
	if err == nil {
		return nil
	}
	var f *Fault
	if errors.As(err, &f) {
		return f.err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Canceled(err)
	}
	return Unexpected(err)
}
