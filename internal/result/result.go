// Package result holds the outcome types returned by every request handler.
//
// A Result is either a success or a failure carrying exactly one
// *app_errors.Error. Value[T] refines Result with a typed success value.
// Both are immutable values created through explicit factories; there are no
// implicit conversions from errors or values.
package result

import (
	"errors"
	"log/slog"
	"reflect"

	app_errors "cqrs-todo/internal/errors"
)

// Outcome is implemented by Result and Value[T]. The Failed method lets
// generic code build a failed R without knowing its concrete type.
type Outcome[R any] interface {
	IsSuccess() bool
	IsFailure() bool
	Err() *app_errors.Error
	Failed(err *app_errors.Error) R
}

// Result is the outcome of an operation that produces no value.
type Result struct {
	err *app_errors.Error
}

// Success returns a successful Result.
func Success() Result {
	return Result{}
}

// Fail returns a failed Result. It panics on a nil error since a failure
// without an Error cannot be projected.
func Fail(err *app_errors.Error) Result {
	if err == nil {
		panic("result: Fail called with nil error")
	}
	return Result{err: err}
}

// FailCode is shorthand for Fail(app_errors.New(code, message)).
func FailCode(code, message string) Result {
	return Fail(app_errors.New(code, message))
}

// FailFault classifies err and returns it as a failed Result.
func FailFault(err error) Result {
	return Fail(app_errors.ToError(err))
}

func (r Result) IsSuccess() bool        { return r.err == nil }
func (r Result) IsFailure() bool        { return r.err != nil }
func (r Result) Err() *app_errors.Error { return r.err }

func (Result) Failed(err *app_errors.Error) Result { return Fail(err) }

// Fault returns nil on success. On failure it logs the error through
// logger, when one is given, and returns the mapped fault.
func (r Result) Fault(logger *slog.Logger) error {
	if r.err == nil {
		return nil
	}
	if logger != nil {
		r.err.Log(logger)
	}
	return app_errors.ToFault(r.err)
}

// Value is the outcome of an operation that produces a T on success. Only
// Ok builds a success; the zero Value is a failure.
type Value[T any] struct {
	value T
	ok    bool
	err   *app_errors.Error
}

// Ok returns a successful Value. Nil values (interfaces, pointers, maps,
// slices, funcs and channels) are rejected since a success must carry
// something to serialize.
func Ok[T any](value T) Value[T] {
	if isNil(value) {
		panic("result: Ok called with nil value")
	}
	return Value[T]{value: value, ok: true}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// FailValue returns a failed Value[T].
func FailValue[T any](err *app_errors.Error) Value[T] {
	if err == nil {
		panic("result: FailValue called with nil error")
	}
	return Value[T]{err: err}
}

// FailValueFault classifies err and returns it as a failed Value[T].
func FailValueFault[T any](err error) Value[T] {
	return FailValue[T](app_errors.ToError(err))
}

func (r Value[T]) IsSuccess() bool { return r.ok }
func (r Value[T]) IsFailure() bool { return !r.ok }

// Err returns the failure's Error, or nil on success. A zero Value reports
// an unexpected error.
func (r Value[T]) Err() *app_errors.Error {
	if r.ok {
		return nil
	}
	if r.err == nil {
		return app_errors.Unexpected(errUninitialized)
	}
	return r.err
}

var errUninitialized = errors.New("result: zero Value used as an outcome")

func (Value[T]) Failed(err *app_errors.Error) Value[T] { return FailValue[T](err) }

// Value returns the success value; it is the zero T on failure.
func (r Value[T]) Value() T { return r.value }

// Get deconstructs r into its value and error. Exactly one of them is set.
func (r Value[T]) Get() (T, *app_errors.Error) {
	return r.value, r.Err()
}

// Result drops the value, keeping success or the same Error.
func (r Value[T]) Result() Result {
	return Result{err: r.Err()}
}

// Fault behaves like Result.Fault and additionally returns the value.
func (r Value[T]) Fault(logger *slog.Logger) (T, error) {
	return r.value, r.Result().Fault(logger)
}
