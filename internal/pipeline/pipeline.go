// Package pipeline composes request handlers with the behaviors that run
// around every invocation.
//
// A pipeline for a request type Req and outcome R is
//
//	error normalization -> validation -> handler
//
// Behaviors are plain functions composed once, at route registration time.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"cqrs-todo/internal/result"
	"cqrs-todo/internal/validation"
)

// Handler handles a request. Expected failures are returned as a failed R;
// a non-nil error is an unanticipated fault.
type Handler[Req any, R any] func(ctx context.Context, req Req) (R, error)

// Behavior wraps the rest of the chain.
type Behavior[Req any, R result.Outcome[R]] func(ctx context.Context, req Req, next Handler[Req, R]) (R, error)

// Chain wraps handler with behaviors. The first behavior is the outermost.
func Chain[Req any, R result.Outcome[R]](handler Handler[Req, R], behaviors ...Behavior[Req, R]) Handler[Req, R] {
	h := handler
	for i := len(behaviors) - 1; i >= 0; i-- {
		b, next := behaviors[i], h
		h = func(ctx context.Context, req Req) (R, error) {
			return b(ctx, req, next)
		}
	}
	return h
}

// Pipeline is a handler composed with the standard behaviors.
type Pipeline[Req any, R result.Outcome[R]] struct {
	name      string
	inner     Handler[Req, R]
	normalize Handler[Req, R]
}

// New builds the pipeline for handler. Validators run before the handler;
// error normalization wraps everything.
func New[Req any, R result.Outcome[R]](logger *slog.Logger, handler Handler[Req, R], validators ...validation.Validator[Req]) *Pipeline[Req, R] {
	var zero Req
	name := fmt.Sprintf("%T", zero)
	inner := Chain(handler, Validation[Req, R](validators...))
	return &Pipeline[Req, R]{
		name:      name,
		inner:     inner,
		normalize: Chain(inner, Errors[Req, R](logger.With("requestType", name))),
	}
}

// Name returns the request type name used in log records.
func (p *Pipeline[Req, R]) Name() string { return p.name }

// Send runs the full pipeline. Faults never escape: they come back as a
// failed R.
func (p *Pipeline[Req, R]) Send(ctx context.Context, req Req) R {
	res, _ := p.normalize(ctx, req)
	return res
}

// Call runs validation and the handler without error normalization, so
// faults are returned to the caller as is.
func (p *Pipeline[Req, R]) Call(ctx context.Context, req Req) (R, error) {
	return p.inner(ctx, req)
}
