package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "cqrs-todo/internal/errors"
	"cqrs-todo/internal/pipeline"
	"cqrs-todo/internal/result"
)

// Registration errors returned by RouteBuilder.Mount.
var (
	ErrNoSuccessHandler       = errors.New("api: route has no success handler")
	ErrTooManySuccessHandlers = errors.New("api: route has more than one success handler")
	ErrNoErrorHandler         = errors.New("api: route has no error handler")
)

// NoContent is the value of explicit routes whose operation returns none.
type NoContent struct{}

// RouteContext is handed to explicit success and error handlers.
type RouteContext[Req any] struct {
	// Request is the bound request. It is the zero value when binding failed.
	Request Req
	TraceID string
	Logger  *slog.Logger
}

// SuccessHandler writes the response for a successful operation.
type SuccessHandler[Req any, T any] func(w http.ResponseWriter, r *http.Request, c RouteContext[Req], value T)

// ErrorHandler writes the response for a fault of type E.
type ErrorHandler[Req any, E error] func(w http.ResponseWriter, r *http.Request, c RouteContext[Req], err E)

type errorRoute[Req any] struct {
	catchAll bool
	// match returns the unwrap depth at which err has the handler's type and
	// a closure that runs the handler.
	match    func(err error) (int, func(w http.ResponseWriter, r *http.Request, c RouteContext[Req]), bool)
}

// RouteBuilder wires an explicit-style route. Faults are dispatched to the
// registered error handler whose type matches closest.
type RouteBuilder[Req any, T any] struct {
	method    string
	pattern   string
	bind      Binder[Req]
	run       func(ctx context.Context, req Req) (T, error)
	logger    *slog.Logger
	successes []SuccessHandler[Req, T]
	errors    []errorRoute[Req]
}

// ExplicitQuery builds a route around a value pipeline. Failures are turned
// into faults with Result.Fault; error normalization is left to the error
// handlers.
func ExplicitQuery[Req any, T any](logger *slog.Logger, method, pattern string, bind Binder[Req], p *pipeline.Pipeline[Req, result.Value[T]]) *RouteBuilder[Req, T] {
	return &RouteBuilder[Req, T]{
		method:  method,
		pattern: pattern,
		bind:    bind,
		logger:  logger,
		run: func(ctx context.Context, req Req) (T, error) {
			res, err := p.Call(ctx, req)
			if err != nil {
				var zero T
				return zero, err
			}
			return res.Fault(nil)
		},
	}
}

// ExplicitCommand builds a route around a pipeline that returns no value.
func ExplicitCommand[Req any](logger *slog.Logger, method, pattern string, bind Binder[Req], p *pipeline.Pipeline[Req, result.Result]) *RouteBuilder[Req, NoContent] {
	return &RouteBuilder[Req, NoContent]{
		method:  method,
		pattern: pattern,
		bind:    bind,
		logger:  logger,
		run: func(ctx context.Context, req Req) (NoContent, error) {
			res, err := p.Call(ctx, req)
			if err != nil {
				return NoContent{}, err
			}
			return NoContent{}, res.Fault(nil)
		},
	}
}

// OnSuccess registers the success handler. Exactly one is required.
func (b *RouteBuilder[Req, T]) OnSuccess(h SuccessHandler[Req, T]) *RouteBuilder[Req, T] {
	b.successes = append(b.successes, h)
	return b
}

// OnError registers h for faults of type E. Registering with E = error
// installs a catch-all handler, used only when no typed handler matches.
func OnError[E error, Req any, T any](b *RouteBuilder[Req, T], h ErrorHandler[Req, E]) *RouteBuilder[Req, T] {
	var zero E
	_, catchAll := any(&zero).(*error)
	b.errors = append(b.errors, errorRoute[Req]{
		catchAll: catchAll,
		match: func(err error) (int, func(http.ResponseWriter, *http.Request, RouteContext[Req]), bool) {
			for depth := 0; err != nil; depth++ {
				if e, ok := err.(E); ok {
					return depth, func(w http.ResponseWriter, r *http.Request, c RouteContext[Req]) {
						h(w, r, c, e)
					}, true
				}
				err = errors.Unwrap(err)
			}
			return 0, nil, false
		},
	})
	return b
}

// Mount validates the registration and installs the route on r.
func (b *RouteBuilder[Req, T]) Mount(r chi.Router) error {
	switch {
	case len(b.successes) == 0:
		return fmt.Errorf("%s %s: %w", b.method, b.pattern, ErrNoSuccessHandler)
	case len(b.successes) > 1:
		return fmt.Errorf("%s %s: %w", b.method, b.pattern, ErrTooManySuccessHandlers)
	case len(b.errors) == 0:
		return fmt.Errorf("%s %s: %w", b.method, b.pattern, ErrNoErrorHandler)
	}
	r.Method(b.method, b.pattern, http.HandlerFunc(b.serve))
	return nil
}

func (b *RouteBuilder[Req, T]) serve(w http.ResponseWriter, r *http.Request) {
	c := RouteContext[Req]{TraceID: pipeline.TraceID(r.Context()), Logger: b.logger}

	req, err := b.bind(r)
	if err != nil {
		b.dispatch(w, r, c, err)
		return
	}
	c.Request = req

	value, err := b.invoke(r.Context(), req)
	if err != nil {
		b.dispatch(w, r, c, err)
		return
	}
	b.successes[0](w, r, c, value)
}

func (b *RouteBuilder[Req, T]) invoke(ctx context.Context, req Req) (value T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return b.run(ctx, req)
}

// dispatch picks the typed handler matching at the shallowest unwrap depth,
// earliest declaration first. A catch-all handler runs only when no typed
// handler matches; with no handler at all the route answers 500.
func (b *RouteBuilder[Req, T]) dispatch(w http.ResponseWriter, r *http.Request, c RouteContext[Req], err error) {
	best := math.MaxInt
	var handle func(http.ResponseWriter, *http.Request, RouteContext[Req])
	for _, route := range b.errors {
		depth, h, ok := route.match(err)
		if !ok {
			continue
		}
		if route.catchAll {
			depth = math.MaxInt - 1
		}
		if depth < best {
			best, handle = depth, h
		}
	}
	if handle != nil {
		handle(w, r, c)
		return
	}

	appErr := app_errors.Unexpected(err)
	appErr.Log(c.Logger)
	WriteError(w, r, appErr)
}
