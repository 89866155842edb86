package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "cqrs-todo/internal/errors"
	"cqrs-todo/internal/pipeline"
	"cqrs-todo/internal/result"
)

// Route helpers of the simple style. Each one binds the request, sends it
// through the pipeline and projects the outcome.

// MapGet registers a query bound from the path and query string.
func MapGet[Req any, T any](r chi.Router, pattern string, p *pipeline.Pipeline[Req, result.Value[T]]) {
	r.Get(pattern, valueHandler(FromPath[Req](), p, nil))
}

// MapPost registers a command bound from the path.
func MapPost[Req any](r chi.Router, pattern string, p *pipeline.Pipeline[Req, result.Result]) {
	r.Post(pattern, resultHandler(FromPath[Req](), p))
}

// MapPostFromBody registers a command bound from the JSON body that returns
// a value. transform may be nil, in which case the value is written with 200.
func MapPostFromBody[Req any, T any](r chi.Router, pattern string, p *pipeline.Pipeline[Req, result.Value[T]], transform Transform[T]) {
	r.Post(pattern, valueHandler(FromBody[Req](), p, transform))
}

// MapPut registers a command bound from the JSON body and the path.
func MapPut[Req any](r chi.Router, pattern string, p *pipeline.Pipeline[Req, result.Result]) {
	r.Put(pattern, resultHandler(FromBody[Req](), p))
}

// MapPatch registers a command bound from the JSON body and the path.
func MapPatch[Req any](r chi.Router, pattern string, p *pipeline.Pipeline[Req, result.Result]) {
	r.Patch(pattern, resultHandler(FromBody[Req](), p))
}

// MapDelete registers a command bound from the path.
func MapDelete[Req any](r chi.Router, pattern string, p *pipeline.Pipeline[Req, result.Result]) {
	r.Delete(pattern, resultHandler(FromPath[Req](), p))
}

func resultHandler[Req any](bind Binder[Req], p *pipeline.Pipeline[Req, result.Result]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := bind(r)
		if err != nil {
			WriteError(w, r, app_errors.ToError(err))
			return
		}
		WriteResult(w, r, p.Send(r.Context(), req))
	}
}

func valueHandler[Req any, T any](bind Binder[Req], p *pipeline.Pipeline[Req, result.Value[T]], transform Transform[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := bind(r)
		if err != nil {
			WriteError(w, r, app_errors.ToError(err))
			return
		}
		WriteValue(w, r, p.Send(r.Context(), req), transform)
	}
}

// Created returns a transform that answers 201 with a Location header built
// from the value and the value itself as body.
func Created[T any](location func(r *http.Request, value T) string) Transform[T] {
	return func(w http.ResponseWriter, r *http.Request, value T) {
		w.Header().Set("Location", location(r, value))
		respondWithJSON(w, http.StatusCreated, value)
	}
}
