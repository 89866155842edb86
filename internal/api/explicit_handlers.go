package api

import (
	"net/http"

	app_errors "cqrs-todo/internal/errors"
)

// DefaultSuccess answers 200 with the value, or 204 for NoContent.
func DefaultSuccess[Req any, T any](w http.ResponseWriter, _ *http.Request, _ RouteContext[Req], value T) {
	if _, ok := any(value).(NoContent); ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondWithJSON(w, http.StatusOK, value)
}

// DefaultError classifies any fault, logs it according to its kind and
// writes the matching problem response.
func DefaultError[Req any](w http.ResponseWriter, r *http.Request, c RouteContext[Req], err error) {
	appErr := app_errors.ToError(err)
	if appErr.TraceID() == "" && c.TraceID != "" {
		appErr = appErr.WithTraceID(c.TraceID)
	}
	if c.Logger != nil {
		appErr.Log(c.Logger)
	}
	WriteError(w, r, appErr)
}

// NotFoundError answers 404 for a not-found fault.
func NotFoundError[Req any](w http.ResponseWriter, r *http.Request, _ RouteContext[Req], err *app_errors.NotFoundFault) {
	WriteError(w, r, err.AppError())
}
