package api

import (
	"fmt"
	"net/http"
	"time"
	"unicode"
	"unicode/utf8"

	app_errors "cqrs-todo/internal/errors"
	"cqrs-todo/internal/pipeline"
	"cqrs-todo/internal/result"
)

const (
	problemContentType = "application/problem+json"
	requestIDHeader    = "X-Request-Id"

	errorTypeValidation = "validationError"
	errorTypeBusiness   = "businessError"
)

// Transform writes a custom response for a successful value, for example a
// 201 with a Location header.
type Transform[T any] func(w http.ResponseWriter, r *http.Request, value T)

// WriteResult projects a Result: 204 on success, the error projection
// otherwise.
func WriteResult(w http.ResponseWriter, r *http.Request, res result.Result) {
	if res.IsFailure() {
		WriteError(w, r, res.Err())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// WriteValue projects a Value: 200 with the JSON value on success, unless a
// transform is given.
func WriteValue[T any](w http.ResponseWriter, r *http.Request, res result.Value[T], transform Transform[T]) {
	value, appErr := res.Get()
	if appErr != nil {
		WriteError(w, r, appErr)
		return
	}
	if transform != nil {
		transform(w, r, value)
		return
	}
	respondWithJSON(w, http.StatusOK, value)
}

// WriteError projects a failure onto an HTTP status and body.
func WriteError(w http.ResponseWriter, r *http.Request, appErr *app_errors.Error) {
	traceID := appErr.TraceID()
	if traceID == "" {
		traceID = pipeline.TraceID(r.Context())
	}
	if traceID != "" {
		w.Header().Set(requestIDHeader, traceID)
	}

	status, body := Problem(appErr, traceID)
	if problem, ok := body.(ProblemDetails); ok {
		problem.Instance = r.URL.Path
		respondWithContentType(w, status, problemContentType, problem)
		return
	}
	respondWithJSON(w, status, body)
}

// Problem maps an Error onto a status code and a response body. The body is
// a ProblemDetails for every kind except Canceled, whose body is the message.
// Unexpected and generic errors never expose their message or cause.
func Problem(appErr *app_errors.Error, traceID string) (int, any) {
	switch {
	case appErr.Kind() == app_errors.KindNotFound || appErr.Code() == app_errors.CodeNotFound:
		return http.StatusNotFound, ProblemDetails{
			Type:   "https://tools.ietf.org/html/rfc9110#section-15.5.5",
			Title:  "Not Found",
			Status: http.StatusNotFound,
			Detail: appErr.Message(),
		}
	case appErr.Code() == app_errors.CodeForbidden:
		return http.StatusForbidden, ProblemDetails{
			Type:   "https://tools.ietf.org/html/rfc9110#section-15.5.4",
			Title:  "Forbidden",
			Status: http.StatusForbidden,
		}
	}

	switch appErr.Kind() {
	case app_errors.KindCanceled:
		return http.StatusRequestTimeout, appErr.Message()

	case app_errors.KindValidation:
		errs := make(map[string][]string)
		for _, f := range appErr.Fields() {
			key := lowerFirst(f.Source)
			errs[key] = append(errs[key], f.Messages...)
		}
		return http.StatusBadRequest, ProblemDetails{
			Type:   "https://tools.ietf.org/html/rfc9110#section-15.5.1",
			Title:  "One or more validation errors occurred.",
			Status: http.StatusBadRequest,
			Extensions: map[string]any{
				"errors":    errs,
				"errorType": errorTypeValidation,
				"errorCode": appErr.Code(),
			},
		}

	case app_errors.KindBusiness:
		status, title := http.StatusBadRequest, "Bad Request"
		if appErr.BusinessType() == app_errors.BusinessConflict {
			status, title = http.StatusConflict, "Conflict"
		}
		return status, ProblemDetails{
			Title:  title,
			Status: status,
			Detail: appErr.Message(),
			Extensions: map[string]any{
				"solution":   appErr.Solution(),
				"severity":   appErr.Severity().String(),
				"errorType":  errorTypeBusiness,
				"errorCode":  appErr.Code(),
				"traceId":    traceID,
				"occurredAt": appErr.OccurredAt().Format(time.RFC3339Nano),
			},
		}

	case app_errors.KindGeneric, app_errors.KindUnexpected:
		return http.StatusInternalServerError, ProblemDetails{
			Type:   "https://tools.ietf.org/html/rfc9110#section-15.6.1",
			Title:  "An unexpected error occurred",
			Status: http.StatusInternalServerError,
			Detail: fmt.Sprintf("Sorry, this should not have happened. Please contact support and quote the following id: %s", traceID),
			Extensions: map[string]any{
				"errorCode":  appErr.Code(),
				"traceId":    traceID,
				"occurredAt": appErr.OccurredAt().Format(time.RFC3339Nano),
			},
		}
	}

	panic(fmt.Sprintf("api: no projection for error kind %s", appErr.Kind()))
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
