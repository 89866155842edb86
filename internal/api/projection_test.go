package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "cqrs-todo/internal/errors"
	"cqrs-todo/internal/result"
)

func sampleError(k app_errors.Kind) *app_errors.Error {
	switch k {
	case app_errors.KindNotFound:
		return app_errors.NotFound("")
	case app_errors.KindBusiness:
		return app_errors.BadRequest("Todo.Invalid", "invalid")
	case app_errors.KindValidation:
		return app_errors.Validation([]app_errors.FieldErrors{{Source: "Title", Messages: []string{"must not be empty"}}})
	case app_errors.KindUnexpected:
		return app_errors.Unexpected(errors.New("boom"))
	case app_errors.KindCanceled:
		return app_errors.Canceled(errors.New("context canceled"))
	default:
		return app_errors.New("some-code", "some message")
	}
}

func TestProblem_CoversEveryKind(t *testing.T) {
	for _, k := range app_errors.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			appErr := sampleError(k)
			require.Equal(t, k, appErr.Kind())
			assert.NotPanics(t, func() {
				status, body := Problem(appErr, "trace-1")
				assert.NotZero(t, status)
				assert.NotNil(t, body)
			})
		})
	}
}

func TestProblem_Statuses(t *testing.T) {
	testCases := []struct {
		name   string
		err    *app_errors.Error
		status int
	}{
		{"not found", app_errors.NotFound("gone"), http.StatusNotFound},
		{"not-found code on generic error", app_errors.New(app_errors.CodeNotFound, "gone"), http.StatusNotFound},
		{"forbidden", app_errors.Forbidden(), http.StatusForbidden},
		{"unauthorized", app_errors.Unauthorized(), http.StatusForbidden},
		{"canceled", app_errors.Canceled(errors.New("context canceled")), http.StatusRequestTimeout},
		{"validation", sampleError(app_errors.KindValidation), http.StatusBadRequest},
		{"business conflict", app_errors.Conflict("Todo.AlreadyCompleted", "done"), http.StatusConflict},
		{"business bad request", app_errors.BadRequest("Todo.Invalid", "bad"), http.StatusBadRequest},
		{"business unexpected", app_errors.UnexpectedBusiness("Todo.Odd", "odd"), http.StatusBadRequest},
		{"unexpected", app_errors.Unexpected(errors.New("boom")), http.StatusInternalServerError},
		{"generic", app_errors.New("custom", "custom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := Problem(tc.err, "")
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestProblem_ValidationKeysAreDistinctLowerFirstSources(t *testing.T) {
	appErr := app_errors.Validation([]app_errors.FieldErrors{
		{Source: "Title", Messages: []string{"must not be empty"}},
		{Source: "description", Messages: []string{"is too long: must be at most 100 characters"}},
	})

	_, body := Problem(appErr, "")
	problem, ok := body.(ProblemDetails)
	require.True(t, ok)

	errs, ok := problem.Extensions["errors"].(map[string][]string)
	require.True(t, ok)
	assert.Len(t, errs, 2)
	assert.Equal(t, []string{"must not be empty"}, errs["title"])
	assert.Contains(t, errs, "description")
	assert.Equal(t, "validationError", problem.Extensions["errorType"])
	assert.Equal(t, app_errors.CodeValidation, problem.Extensions["errorCode"])
}

func TestProblem_BusinessExtensions(t *testing.T) {
	appErr := app_errors.Business("Todo.AlreadyCompleted", "The todo is already completed.",
		app_errors.WithBusinessType(app_errors.BusinessConflict),
		app_errors.WithSolution("Reopen it first."),
		app_errors.WithSeverity(app_errors.SeverityWarn),
	)

	status, body := Problem(appErr, "trace-1")
	assert.Equal(t, http.StatusConflict, status)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "The todo is already completed.", decoded["detail"])
	assert.Equal(t, "Reopen it first.", decoded["solution"])
	assert.Equal(t, "businessError", decoded["errorType"])
	assert.Equal(t, "Todo.AlreadyCompleted", decoded["errorCode"])
	assert.Equal(t, "trace-1", decoded["traceId"])
	assert.Equal(t, "warn", decoded["severity"])
	assert.NotEmpty(t, decoded["occurredAt"])
	assert.EqualValues(t, http.StatusConflict, decoded["status"])
}

func TestWriteError_InternalErrorsDoNotLeakCause(t *testing.T) {
	appErr := app_errors.Unexpected(errors.New("sql: connection refused at 10.0.0.3")).WithTraceID("trace-42")
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/simple/todos", nil)

	WriteError(w, r, appErr)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, problemContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "trace-42", w.Header().Get(requestIDHeader))
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "trace-42")
}

func TestWriteError_CanceledBodyIsMessage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(w, r, app_errors.Canceled(fmt.Errorf("failed to list todos: %w", context.Canceled)))

	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	var msg string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, "The operation was canceled", msg)
	assert.NotContains(t, w.Body.String(), "failed to list todos")

	w = httptest.NewRecorder()
	WriteError(w, r, app_errors.Canceled(fmt.Errorf("query: %w", context.DeadlineExceeded)))

	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, "The operation timed out", msg)
}

func TestWriteResultAndValue(t *testing.T) {
	t.Run("Success without value is 204", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteResult(w, httptest.NewRequest(http.MethodPost, "/", nil), result.Success())
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Success with value is 200", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteValue(w, httptest.NewRequest(http.MethodGet, "/", nil), result.Ok(map[string]int{"n": 1}), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"n":1}`, w.Body.String())
	})

	t.Run("Transform replaces the default response", func(t *testing.T) {
		w := httptest.NewRecorder()
		created := Created(func(_ *http.Request, v string) string { return "/things/" + v })
		WriteValue(w, httptest.NewRequest(http.MethodPost, "/things", nil), result.Ok("abc"), created)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/things/abc", w.Header().Get("Location"))
	})

	t.Run("Failure is projected", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteValue(w, httptest.NewRequest(http.MethodGet, "/", nil), result.FailValue[string](app_errors.NotFound("")), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	p := ProblemDetails{
		Title:      "Conflict",
		Status:     409,
		Extensions: map[string]any{"errorCode": "x", "title": "ignored"},
	}
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Conflict","status":409,"errorCode":"x"}`, string(raw))
}
