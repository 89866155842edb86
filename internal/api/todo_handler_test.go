package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cqrs-todo/internal/api"
	"cqrs-todo/internal/model"
	"cqrs-todo/internal/repository"
	mock_repo "cqrs-todo/internal/repository/mocks"
	"cqrs-todo/internal/service"
)

var styles = []string{"/api/v1/simple/todos", "/api/v1/explicit/todos"}

func setupRouter(t *testing.T) (http.Handler, *mock_repo.MockTodoRepository) {
	repo := mock_repo.NewMockTodoRepository(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := api.NewTodoHandler(service.NewTodoService(repo), logger)
	router, err := api.NewRouter(handler, 5*time.Second)
	require.NoError(t, err)
	return router, repo
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestTodoRoutes_CreateWithShortTitleNeverReachesRepository(t *testing.T) {
	for _, base := range styles {
		t.Run(base, func(t *testing.T) {
			router, repo := setupRouter(t)

			w := do(t, router, http.MethodPost, base, `{"title":"abc","description":"Two liters"}`)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
			body := decode(t, w)
			errs, ok := body["errors"].(map[string]any)
			require.True(t, ok)
			require.Contains(t, errs, "title")
			assert.Contains(t, errs["title"].([]any)[0], "too short")
			assert.Equal(t, "validationError", body["errorType"])
			repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		})
	}
}

func TestTodoRoutes_CompleteAlreadyCompletedTodo(t *testing.T) {
	for _, base := range styles {
		t.Run(base, func(t *testing.T) {
			router, repo := setupRouter(t)
			todo := model.NewTodo("Buy milk", "Two liters")
			todo.IsCompleted = true
			repo.On("GetByID", mock.Anything, todo.ID).Return(todo, nil).Once()

			w := do(t, router, http.MethodPost, base+"/"+todo.ID.String()+"/complete", "")

			assert.Equal(t, http.StatusConflict, w.Code)
			body := decode(t, w)
			assert.Equal(t, "Todo.AlreadyCompleted", body["errorCode"])
			assert.Equal(t, "businessError", body["errorType"])
			assert.NotEmpty(t, body["traceId"])
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestTodoRoutes_GetMissingTodo(t *testing.T) {
	for _, base := range styles {
		t.Run(base, func(t *testing.T) {
			router, repo := setupRouter(t)
			id := uuid.New()
			repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

			w := do(t, router, http.MethodGet, base+"/"+id.String(), "")

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.NotContains(t, w.Body.String(), "repository")
			assert.Equal(t, "The requested resource was not found", decode(t, w)["detail"])
		})
	}
}

func TestTodoRoutes_Create(t *testing.T) {
	for _, base := range styles {
		t.Run(base, func(t *testing.T) {
			router, repo := setupRouter(t)
			repo.On("Add", mock.Anything, mock.MatchedBy(func(td *model.Todo) bool {
				return td.Title == "Buy milk" && !td.IsCompleted
			})).Return(nil).Once()

			w := do(t, router, http.MethodPost, base, `{"title":"Buy milk","description":"Two liters"}`)

			require.Equal(t, http.StatusCreated, w.Code)
			id, err := uuid.Parse(decode(t, w)["id"].(string))
			require.NoError(t, err)
			assert.Equal(t, base+"/"+id.String(), w.Header().Get("Location"))
		})
	}
}

func TestTodoRoutes_CreateIgnoresQueryString(t *testing.T) {
	for _, base := range styles {
		t.Run(base, func(t *testing.T) {
			router, repo := setupRouter(t)
			repo.On("Add", mock.Anything, mock.MatchedBy(func(td *model.Todo) bool {
				return td.Title == "Buy milk"
			})).Return(nil).Twice()

			w := do(t, router, http.MethodPost, base+"?title=Hijacked%20title", `{"title":"Buy milk","description":"Two liters"}`)
			assert.Equal(t, http.StatusCreated, w.Code)

			w = do(t, router, http.MethodPost, base+"?title=abc", `{"title":"Buy milk","description":"Two liters"}`)
			assert.Equal(t, http.StatusCreated, w.Code)
		})
	}
}

func TestTodoRoutes_TimeoutIsGeneric408(t *testing.T) {
	for _, base := range styles {
		t.Run(base, func(t *testing.T) {
			repo := mock_repo.NewMockTodoRepository(t)
			repo.On("List", mock.Anything).
				Run(func(args mock.Arguments) {
					<-args.Get(0).(context.Context).Done()
				}).
				Return(nil, context.DeadlineExceeded).Once()
			handler := api.NewTodoHandler(service.NewTodoService(repo), slog.New(slog.NewJSONHandler(io.Discard, nil)))
			router, err := api.NewRouter(handler, 20*time.Millisecond)
			require.NoError(t, err)

			w := do(t, router, http.MethodGet, base, "")

			require.Equal(t, http.StatusRequestTimeout, w.Code)
			var msg string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
			assert.Equal(t, "The operation timed out", msg)
			assert.NotContains(t, w.Body.String(), "failed to list todos")
		})
	}
}

func TestTodoRoutes_List(t *testing.T) {
	for _, base := range styles {
		t.Run(base, func(t *testing.T) {
			router, repo := setupRouter(t)
			todo := model.NewTodo("Buy milk", "Two liters")
			repo.On("List", mock.Anything).Return([]*model.Todo{todo}, nil).Once()

			w := do(t, router, http.MethodGet, base, "")

			require.Equal(t, http.StatusOK, w.Code)
			var todos []service.TodoSummary
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
			require.Len(t, todos, 1)
			assert.Equal(t, todo.ID, todos[0].ID)
		})
	}
}

func TestTodoRoutes_CompleteAndUpdateAndDelete(t *testing.T) {
	for _, base := range styles {
		t.Run(base, func(t *testing.T) {
			router, repo := setupRouter(t)
			todo := model.NewTodo("Buy milk", "Two liters")
			repo.On("GetByID", mock.Anything, todo.ID).Return(todo, nil).Twice()
			repo.On("Update", mock.Anything, mock.Anything).Return(nil).Twice()
			repo.On("Delete", mock.Anything, todo.ID).Return(nil).Once()

			w := do(t, router, http.MethodPut, base+"/"+todo.ID.String(), `{"title":"Buy oat milk","description":"One liter"}`)
			assert.Equal(t, http.StatusNoContent, w.Code)

			w = do(t, router, http.MethodPost, base+"/"+todo.ID.String()+"/complete", "")
			assert.Equal(t, http.StatusNoContent, w.Code)

			w = do(t, router, http.MethodDelete, base+"/"+todo.ID.String(), "")
			assert.Equal(t, http.StatusNoContent, w.Code)
		})
	}
}

func TestTodoRoutes_UpdateCompletedTodo(t *testing.T) {
	router, repo := setupRouter(t)
	todo := model.NewTodo("Buy milk", "Two liters")
	todo.IsCompleted = true
	repo.On("GetByID", mock.Anything, todo.ID).Return(todo, nil).Once()

	w := do(t, router, http.MethodPut, styles[0]+"/"+todo.ID.String(), `{"title":"Buy oat milk","description":"One liter"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Todo.Completed", decode(t, w)["errorCode"])
}

func TestTodoRoutes_BindingFailures(t *testing.T) {
	for _, base := range styles {
		t.Run(base, func(t *testing.T) {
			router, _ := setupRouter(t)

			w := do(t, router, http.MethodGet, base+"/not-a-uuid", "")
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode(t, w)["errors"], "todoId")

			w = do(t, router, http.MethodPost, base, `{"title":`)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode(t, w)["errors"], "body")
		})
	}
}

func TestTodoRoutes_RepositoryFaultIsGeneric500(t *testing.T) {
	for _, base := range styles {
		t.Run(base, func(t *testing.T) {
			router, repo := setupRouter(t)
			repo.On("List", mock.Anything).Return(nil, errors.New("disk I/O error")).Once()

			w := do(t, router, http.MethodGet, base, "")

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.NotContains(t, w.Body.String(), "disk I/O")
			assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
			assert.Equal(t, "unexpected", decode(t, w)["errorCode"])
		})
	}
}

func TestHealthz(t *testing.T) {
	router, _ := setupRouter(t)
	w := do(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
