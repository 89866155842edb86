package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "cqrs-todo/internal/errors"
)

// Binder builds a request value from an HTTP request. Binding failures are
// returned as validation faults.
type Binder[Req any] func(r *http.Request) (Req, error)

// FromPath binds chi URL parameters and query values onto the fields of Req
// with the matching JSON name. Values are decoded as JSON strings, so target
// fields must be strings or implement encoding.TextUnmarshaler.
func FromPath[Req any]() Binder[Req] {
	return func(r *http.Request) (Req, error) {
		var req Req
		values := queryParams(r)
		for k, v := range routeParams(r) {
			values[k] = v
		}
		if err := bindParams(values, &req); err != nil {
			return req, err
		}
		return req, nil
	}
}

// FromBody decodes the JSON body into Req and then applies the URL
// parameters, which take precedence over body fields with the same name.
// The query string is ignored.
func FromBody[Req any]() Binder[Req] {
	return func(r *http.Request) (Req, error) {
		var req Req
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			msg := "must be a valid JSON document"
			if errors.Is(err, io.EOF) {
				msg = "must not be empty"
			}
			return req, bindingFault("body", msg)
		}
		if err := bindParams(routeParams(r), &req); err != nil {
			return req, err
		}
		return req, nil
	}
}

func bindParams(values map[string]string, dst any) error {
	for name, value := range values {
		raw, err := json.Marshal(map[string]string{name: value})
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return bindingFault(name, "has an invalid format")
		}
	}
	return nil
}

// queryParams collects the first value of every query parameter.
func queryParams(r *http.Request) map[string]string {
	out := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func routeParams(r *http.Request) map[string]string {
	out := make(map[string]string)
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, k := range rctx.URLParams.Keys {
			if k == "*" {
				continue
			}
			out[k] = rctx.URLParams.Values[i]
		}
	}
	return out
}

func bindingFault(source, message string) error {
	return app_errors.ToFault(app_errors.Validation([]app_errors.FieldErrors{
		{Source: source, Messages: []string{message}},
	}))
}
