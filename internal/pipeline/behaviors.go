package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	app_errors "cqrs-todo/internal/errors"
	"cqrs-todo/internal/result"
	"cqrs-todo/internal/validation"
)

// Validation runs every validator before the handler. Any finding
// short-circuits the chain with a failed R wrapping a validation error;
// the handler is never invoked in that case.
func Validation[Req any, R result.Outcome[R]](validators ...validation.Validator[Req]) Behavior[Req, R] {
	return func(ctx context.Context, req Req, next Handler[Req, R]) (R, error) {
		if len(validators) == 0 {
			return next(ctx, req)
		}

		reports := make([][]validation.Finding, len(validators))
		g, gctx := errgroup.WithContext(ctx)
		for i, v := range validators {
			g.Go(func() error {
				findings, err := v.Validate(gctx, req)
				if err != nil {
					return err
				}
				reports[i] = findings
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			var zero R
			return zero, err
		}

		if fields := group(reports); len(fields) > 0 {
			var zero R
			return zero.Failed(app_errors.Validation(fields)), nil
		}
		return next(ctx, req)
	}
}

// group merges findings by field in first-appearance order, keeping each
// distinct message once.
func group(reports [][]validation.Finding) []app_errors.FieldErrors {
	var fields []app_errors.FieldErrors
	index := make(map[string]int)
	seen := make(map[string]map[string]struct{})
	for _, findings := range reports {
		for _, f := range findings {
			i, ok := index[f.Field]
			if !ok {
				i = len(fields)
				index[f.Field] = i
				seen[f.Field] = make(map[string]struct{})
				fields = append(fields, app_errors.FieldErrors{Source: f.Field})
			}
			if _, dup := seen[f.Field][f.Message]; dup {
				continue
			}
			seen[f.Field][f.Message] = struct{}{}
			fields[i].Messages = append(fields[i].Messages, f.Message)
		}
	}
	return fields
}

// Errors turns every outcome of the chain below it into an R. Failures are
// logged through Error.Log; faults and panics are classified, logged and
// returned as failures. The returned error is always nil.
//
// Failures without a trace id are stamped with the request id found in ctx.
func Errors[Req any, R result.Outcome[R]](logger *slog.Logger) Behavior[Req, R] {
	return func(ctx context.Context, req Req, next Handler[Req, R]) (res R, err error) {
		defer func() {
			if p := recover(); p != nil {
				res, err = fail[R](ctx, logger, fmt.Errorf("panic: %v", p)), nil
			}
		}()

		res, err = next(ctx, req)
		if err != nil {
			return fail[R](ctx, logger, err), nil
		}
		if res.IsFailure() {
			appErr := res.Err()
			if appErr.TraceID() == "" && TraceID(ctx) != "" {
				appErr = appErr.WithTraceID(TraceID(ctx))
			}
			appErr.Log(logger)
			res = res.Failed(appErr)
		}
		return res, nil
	}
}

func fail[R result.Outcome[R]](ctx context.Context, logger *slog.Logger, fault error) R {
	appErr := app_errors.ToError(fault)
	if appErr.TraceID() == "" && TraceID(ctx) != "" {
		appErr = appErr.WithTraceID(TraceID(ctx))
	}
	appErr.Log(logger)
	var zero R
	return zero.Failed(appErr)
}

// TraceID returns the request id chi's RequestID middleware stored in ctx.
func TraceID(ctx context.Context) string {
	return middleware.GetReqID(ctx)
}
