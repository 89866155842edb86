package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Finding is a single rule violation reported by a Validator.
type Finding struct {
	Field   string
	Message string
}

// Validator inspects a request and reports its rule violations. Validators
// must not mutate the request; they may run concurrently.
type Validator[T any] interface {
	Validate(ctx context.Context, req T) ([]Finding, error)
}

// Func adapts a plain function to the Validator interface.
type Func[T any] func(ctx context.Context, req T) ([]Finding, error)

func (f Func[T]) Validate(ctx context.Context, req T) ([]Finding, error) {
	return f(ctx, req)
}

var (
	// validate holds the single instance of the validator.
	validate *validator.Validate
	// once ensures that the validator is initialized only one time.
	once sync.Once
)

// getInstance uses sync.Once to safely initialize and return the validator singleton.
// Field names are reported using their JSON names so they line up with the
// request body the client sent.
func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct returns a Validator that checks T against the rules declared in its
// `validate` struct tags.
func Struct[T any]() Validator[T] {
	return Func[T](func(_ context.Context, req T) ([]Finding, error) {
		return validateStruct(req)
	})
}

func validateStruct(payload any) ([]Finding, error) {
	err := getInstance().Struct(payload)
	if err == nil {
		return nil, nil
	}

	// Try to cast the error to `validator.ValidationErrors`. If this fails, it's not a
	// validation error from the library but some other unexpected issue.
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, fmt.Errorf("validating %T: %w", payload, err)
	}

	findings := make([]Finding, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		findings = append(findings, Finding{
			Field:   fieldErr.Field(),
			Message: message(fieldErr),
		})
	}
	return findings, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("is too short: must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("is too long: must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
