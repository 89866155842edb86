package validation_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cqrs-todo/internal/validation"
)

type createRequest struct {
	Title       string    `json:"title" validate:"required,min=5,max=20"`
	Description string    `json:"description" validate:"required,max=100"`
	OwnerID     uuid.UUID `json:"ownerId" validate:"required"`
	Tag         string    `validate:"omitempty,oneof=home work"`
}

func TestStruct(t *testing.T) {
	ctx := context.Background()
	v := validation.Struct[createRequest]()

	t.Run("Valid request", func(t *testing.T) {
		findings, err := v.Validate(ctx, createRequest{Title: "Buy milk", Description: "Two liters", OwnerID: uuid.New()})
		require.NoError(t, err)
		assert.Empty(t, findings)
	})

	t.Run("Findings use JSON names and readable messages", func(t *testing.T) {
		findings, err := v.Validate(ctx, createRequest{Title: "abc", Description: "", Tag: "garden"})
		require.NoError(t, err)

		byField := make(map[string]string)
		for _, f := range findings {
			byField[f.Field] = f.Message
		}
		assert.Equal(t, "is too short: must be at least 5 characters", byField["title"])
		assert.Equal(t, "must not be empty", byField["description"])
		assert.Equal(t, "must not be empty", byField["ownerId"])
		assert.Equal(t, "failed on the 'oneof' rule", byField["Tag"])
	})

	t.Run("Too long", func(t *testing.T) {
		findings, err := v.Validate(ctx, createRequest{Title: "a title that is far too long", Description: "d", OwnerID: uuid.New()})
		require.NoError(t, err)
		require.Len(t, findings, 1)
		assert.Equal(t, validation.Finding{Field: "title", Message: "is too long: must be at most 20 characters"}, findings[0])
	})

	t.Run("Non-struct input is a fault", func(t *testing.T) {
		_, err := validation.Struct[int]().Validate(ctx, 3)
		assert.Error(t, err)
	})
}

func TestFunc(t *testing.T) {
	v := validation.Func[string](func(_ context.Context, s string) ([]validation.Finding, error) {
		if s == "" {
			return []validation.Finding{{Field: "name", Message: "must not be empty"}}, nil
		}
		return nil, nil
	})

	findings, err := v.Validate(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, findings, 1)
}
