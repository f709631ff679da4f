package response

import (
	"net/http"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	resp := OK(http.StatusCreated, "Subscription created", map[string]any{"id": 1})

	assert.True(t, resp.Success)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Subscription created", resp.Message)
	assert.NotNil(t, resp.Data)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestError(t *testing.T) {
	resp := Error(http.StatusNotFound, "subscription not found")

	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "subscription not found", resp.Message)
	assert.Nil(t, resp.Data)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Name     string  `validate:"required"`
		Currency string  `validate:"len=3"`
		Price    float64 `validate:"gt=0"`
	}

	err := validator.New().Struct(payload{Currency: "EURO"})
	require.Error(t, err)

	resp := ValidationError(http.StatusUnprocessableEntity, err.(validator.ValidationErrors))

	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, resp.Message, "field Name is a required field")
	assert.Contains(t, resp.Message, "field Currency has invalid length")
	assert.Contains(t, resp.Message, "field Price must be greater than zero")
}
