package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	data := map[string]string{"key": "value"}
	resp := StatusOKWithData(data)

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, data, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
	assert.Empty(t, resp.Code)
	assert.Nil(t, resp.Data)
}

func TestPremiumRequired(t *testing.T) {
	resp := PremiumRequired()

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "PREMIUM_REQUIRED", resp.Code)
	assert.Contains(t, resp.Error, "free trial has expired")
}

func TestValidationError(t *testing.T) {
	type request struct {
		Title    string `validate:"required"`
		Priority string `validate:"oneof=low medium high"`
		Date     string `validate:"datetime=2006-01-02"`
		TaskID   string `validate:"uuid"`
		Note     string `validate:"max=3"`
	}

	err := validator.New().Struct(request{Priority: "urgent", Date: "10.03.2025", TaskID: "nope", Note: "long"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Title is a required field")
	assert.Contains(t, resp.Error, "field Priority must be one of [low medium high]")
	assert.Contains(t, resp.Error, "field Date must match format 2006-01-02")
	assert.Contains(t, resp.Error, "field TaskID can contain only uuid")
	assert.Contains(t, resp.Error, "field Note must be at most 3")
}
