package response

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	body, err := json.Marshal(OK())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(body))
}

func TestOKWithData(t *testing.T) {
	body, err := json.Marshal(OKWithData(map[string]any{"id": "p1"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"id":"p1"}}`, string(body))
}

func TestError(t *testing.T) {
	body, err := json.Marshal(Error("project not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"project not found"}`, string(body))
}

func TestValidationError(t *testing.T) {
	type req struct {
		Name     string `validate:"required"`
		Provider string `validate:"required,oneof=kiwify hotmart"`
	}

	err := validator.New().Struct(req{Provider: "stripe"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, resp.Error, "field Name is a required field")
	assert.Contains(t, resp.Error, "field Provider must be one of the supported values")
}
