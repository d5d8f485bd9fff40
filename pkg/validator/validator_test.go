package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settingsRequest struct {
	Language string `validate:"required,oneof=en ar"`
	Phone    string `validate:"omitempty,intl_phone"`
}

func TestCustomValidator_Struct(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(settingsRequest{Language: "ar", Phone: "+15551234567"}))

	err := v.Validate(settingsRequest{Language: "fr", Phone: "0123"})
	require.Error(t, err)
	msgs := v.FormatValidationErrors(err)
	assert.Equal(t, "Language must be one of en ar", msgs["Language"])
	assert.Equal(t, "Phone must be an international phone number", msgs["Phone"])
}

func TestCustomValidator_Var(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Var("alex", "min=2"))
	err := v.Var("a", "min=2")
	require.Error(t, err)
	assert.Equal(t, "min", FailedTag(err))

	assert.NoError(t, v.VarWithValue("secret", "secret", "eqfield"))
	assert.Equal(t, "eqfield", FailedTag(v.VarWithValue("secret", "other", "eqfield")))
	assert.Equal(t, "", FailedTag(nil))
}
