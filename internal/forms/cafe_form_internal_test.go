package forms

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldError_UnknownRule(t *testing.T) {
	v := NewValidator()

	err := v.validate.Struct(struct {
		Email string `json:"email" validate:"email"`
	}{Email: "not-an-email"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)

	fe := fieldError(verrs[0])
	assert.Equal(t, "email", fe.Field)
	assert.Equal(t, CodeInvalidValue, fe.Code)
	assert.ErrorIs(t, fe, ErrInvalidValue)
	assert.NotErrorIs(t, fe, ErrInvalidChoice)
	assert.Contains(t, fe.Kind.Error(), `"email"`)
}

func TestChecked_OffSpellings(t *testing.T) {
	for _, raw := range []string{"", "false", "FALSE", "0", "off", "no", "n", " No "} {
		assert.False(t, checked(raw), raw)
	}
	for _, raw := range []string{"y", "on", "true", "1", "yes"} {
		assert.True(t, checked(raw), raw)
	}
}
