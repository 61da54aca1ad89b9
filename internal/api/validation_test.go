package api

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingMessage_ValidatorErrors(t *testing.T) {
	type payload struct {
		Email  string `validate:"required,email"`
		Rating int    `validate:"min=1,max=5"`
		Plan   string `validate:"oneof=monthly annual"`
	}

	err := validator.New().Struct(payload{Email: "not-an-email", Rating: 9, Plan: "weekly"})
	require.Error(t, err)

	msg := BindingMessage(err)
	assert.Contains(t, msg, "Email must be a valid email address")
	assert.Contains(t, msg, "Rating must be at most 5")
	assert.Contains(t, msg, "Plan must be one of [monthly annual]")
}

func TestBindingMessage_PassesOtherErrorsThrough(t *testing.T) {
	err := errors.New("unexpected EOF")
	assert.Equal(t, "unexpected EOF", BindingMessage(err))
}
