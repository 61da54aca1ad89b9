package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{InvalidInput("bad rating"), http.StatusBadRequest},
		{Unauthorized("token expired"), http.StatusUnauthorized},
		{Forbidden("not your resource"), http.StatusForbidden},
		{NotFound("class not found"), http.StatusNotFound},
		{Conflict("duplicate code"), http.StatusConflict},
		{Internal("boom"), http.StatusInternalServerError},
		{errors.New("driver: bad connection"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusOf(tc.err), tc.err.Error())
	}
}

func TestStatusOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("creating membership: %w", Conflict("user already has an active membership"))
	assert.Equal(t, http.StatusConflict, StatusOf(err))

	e, ok := AsError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeConflict, e.Code)
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("reservation %d not found", 42)
	assert.Equal(t, "reservation 42 not found", err.Error())
}
