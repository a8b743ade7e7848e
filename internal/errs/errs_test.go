package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{Invalid("name", "required"), http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", Invalid("x", "y")), http.StatusBadRequest},
		{&LimitError{Plan: "Essencial", Limit: 1, Message: "upgrade"}, http.StatusForbidden},
		{&AuthorizationError{Message: "inactive"}, http.StatusUnauthorized},
		{ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("pet: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: timeout", ErrUpstream), http.StatusBadGateway},
		{fmt.Errorf("login: %w", ErrNotConfigured), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		require.Equal(t, c.want, HTTPStatus(c.err), "err=%v", c.err)
	}
}

func TestToBody(t *testing.T) {
	b := ToBody(Invalid("password", "must be at least 6 characters"))
	require.Equal(t, "password", b.Field)
	require.Equal(t, "must be at least 6 characters", b.Error)

	b = ToBody(&AuthorizationError{Message: "email not authorized", Guidance: "https://wa.me/1"})
	require.Equal(t, "https://wa.me/1", b.Guidance)

	require.Equal(t, "internal error", ToBody(errors.New("secret detail")).Error)
	require.Equal(t, "backend unavailable, nothing was changed", ToBody(ErrUpstream).Error)
}
