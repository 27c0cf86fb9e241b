// internal/pkg/apperr/errors_test.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", NotFound("Order not found", nil), http.StatusNotFound},
		{"invalid state", InvalidState("Checkout already in progress", nil), http.StatusBadRequest},
		{"invalid argument", InvalidArgument("Invalid shipping method", nil), http.StatusBadRequest},
		{"auth", Auth("Incorrect username or password", nil), http.StatusUnauthorized},
		{"conflict", Conflict("Username or Email is already registered", nil), http.StatusConflict},
		{"internal", Internal("failed to query database", errors.New("connection refused")), http.StatusInternalServerError},
		{"plain error", errors.New("something broke"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	require.Equal(t, "Order not found", Message(NotFound("Order not found", nil)))
	require.Equal(t, "Cart is empty or does not exist", Message(InvalidState("Cart is empty or does not exist", nil)))

	// Unclassified failures never leak internals to clients
	require.Equal(t, "Internal server error", Message(Internal("failed to query database", errors.New("connection refused"))))
	require.Equal(t, "Internal server error", Message(errors.New("raw driver error")))
}

func TestErrorsIs(t *testing.T) {
	err := NotFound("User not found", errors.New("record not found"))
	require.True(t, errors.Is(err, ErrNotFound))
	require.False(t, errors.Is(err, ErrConflict))

	// Kind survives further wrapping
	wrapped := fmt.Errorf("loading profile: %w", err)
	require.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("record not found")
	err := NotFound("User not found", cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "User not found")
	require.Contains(t, err.Error(), "record not found")
}
