// internal/pkg/auth/password_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	hash, err := manager.HashPassword("supersecret1")
	require.NoError(t, err)
	require.NotEqual(t, "supersecret1", hash)

	require.NoError(t, manager.VerifyPassword("supersecret1", hash))
	require.Error(t, manager.VerifyPassword("wrongpassword", hash))
}

func TestValidatePassword(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	require.Error(t, manager.ValidatePassword("short"))
	require.NoError(t, manager.ValidatePassword("12345678"))

	long := make([]byte, 129)
	for i := range long {
		long[i] = 'a'
	}
	require.Error(t, manager.ValidatePassword(string(long)))
}

func TestHashPasswordRejectsWeakPassword(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	_, err := manager.HashPassword("short")
	require.Error(t, err)
}

func TestGenerateVerificationCode(t *testing.T) {
	code, err := GenerateVerificationCode()
	require.NoError(t, err)
	require.NotEmpty(t, code)

	// URL-safe, no padding
	require.NotContains(t, code, "=")
	require.NotContains(t, code, "+")
	require.NotContains(t, code, "/")

	other, err := GenerateVerificationCode()
	require.NoError(t, err)
	require.NotEqual(t, code, other)
}
