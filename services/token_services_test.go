package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"api/utils/apperr"
)

func TestTokenService(t *testing.T) {
	t.Run("round trip returns the subject", func(t *testing.T) {
		tokens := NewTokenService("test-secret", time.Hour)
		token, err := tokens.Generate("user-123")
		require.NoError(t, err)

		userID, err := tokens.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "user-123", userID)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		tokens := NewTokenService("test-secret", -time.Minute)
		token, err := tokens.Generate("user-123")
		require.NoError(t, err)

		_, err = tokens.Verify(token)
		require.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		minted := NewTokenService("secret-a", time.Hour)
		token, err := minted.Generate("user-123")
		require.NoError(t, err)

		verifier := NewTokenService("secret-b", time.Hour)
		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		tokens := NewTokenService("test-secret", time.Hour)
		_, err := tokens.Verify("definitely.not.a-token")
		require.ErrorIs(t, err, apperr.ErrUnauthorized)
	})
}
