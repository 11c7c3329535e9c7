package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "PARTNER", "partner-9", "secret", time.Minute, "test-issuer")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "PARTNER", claims.Role)
	assert.Equal(t, "partner-9", claims.PartnerID)
	assert.Equal(t, "test-issuer", claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateJWT("user-1", "ADMIN", "", "secret", time.Minute, "iss")
		require.NoError(t, err)
		_, err = ParseAndValidateJWT(token, "other")
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateJWT("user-1", "ADMIN", "", "secret", -time.Minute, "iss")
		require.NoError(t, err)
		_, err = ParseAndValidateJWT(token, "secret")
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseAndValidateJWT("not-a-token", "secret")
		assert.Error(t, err)
	})
}
