package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("user-1", "teacher", "issuer", "key", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "key", "issuer")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "teacher", claims.Role)
}

func TestParseTokenRejects(t *testing.T) {
	token, err := IssueToken("user-1", "teacher", "issuer", "key", time.Hour)
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := ParseToken(token, "other-key", "issuer")
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := ParseToken(token, "key", "other-issuer")
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := IssueToken("user-1", "teacher", "issuer", "key", -time.Minute)
		require.NoError(t, err)
		_, err = ParseToken(expired, "key", "issuer")
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken("not-a-token", "key", "issuer")
		assert.Error(t, err)
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22222")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22222", hash)
	assert.True(t, CheckPasswordHash("hunter22222", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
