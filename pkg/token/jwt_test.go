package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager("test-secret", "HS256", 24)
	require.NoError(t, err)
	return m
}

func TestGenerateAndVerify(t *testing.T) {
	m := newManager(t)

	tok, err := m.GenerateToken("user-1", "a@x.com", "alice")
	require.NoError(t, err)

	claims, err := m.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyToken_Rejects(t *testing.T) {
	m := newManager(t)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewJWTManager("other-secret", "HS256", 24)
		require.NoError(t, err)
		tok, err := other.GenerateToken("user-1", "a@x.com", "alice")
		require.NoError(t, err)

		_, err = m.VerifyToken(tok)
		assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
	})

	t.Run("expired", func(t *testing.T) {
		expired := &JWTManager{secretKey: m.secretKey, method: m.method, accessTokenDur: -time.Hour}
		tok, err := expired.GenerateToken("user-1", "a@x.com", "alice")
		require.NoError(t, err)

		_, err = m.VerifyToken(tok)
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})

	t.Run("other algorithm", func(t *testing.T) {
		hs512, err := NewJWTManager("test-secret", "HS512", 24)
		require.NoError(t, err)
		tok, err := hs512.GenerateToken("user-1", "a@x.com", "alice")
		require.NoError(t, err)

		_, err = m.VerifyToken(tok)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		tok, err := m.GenerateToken("", "a@x.com", "alice")
		require.NoError(t, err)

		_, err = m.VerifyToken(tok)
		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.VerifyToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestNewJWTManager_Validation(t *testing.T) {
	_, err := NewJWTManager("s", "RS256", 24)
	assert.Error(t, err)

	_, err = NewJWTManager("", "HS256", 24)
	assert.Error(t, err)
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(4)
	b := GenerateRandomString(4)
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}
