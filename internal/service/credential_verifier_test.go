package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netqa-go/internal/repository"
	"netqa-go/pkg/apperrors"
	"netqa-go/pkg/testhelpers"
)

func TestParseBearer(t *testing.T) {
	tok, err := ParseBearer("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = ParseBearer("bEaReR abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = ParseBearer("")
	assert.ErrorIs(t, err, ErrMissingCredential)
	_, err = ParseBearer("Basic abc")
	assert.ErrorIs(t, err, ErrMalformedCredential)
	_, err = ParseBearer("Bearer a b")
	assert.ErrorIs(t, err, ErrMalformedCredential)
	_, err = ParseBearer("Bearer")
	assert.ErrorIs(t, err, ErrMalformedCredential)
}

func TestVerify(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	rdb, mr := testhelpers.NewTestRedis(t)
	jwtManager := newJWTManager(t)
	userRepo := repository.NewUserRepository(db)
	blacklist := repository.NewTokenBlacklistRepository(rdb)
	verifier := NewCredentialVerifier(jwtManager, userRepo, blacklist)
	ctx := context.Background()

	alice := registerUser(t, db, "alice")
	tok, err := jwtManager.GenerateToken(alice.UserID, alice.Email, alice.Username)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		cred, err := verifier.Verify(ctx, "Bearer "+tok)
		require.NoError(t, err)
		assert.Equal(t, alice.UserID, cred.User.UserID)
		assert.Equal(t, tok, cred.Token)
		assert.Equal(t, "alice", cred.Claims.Username)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := verifier.Verify(ctx, "Bearer not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown subject", func(t *testing.T) {
		ghost, err := jwtManager.GenerateToken("ghost-id", "ghost@example.com", "ghost")
		require.NoError(t, err)
		_, err = verifier.Verify(ctx, "Bearer "+ghost)
		assert.ErrorIs(t, err, ErrUnknownSubject)
	})

	t.Run("every failure is unauthorized", func(t *testing.T) {
		for _, header := range []string{"", "Token x", "Bearer x"} {
			_, err := verifier.Verify(ctx, header)
			assert.True(t, errors.Is(err, apperrors.ErrUnauthorized), header)
		}
	})

	t.Run("blacklisted", func(t *testing.T) {
		other, err := jwtManager.GenerateToken(alice.UserID, alice.Email, alice.Username+"-2")
		require.NoError(t, err)
		require.NoError(t, blacklist.Add(ctx, other, time.Hour))

		_, err = verifier.Verify(ctx, "Bearer "+other)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("blacklist unavailable fails closed", func(t *testing.T) {
		mr.Close()
		_, err := verifier.Verify(ctx, "Bearer "+tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
