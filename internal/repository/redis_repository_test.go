package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netqa-go/pkg/testhelpers"
)

func TestHotQuestionRepository(t *testing.T) {
	rdb, _ := testhelpers.NewTestRedis(t)
	repo := NewHotQuestionRepository(rdb)
	ctx := context.Background()

	clicks, err := repo.GetClicks(ctx)
	require.NoError(t, err)
	assert.Empty(t, clicks)

	n, err := repo.IncrementClick(ctx, "1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = repo.IncrementClick(ctx, "1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	_, err = repo.IncrementClick(ctx, "3")
	require.NoError(t, err)

	clicks, err = repo.GetClicks(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"1": 2, "3": 1}, clicks)
}

func TestTokenBlacklistRepository(t *testing.T) {
	rdb, mr := testhelpers.NewTestRedis(t)
	repo := NewTokenBlacklistRepository(rdb)
	ctx := context.Background()

	ok, err := repo.Contains(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Add(ctx, "tok", time.Minute))
	ok, err = repo.Contains(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("blacklist:tok"))

	mr.FastForward(2 * time.Minute)
	ok, err = repo.Contains(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Add(ctx, "expired", 0))
	assert.False(t, mr.Exists("blacklist:expired"))
}
