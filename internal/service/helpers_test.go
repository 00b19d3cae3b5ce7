package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"netqa-go/internal/model"
	"netqa-go/internal/repository"
	"netqa-go/pkg/token"
)

func newJWTManager(t *testing.T) *token.JWTManager {
	t.Helper()
	m, err := token.NewJWTManager("test-secret", "HS256", 24)
	require.NoError(t, err)
	return m
}

func registerUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	svc := NewUserService(repository.NewUserRepository(db), nil, newJWTManager(t))
	u, err := svc.Register(context.Background(), username, username+"@example.com", "secret-"+username)
	require.NoError(t, err)
	return u
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}
