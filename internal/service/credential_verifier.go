// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"netqa-go/internal/model"
	"netqa-go/internal/repository"
	"netqa-go/pkg/apperrors"
	"netqa-go/pkg/log"
	"netqa-go/pkg/token"
)

// 凭证校验失败的四种原因，均映射为 401。
var (
	ErrMissingCredential   = fmt.Errorf("%w: authorization header missing", apperrors.ErrUnauthorized)
	ErrMalformedCredential = fmt.Errorf("%w: invalid authentication scheme", apperrors.ErrUnauthorized)
	ErrInvalidToken        = fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	ErrUnknownSubject      = fmt.Errorf("%w: user not found", apperrors.ErrUnauthorized)
)

// Credential 是一次成功校验的结果。
type Credential struct {
	User   *model.User
	Claims *token.CustomClaims
	Token  string
}

// CredentialVerifier 将 Authorization 头解析为已认证的用户。
type CredentialVerifier interface {
	Verify(ctx context.Context, authorization string) (*Credential, error)
}

type credentialVerifier struct {
	jwtManager *token.JWTManager
	userRepo   repository.UserRepository
	blacklist  repository.TokenBlacklistRepository
}

// NewCredentialVerifier 创建校验器。blacklist 为 nil 时不检查登出状态。
func NewCredentialVerifier(jwtManager *token.JWTManager, userRepo repository.UserRepository, blacklist repository.TokenBlacklistRepository) CredentialVerifier {
	return &credentialVerifier{jwtManager: jwtManager, userRepo: userRepo, blacklist: blacklist}
}

// ParseBearer 从 "Bearer <token>" 中取出 token，scheme 不区分大小写。
func ParseBearer(authorization string) (string, error) {
	if strings.TrimSpace(authorization) == "" {
		return "", ErrMissingCredential
	}
	parts := strings.Fields(authorization)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMalformedCredential
	}
	return parts[1], nil
}

func (v *credentialVerifier) Verify(ctx context.Context, authorization string) (*Credential, error) {
	tokenString, err := ParseBearer(authorization)
	if err != nil {
		return nil, err
	}

	claims, err := v.jwtManager.VerifyToken(tokenString)
	if err != nil {
		log.Warnf("[CredentialVerifier] token rejected: %v", err)
		return nil, ErrInvalidToken
	}

	if v.blacklist != nil {
		revoked, err := v.blacklist.Contains(ctx, tokenString)
		if err != nil {
			log.Error("[CredentialVerifier] blacklist lookup failed", err)
			return nil, ErrInvalidToken
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}

	user, err := v.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("load user %s: %w", claims.Subject, err)
	}

	return &Credential{User: user, Claims: claims, Token: tokenString}, nil
}
