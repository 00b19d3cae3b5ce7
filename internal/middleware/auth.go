// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"netqa-go/internal/service"
	"netqa-go/pkg/apperrors"
	"netqa-go/pkg/log"
)

// 上下文中保存认证结果使用的 key。
const (
	ContextUserKey       = "user"
	ContextClaimsKey     = "claims"
	ContextCredentialKey = "credential"
)

// AuthMiddleware 创建一个 Gin 中间件，用于 JWT 认证。
// 校验通过后将完整的 User 对象存入 Gin 的上下文中；任何失败都返回 401，后续处理器不会执行。
func AuthMiddleware(verifier service.CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, err := verifier.Verify(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			status := apperrors.HTTPStatus(err)
			if status != http.StatusUnauthorized {
				log.Error("[AuthMiddleware] credential verification failed", err)
			}
			c.AbortWithStatusJSON(status, gin.H{"code": status, "message": unauthorizedMessage(err), "data": nil})
			return
		}

		c.Set(ContextUserKey, cred.User)
		c.Set(ContextClaimsKey, cred.Claims)
		c.Set(ContextCredentialKey, cred)
		c.Next()
	}
}

// CredentialFrom 取出 AuthMiddleware 写入的认证结果。
func CredentialFrom(c *gin.Context) (*service.Credential, bool) {
	v, ok := c.Get(ContextCredentialKey)
	if !ok {
		return nil, false
	}
	cred, ok := v.(*service.Credential)
	return cred, ok
}

func unauthorizedMessage(err error) string {
	switch {
	case apperrors.HTTPStatus(err) != http.StatusUnauthorized:
		return "internal server error"
	case errors.Is(err, service.ErrMissingCredential):
		return "Not authenticated"
	case errors.Is(err, service.ErrMalformedCredential):
		return "Invalid authentication scheme"
	case errors.Is(err, service.ErrUnknownSubject):
		return "User not found"
	default:
		return "Could not validate credentials"
	}
}
