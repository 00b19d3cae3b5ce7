// Package token 提供了用于生成和验证 JSON Web Tokens (JWT) 的功能。
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSubject 表示 token 中没有 sub 声明。
var ErrMissingSubject = errors.New("token has no subject")

// JWTManager 负责管理 JWT 的生成和验证。
type JWTManager struct {
	secretKey      []byte            // secretKey 用于签名和验证 token 的密钥
	method         jwt.SigningMethod // method 是配置的 HMAC 签名算法
	accessTokenDur time.Duration     // accessTokenDur 定义了 access token 的有效期
}

// CustomClaims 定义了 JWT 中携带的用户信息。
// 用户 ID 放在标准的 sub 声明中。
type CustomClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewJWTManager 创建一个新的 JWTManager 实例。
// algorithm 只接受 HS256、HS384、HS512。
func NewJWTManager(secret, algorithm string, accessTokenExpireHours int) (*JWTManager, error) {
	var method jwt.SigningMethod
	switch algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &JWTManager{
		secretKey:      []byte(secret),
		method:         method,
		accessTokenDur: time.Hour * time.Duration(accessTokenExpireHours),
	}, nil
}

// GenerateToken 为用户签发 access token，过期时间为签发时间加上配置的有效期。
func (m *JWTManager) GenerateToken(userID, email, username string) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		Email:    email,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenDur)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(m.method, claims).SignedString(m.secretKey)
}

// VerifyToken 验证 token 的签名、算法与有效期，并要求存在 sub 声明。
func (m *JWTManager) VerifyToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 检查签名方法是否为 HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	},
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

// GenerateRandomString generates a random hex string of a given length in bytes.
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}
