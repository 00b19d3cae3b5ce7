package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netqa-go/internal/model"
	"netqa-go/internal/repository"
	"netqa-go/pkg/apperrors"
	"netqa-go/pkg/hash"
	"netqa-go/pkg/log"
	"netqa-go/pkg/token"
)

var (
	ErrEmailTaken         = fmt.Errorf("%w: Email already registered", apperrors.ErrConflict)
	ErrUsernameTaken      = fmt.Errorf("%w: Username already taken", apperrors.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: Invalid credentials", apperrors.ErrUnauthorized)
	ErrUserNotFound       = fmt.Errorf("%w: User not found", apperrors.ErrNotFound)
)

// LoginResult 是登录成功后返回给客户端的内容。
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, tokenString string) error
	List(ctx context.Context, skip, limit int) ([]model.User, int64, error)
	Get(ctx context.Context, userID string) (*model.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	blacklist  repository.TokenBlacklistRepository
	jwtManager *token.JWTManager
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, blacklist repository.TokenBlacklistRepository, jwtManager *token.JWTManager) UserService {
	return &userService{
		userRepo:   userRepo,
		blacklist:  blacklist,
		jwtManager: jwtManager,
	}
}

// Register 处理用户注册的业务逻辑。
func (s *userService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	// 1. 检查邮箱与用户名是否已存在
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 对密码进行哈希处理
	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 3. 写入数据库，并发注册时由唯一索引兜底
	newUser := &model.User{
		UserID:         uuid.NewString(),
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email or username already registered", apperrors.ErrConflict)
		}
		return nil, err
	}

	log.Infof("[UserService] user registered, userId: %s", newUser.UserID)
	return newUser, nil
}

// Login 校验邮箱与密码并签发 token。未知邮箱与错误密码返回相同的错误。
func (s *userService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash.CompareDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPasswordHash(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateToken(user.UserID, user.Email, user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
		UserID:      user.UserID,
		Username:    user.Username,
		Email:       user.Email,
	}, nil
}

// Logout 将 token 加入 Redis 黑名单，过期时间为 token 的剩余有效期。
func (s *userService) Logout(ctx context.Context, tokenString string) error {
	if s.blacklist == nil {
		return errors.New("token blacklist is not configured")
	}
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		return ErrInvalidToken
	}
	return s.blacklist.Add(ctx, tokenString, time.Until(claims.ExpiresAt.Time))
}

func (s *userService) List(ctx context.Context, skip, limit int) ([]model.User, int64, error) {
	return s.userRepo.FindWithPagination(ctx, skip, limit)
}

func (s *userService) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
