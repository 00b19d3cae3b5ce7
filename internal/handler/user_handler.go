package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netqa-go/internal/middleware"
	"netqa-go/internal/service"
	"netqa-go/pkg/log"
)

// UserHandler 负责处理所有与用户相关的 API 请求。
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例。
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest 定义了用户注册 API 的请求体结构。
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 处理用户注册请求。
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Register", err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, "Register", err)
		return
	}

	log.Infof("User '%s' registered successfully", user.Username)
	respond(c, http.StatusCreated, "User registered successfully", user)
}

// LoginRequest 定义了用户登录 API 的请求体结构。
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理用户登录请求，成功后返回 bearer token。
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Login", err)
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "Login", err)
		return
	}

	log.Infof("User '%s' logged in successfully", result.Username)
	respond(c, http.StatusOK, "Login successful", result)
}

// Logout 将当前请求携带的 token 加入黑名单。
func (h *UserHandler) Logout(c *gin.Context) {
	cred, ok := middleware.CredentialFrom(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	if err := h.userService.Logout(c.Request.Context(), cred.Token); err != nil {
		respondError(c, "Logout", err)
		return
	}

	log.Infof("User '%s' logged out successfully", cred.User.Username)
	respond(c, http.StatusOK, "Logout successful", nil)
}

// List 分页列出用户。
func (h *UserHandler) List(c *gin.Context) {
	skip, limit := pagination(c, 100, 100)
	users, total, err := h.userService.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, "ListUsers", err)
		return
	}
	respond(c, http.StatusOK, "success", gin.H{"items": users, "total": total})
}

// Get 按 ID 获取用户。
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetUser", err)
		return
	}
	respond(c, http.StatusOK, "success", user)
}
