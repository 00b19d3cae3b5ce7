// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"netqa-go/pkg/apperrors"
	"netqa-go/pkg/log"
)

// respond 按统一的 {code, message, data} 结构返回。
func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
		"data":    data,
	})
}

// respondError 将业务错误映射为 HTTP 状态码。未分类的错误只返回通用信息，完整错误写入日志。
func respondError(c *gin.Context, op string, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Errorw(op+" failed", "path", c.Request.URL.Path, "error", err)
		respond(c, status, "internal server error", nil)
		return
	}
	log.Warnf("%s: %v", op, err)
	respond(c, status, clientMessage(err), nil)
}

// clientMessage 去掉错误分类前缀，例如 "bad request: content is required" -> "content is required"。
func clientMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{apperrors.ErrBadRequest, apperrors.ErrUnauthorized, apperrors.ErrNotFound, apperrors.ErrConflict} {
		if errors.Is(err, sentinel) {
			msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
			break
		}
	}
	return msg
}

func badRequest(c *gin.Context, op string, err error) {
	log.Warnf("%s: invalid request payload, error: %v", op, err)
	respond(c, http.StatusBadRequest, "invalid request payload", nil)
}

// pagination 解析 skip/limit 查询参数，非法值回退为默认值，limit 不超过 maxLimit。
func pagination(c *gin.Context, defaultLimit, maxLimit int) (int, int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}
