package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS 按配置的来源放行跨域请求，allowedOrigins 含 "*" 时回显请求来源但不放行凭证。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; ok || allowAll {
				header := c.Writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				// 通配时不允许携带凭证
				if !allowAll {
					header.Set("Access-Control-Allow-Credentials", "true")
				}
				header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				header.Add("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
