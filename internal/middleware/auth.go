package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eraywen/lumen-blog/internal/service/auth"
)

const (
	callerContextKey = "caller"
	guestIDHeader    = "X-Guest-ID"
)

// AuthMiddleware 认证中间件
// 每个请求只在这里求值一次调用方身份，随后显式传递，
// 其他组件不再各自从环境推导认证状态
func AuthMiddleware(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if err := authSvc.ValidateToken(token); err == nil {
				c.Set(callerContextKey, auth.AdminCaller())
				c.Next()
				return
			}
			// Token 无效时按访客继续
		}

		clientID := c.GetHeader(guestIDHeader)
		if clientID == "" {
			clientID = uuid.New().String()
		}
		// 回传访客标识，客户端持有后续请求复用
		c.Header(guestIDHeader, clientID)
		c.Set(callerContextKey, auth.GuestCaller(clientID))
		c.Next()
	}
}

// RequireAdmin 仅管理员可访问的中间件
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CallerFrom(c).IsAdmin {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    -1,
				"message": "admin authentication required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerFrom 从上下文获取调用方身份
func CallerFrom(c *gin.Context) auth.Caller {
	if v, exists := c.Get(callerContextKey); exists {
		if caller, ok := v.(auth.Caller); ok {
			return caller
		}
	}
	return auth.GuestCaller("")
}
