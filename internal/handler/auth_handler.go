package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eraywen/lumen-blog/internal/service"
	"github.com/eraywen/lumen-blog/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.Services
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// Login 管理员登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	token, err := h.svc.Auth.Login(req.Username, req.Password, req.Remember)
	if err != nil {
		if errors.Is(err, auth.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, Response{Code: -1, Message: err.Error()})
			return
		}
		// 用户名错与密码错不作区分
		c.JSON(http.StatusUnauthorized, Response{Code: -1, Message: auth.ErrInvalidCredentials.Error()})
		return
	}

	success(c, gin.H{"token": token})
}

// Logout 登出，令牌由客户端丢弃
func (h *AuthHandler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
