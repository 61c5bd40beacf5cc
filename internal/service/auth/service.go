// Package auth 提供管理员凭证校验与会话令牌
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/eraywen/lumen-blog/internal/config"
)

var (
	// ErrInvalidCredentials 凭证错误，不区分用户名错还是密码错
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrNotConfigured 管理员密码未配置
	ErrNotConfigured = errors.New("系统配置错误：未设置管理员密码")
)

// 令牌有效期：勾选“记住我”对应持久会话，否则对应标签页级会话
const (
	rememberTokenTTL = 30 * 24 * time.Hour
	sessionTokenTTL  = 12 * time.Hour
)

// Caller 一次请求的调用方身份
// 在应用入口处求值一次，显式传递给下游组件，只有登录/登出流程改变它
type Caller struct {
	IsAdmin bool
	Key     string // 管理员固定为 admin，访客为其客户端标识
}

// AdminCaller 管理员调用方
func AdminCaller() Caller {
	return Caller{IsAdmin: true, Key: "admin"}
}

// GuestCaller 访客调用方
func GuestCaller(clientID string) Caller {
	return Caller{Key: clientID}
}

// Service 认证服务
type Service struct {
	username     string
	passwordHash []byte
	secret       []byte
	configured   bool
}

// NewService 创建认证服务
// 管理员密码启动时即哈希，登录只做哈希比对
func NewService(cfg *config.Config) *Service {
	s := &Service{username: cfg.Admin.Username}

	if cfg.Admin.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Warning: failed to hash admin password: %v", err)
		} else {
			s.passwordHash = hash
			s.configured = true
		}
	}

	if cfg.Auth.JWTSecret != "" {
		s.secret = []byte(cfg.Auth.JWTSecret)
	} else {
		s.secret = make([]byte, 32)
		if _, err := rand.Read(s.secret); err != nil {
			panic(fmt.Sprintf("failed to generate JWT secret: %v", err))
		}
	}

	return s
}

// Login 校验凭证并签发令牌
// remember 决定令牌有效期；凭证错误统一返回 ErrInvalidCredentials
func (s *Service) Login(username, password string, remember bool) (string, error) {
	if !s.configured {
		return "", ErrNotConfigured
	}

	if username != s.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	ttl := sessionTokenTTL
	if remember {
		ttl = rememberTokenTTL
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken 校验令牌，通过则调用方是管理员
func (s *Service) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
