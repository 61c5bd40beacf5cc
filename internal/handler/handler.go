// Package handler 提供 HTTP 处理器，是各服务的薄消费层
package handler

import (
	"github.com/eraywen/lumen-blog/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth    *AuthHandler
	Article *ArticleHandler
	Project *ProjectHandler
	Setting *SettingHandler
	AI      *AIHandler
	Chat    *ChatHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(svc),
		Article: NewArticleHandler(svc),
		Project: NewProjectHandler(svc),
		Setting: NewSettingHandler(svc),
		AI:      NewAIHandler(svc),
		Chat:    NewChatHandler(svc),
	}
}
