package service

import (
	"context"

	"github.com/eraywen/lumen-blog/internal/config"
	"github.com/eraywen/lumen-blog/internal/repository"
	"github.com/eraywen/lumen-blog/internal/service/auth"
	"github.com/eraywen/lumen-blog/internal/service/chat"
	"github.com/eraywen/lumen-blog/internal/service/completion"
	"github.com/eraywen/lumen-blog/internal/service/content"
	"github.com/eraywen/lumen-blog/internal/service/setting"
)

// Services 服务集合
type Services struct {
	Auth       *auth.Service
	Chat       *chat.Service
	Completion *completion.Service
	Content    *content.Service
	Setting    *setting.Service

	Config *config.Config
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config) *Services {
	completionSvc := completion.NewService(context.Background(), cfg)

	guestStore := func(clientID string) chat.Store {
		return repo.Guest.For(clientID)
	}

	return &Services{
		Auth:       auth.NewService(cfg),
		Chat:       chat.NewService(repo.Chat, guestStore, completionSvc),
		Completion: completionSvc,
		Content:    content.NewService(repo),
		Setting:    setting.NewService(repo.Setting),
		Config:     cfg,
	}
}
