package repository

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Repositories 仓库集合，用于统一管理所有仓库
// db 可以为 nil（存储未配置），各仓库按降级策略处理
type Repositories struct {
	DB       *gorm.DB
	Article  *ArticleRepository
	Project  *ProjectRepository
	Setting  *SettingRepository
	Chat     *ChatRepository
	Guest    *GuestChatStore
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB, rdb *redis.Client) *Repositories {
	return &Repositories{
		DB:      db,
		Article: NewArticleRepository(db),
		Project: NewProjectRepository(db),
		Setting: NewSettingRepository(db),
		Chat:    NewChatRepository(db),
		Guest:   NewGuestChatStore(rdb),
	}
}
