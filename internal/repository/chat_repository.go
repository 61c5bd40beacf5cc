package repository

import (
	"context"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eraywen/lumen-blog/internal/model"
)

// ChatRepository 管理员聊天历史数据访问（远程存储）
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建聊天仓库
func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// ListSessions 列出会话，按更新时间倒序
func (r *ChatRepository) ListSessions(ctx context.Context) ([]*model.ChatSession, error) {
	if r.db == nil {
		return []*model.ChatSession{}, nil
	}
	var sessions []*model.ChatSession
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&sessions).Error; err != nil {
		log.Printf("Error listing chat sessions: %v", err)
		return []*model.ChatSession{}, nil
	}
	return sessions, nil
}

// GetSession 获取会话，未找到返回 nil
func (r *ChatRepository) GetSession(ctx context.Context, id string) (*model.ChatSession, error) {
	if r.db == nil {
		return nil, nil
	}
	var session model.ChatSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("Error fetching chat session %s: %v", id, err)
		}
		return nil, nil
	}
	return &session, nil
}

// GetMessages 获取会话消息，按时间升序
func (r *ChatRepository) GetMessages(ctx context.Context, sessionID string) ([]*model.ChatMessage, error) {
	if r.db == nil {
		return []*model.ChatMessage{}, nil
	}
	var messages []*model.ChatMessage
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at ASC").Find(&messages).Error
	if err != nil {
		log.Printf("Error fetching chat messages for %s: %v", sessionID, err)
		return []*model.ChatMessage{}, nil
	}
	return messages, nil
}

// SaveSession 保存会话及其完整消息列表
// 持久化中 id 不在提交列表里的消息被删除，实现对话回退的存储同步
func (r *ChatRepository) SaveSession(ctx context.Context, session *model.ChatSession, messages []*model.ChatMessage) error {
	if r.db == nil {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "system_prompt", "updated_at"}),
		}).Create(session).Error; err != nil {
			return err
		}

		// 回退语义：先删除不在当前列表中的持久化消息
		ids := make([]string, 0, len(messages))
		for _, m := range messages {
			ids = append(ids, m.ID)
		}
		if len(ids) > 0 {
			if err := tx.Where("session_id = ? AND id NOT IN ?", session.ID, ids).
				Delete(&model.ChatMessage{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("session_id = ?", session.ID).
				Delete(&model.ChatMessage{}).Error; err != nil {
				return err
			}
		}

		for _, m := range messages {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"content"}),
			}).Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error saving chat session %s: %v", session.ID, err)
	}
	return nil
}

// DeleteSession 删除会话，消息由外键级联删除
func (r *ChatRepository) DeleteSession(ctx context.Context, id string) error {
	if r.db == nil {
		return nil
	}
	if err := r.db.WithContext(ctx).Delete(&model.ChatSession{}, "id = ?", id).Error; err != nil {
		log.Printf("Error deleting chat session %s: %v", id, err)
	}
	return nil
}
