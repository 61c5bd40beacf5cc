package model

import "time"

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatSession 聊天会话
type ChatSession struct {
	ID               string        `json:"id" gorm:"primaryKey;size:36"`
	Title            string        `json:"title" gorm:"size:255"`
	SystemPrompt     string        `json:"system_prompt,omitempty" gorm:"type:text"`
	ArticleContextID string        `json:"article_context_id,omitempty" gorm:"size:36"`
	CreatedAt        time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time     `json:"updated_at" gorm:"autoUpdateTime;index"`
	Messages         []ChatMessage `json:"-" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// ChatMessage 聊天消息
type ChatMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	SessionID string    `json:"session_id" gorm:"index;size:36"`
	Role      string    `json:"role" gorm:"size:20"` // user, assistant, system
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName 指定表名
func (ChatSession) TableName() string {
	return "chat_sessions"
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
