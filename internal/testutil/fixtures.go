// Package testutil 提供测试辅助工具
package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eraywen/lumen-blog/internal/model"
)

// Article 构造一篇已发布的测试文章
func Article(title string) *model.Article {
	now := time.Now()
	return &model.Article{
		ID:          uuid.New().String(),
		Title:       title,
		Summary:     "测试摘要",
		Content:     "测试正文内容",
		Tags:        model.TagList{"Go", "测试"},
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DraftArticle 构造一篇未发布的测试文章
func DraftArticle(title string) *model.Article {
	a := Article(title)
	a.IsPublished = false
	return a
}

// Project 构造一个预设图标的测试项目
func Project(title string) *model.Project {
	return &model.Project{
		ID:          uuid.New().String(),
		Title:       title,
		Description: "测试项目描述",
		URL:         "https://example.com/" + title,
		IconType:    model.IconTypePreset,
		PresetIcon:  "Code",
	}
}

// Session 构造一个测试会话
func Session(title string) *model.ChatSession {
	now := time.Now()
	return &model.ChatSession{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Message 构造一条测试消息
func Message(sessionID, role, content string) *model.ChatMessage {
	return &model.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// Dialogue 构造一段 user/assistant 交替的会话记录
func Dialogue(sessionID string, turns int) []*model.ChatMessage {
	messages := make([]*model.ChatMessage, 0, turns*2)
	for i := 0; i < turns; i++ {
		messages = append(messages,
			Message(sessionID, model.RoleUser, fmt.Sprintf("问题 %d", i+1)),
			Message(sessionID, model.RoleAssistant, fmt.Sprintf("回答 %d", i+1)),
		)
	}
	return messages
}
