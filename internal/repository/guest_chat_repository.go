package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/eraywen/lumen-blog/internal/model"
)

const (
	guestSessionsKeyFmt = "guest:%s:sessions"
	guestMessagesKeyFmt = "guest:%s:messages:%s"
)

// GuestChatStore 访客聊天历史存储
// 以访客标识为命名空间存放在 Redis，与管理员的远程存储完全隔离。
// 会话列表与消息列表都是整体读取/整体替换，不做局部更新。
type GuestChatStore struct {
	rdb *redis.Client
}

// NewGuestChatStore 创建访客聊天存储
func NewGuestChatStore(rdb *redis.Client) *GuestChatStore {
	return &GuestChatStore{rdb: rdb}
}

// For 返回绑定到指定访客的会话存储视图
func (s *GuestChatStore) For(clientID string) *GuestSessionStore {
	return &GuestSessionStore{rdb: s.rdb, clientID: clientID}
}

// GuestSessionStore 单个访客的聊天历史视图
type GuestSessionStore struct {
	rdb      *redis.Client
	clientID string
}

func (s *GuestSessionStore) sessionsKey() string {
	return fmt.Sprintf(guestSessionsKeyFmt, s.clientID)
}

func (s *GuestSessionStore) messagesKey(sessionID string) string {
	return fmt.Sprintf(guestMessagesKeyFmt, s.clientID, sessionID)
}

// ListSessions 列出访客会话，最新的在前
func (s *GuestSessionStore) ListSessions(ctx context.Context) ([]*model.ChatSession, error) {
	if s.rdb == nil {
		return []*model.ChatSession{}, nil
	}
	data, err := s.rdb.Get(ctx, s.sessionsKey()).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Error loading guest sessions for %s: %v", s.clientID, err)
		}
		return []*model.ChatSession{}, nil
	}
	var sessions []*model.ChatSession
	if err := json.Unmarshal([]byte(data), &sessions); err != nil {
		log.Printf("Error decoding guest sessions for %s: %v", s.clientID, err)
		return []*model.ChatSession{}, nil
	}
	return sessions, nil
}

// GetSession 获取单个会话，未找到返回 nil
func (s *GuestSessionStore) GetSession(ctx context.Context, id string) (*model.ChatSession, error) {
	sessions, err := s.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		if sess.ID == id {
			return sess, nil
		}
	}
	return nil, nil
}

// GetMessages 获取会话消息列表
func (s *GuestSessionStore) GetMessages(ctx context.Context, sessionID string) ([]*model.ChatMessage, error) {
	if s.rdb == nil {
		return []*model.ChatMessage{}, nil
	}
	data, err := s.rdb.Get(ctx, s.messagesKey(sessionID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Error loading guest messages for %s: %v", sessionID, err)
		}
		return []*model.ChatMessage{}, nil
	}
	var messages []*model.ChatMessage
	if err := json.Unmarshal([]byte(data), &messages); err != nil {
		log.Printf("Error decoding guest messages for %s: %v", sessionID, err)
		return []*model.ChatMessage{}, nil
	}
	return messages, nil
}

// SaveSession 整体替换会话条目与消息列表
func (s *GuestSessionStore) SaveSession(ctx context.Context, session *model.ChatSession, messages []*model.ChatMessage) error {
	if s.rdb == nil {
		return nil
	}

	sessions, _ := s.ListSessions(ctx)
	replaced := false
	for i, sess := range sessions {
		if sess.ID == session.ID {
			sessions[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append([]*model.ChatSession{session}, sessions...)
	}

	if err := s.writeJSON(ctx, s.sessionsKey(), sessions); err != nil {
		log.Printf("Error saving guest sessions for %s: %v", s.clientID, err)
		return nil
	}
	if err := s.writeJSON(ctx, s.messagesKey(session.ID), messages); err != nil {
		log.Printf("Error saving guest messages for %s: %v", session.ID, err)
	}
	return nil
}

// DeleteSession 移除会话条目并清空其消息
func (s *GuestSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	if s.rdb == nil {
		return nil
	}
	sessions, _ := s.ListSessions(ctx)
	remaining := make([]*model.ChatSession, 0, len(sessions))
	for _, sess := range sessions {
		if sess.ID != sessionID {
			remaining = append(remaining, sess)
		}
	}
	if err := s.writeJSON(ctx, s.sessionsKey(), remaining); err != nil {
		log.Printf("Error saving guest sessions for %s: %v", s.clientID, err)
	}
	if err := s.rdb.Del(ctx, s.messagesKey(sessionID)).Err(); err != nil {
		log.Printf("Error deleting guest messages for %s: %v", sessionID, err)
	}
	return nil
}

func (s *GuestSessionStore) writeJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, 0).Err()
}
