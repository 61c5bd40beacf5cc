// Package chat 管理对话状态机：会话延迟创建、消息累积、引用附件、
// 流式回复集成与持久化同步
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/eraywen/lumen-blog/internal/model"
	"github.com/eraywen/lumen-blog/internal/service/auth"
	"github.com/eraywen/lumen-blog/internal/service/completion"
)

// Store 聊天历史存储
// 管理员走远程存储，访客走本地（Redis 命名空间）存储，二者永不混用
type Store interface {
	ListSessions(ctx context.Context) ([]*model.ChatSession, error)
	GetSession(ctx context.Context, id string) (*model.ChatSession, error)
	GetMessages(ctx context.Context, sessionID string) ([]*model.ChatMessage, error)
	SaveSession(ctx context.Context, session *model.ChatSession, messages []*model.ChatMessage) error
	DeleteSession(ctx context.Context, id string) error
}

// Completer 流式回复后端
type Completer interface {
	StreamReply(ctx context.Context, system string, history []completion.Message, modelKey string, onToken func(string)) error
}

// 访客标识不受控地增多，对话表超过阈值时按空闲时间清理
const (
	convIdleTTL = 12 * time.Hour
	convSweepAt = 256
)

type convEntry struct {
	conv *Conversation
	seen time.Time
}

// Service 聊天服务，为每个调用方维护一个活跃对话
type Service struct {
	adminStore Store
	guestStore func(clientID string) Store
	completer  Completer

	mu      sync.Mutex
	convs   map[string]*convEntry
	idleTTL time.Duration
}

// NewService 创建聊天服务
func NewService(adminStore Store, guestStore func(clientID string) Store, completer Completer) *Service {
	return &Service{
		adminStore: adminStore,
		guestStore: guestStore,
		completer:  completer,
		convs:      make(map[string]*convEntry),
		idleTTL:    convIdleTTL,
	}
}

// storeFor 按认证标记选择存储后端，这是认证状态的唯一存储分流点
func (s *Service) storeFor(caller auth.Caller) Store {
	if caller.IsAdmin {
		return s.adminStore
	}
	return s.guestStore(caller.Key)
}

// Conversation 返回调用方的活跃对话，没有则创建一个 Unbound 对话
func (s *Service) Conversation(caller auth.Caller) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.convs[caller.Key]
	if !ok {
		if len(s.convs) >= convSweepAt {
			s.evictIdleLocked()
		}
		e = &convEntry{conv: newConversation(s.storeFor(caller), s.completer)}
		s.convs[caller.Key] = e
	}
	e.seen = time.Now()
	return e.conv
}

// evictIdleLocked 清理超过空闲时限的对话
func (s *Service) evictIdleLocked() {
	for key, e := range s.convs {
		if time.Since(e.seen) > s.idleTTL {
			delete(s.convs, key)
		}
	}
}

// ListSessions 列出调用方的历史会话
func (s *Service) ListSessions(ctx context.Context, caller auth.Caller) ([]*model.ChatSession, error) {
	return s.storeFor(caller).ListSessions(ctx)
}

// DeleteSession 删除会话；删除的是活跃会话时对话回到 Unbound 空状态
func (s *Service) DeleteSession(ctx context.Context, caller auth.Caller, sessionID string) error {
	if err := s.storeFor(caller).DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	s.Conversation(caller).resetIfActive(sessionID)
	return nil
}

// SelectableModels 调用方可选的模型集合
// 管理员看到完整目录，访客只看到免费子集
func (s *Service) SelectableModels(caller auth.Caller) []completion.ModelInfo {
	all := completion.Catalogue()
	if caller.IsAdmin {
		return all
	}
	free := make([]completion.ModelInfo, 0, len(all))
	for _, m := range all {
		if m.Free {
			free = append(free, m)
		}
	}
	return free
}

// CanUse 模型是否在调用方可选集合内
func (s *Service) CanUse(caller auth.Caller, modelKey string) bool {
	for _, m := range s.SelectableModels(caller) {
		if m.Key == modelKey {
			return true
		}
	}
	return false
}

// DefaultModel 默认选中的模型，存在时偏好固定的免费模型
func (s *Service) DefaultModel(caller auth.Caller) string {
	models := s.SelectableModels(caller)
	for _, m := range models {
		if m.Key == completion.DefaultFreeModel {
			return m.Key
		}
	}
	if len(models) > 0 {
		return models[0].Key
	}
	return ""
}
