package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eraywen/lumen-blog/internal/model"
	"github.com/eraywen/lumen-blog/internal/service/completion"
)

// ErrSuperseded 本次发送被更新的发送取代，结果已被丢弃
var ErrSuperseded = errors.New("request superseded by a newer message")

const (
	// 会话标题取首条消息的前 30 个字符
	titleMaxRunes = 30

	defaultSystemPrompt = "你是一个乐于助人的 AI 助手。请用简洁、友好的中文回答问题。"

	// 被新消息打断的回复以错误标记落库，与流式失败的呈现方式一致
	interruptedMarker = "**Error:** 回复已被新的消息中断"
)

// Attachment 待发送的引用附件
// 发送时整体展平进消息正文，此后结构信息不再可恢复
type Attachment struct {
	ArticleID string `json:"article_id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
}

// SendResult 一次发送的最终结果
type SendResult struct {
	SessionID        string             `json:"session_id"`
	UserMessage      *model.ChatMessage `json:"user_message"`
	AssistantMessage *model.ChatMessage `json:"assistant_message"`
}

// Conversation 单个调用方的活跃对话
// 状态机：Unbound（无会话 id，消息只在内存）→ Bound（已分配会话 id）。
// 首条消息发出时才创建会话，纯粹的界面导航不会产生持久化。
type Conversation struct {
	store     Store
	completer Completer

	mu          sync.Mutex
	sessionID   string // 空串即 Unbound
	title       string
	system      string
	articleID   string
	createdAt   time.Time
	updatedAt   time.Time
	messages    []*model.ChatMessage
	attachments []Attachment

	// 同一对话任意时刻最多一个在途流；epoch 防止被取消流的残余片段
	// 写入新占位消息
	epoch   uint64
	cancel  context.CancelFunc
	pending *model.ChatMessage // 在途流的占位消息
}

func newConversation(store Store, completer Completer) *Conversation {
	return &Conversation{store: store, completer: completer}
}

// Bound 是否已绑定持久化会话
func (c *Conversation) Bound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID != ""
}

// SessionID 当前会话 id，Unbound 时为空串
func (c *Conversation) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Messages 当前内存中对话的快照
func (c *Conversation) Messages() []*model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*model.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Attach 追加一个引用附件，在下一次发送时展平进正文
func (c *Conversation) Attach(att Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachments = append(c.attachments, att)
}

// PendingAttachments 尚未发送的附件快照
func (c *Conversation) PendingAttachments() []Attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Attachment, len(c.attachments))
	copy(out, c.attachments)
	return out
}

// Open 切换到指定会话：整体重载持久化的记录与系统提示词，直接替换内存状态
func (c *Conversation) Open(ctx context.Context, sessionID string) error {
	session, err := c.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	messages, err := c.store.GetMessages(ctx, sessionID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.abortLocked()
	c.sessionID = session.ID
	c.title = session.Title
	c.system = session.SystemPrompt
	c.articleID = session.ArticleContextID
	c.createdAt = session.CreatedAt
	c.updatedAt = session.UpdatedAt
	c.messages = messages
	c.attachments = nil
	return nil
}

// Reset 回到 Unbound 空对话
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// resetIfActive 被删除的是活跃会话时回到 Unbound
func (c *Conversation) resetIfActive(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionID == sessionID {
		c.resetLocked()
	}
}

func (c *Conversation) resetLocked() {
	c.abortLocked()
	c.sessionID = ""
	c.title = ""
	c.system = ""
	c.articleID = ""
	c.messages = nil
	c.attachments = nil
}

// abortLocked 取消在途流并推进 epoch，使其残余片段被丢弃
// 被中断流的占位消息盖上错误标记，存储中不会留下空的助手消息
func (c *Conversation) abortLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.pending != nil {
		c.pending.Content = interruptedMarker
		c.pending = nil
	}
	c.epoch++
}

// Send 发送一条消息并流式接收回复
//
// Unbound 时先创建并绑定会话；待发附件展平进正文后清空；完整历史
// （前置系统提示词）交给生成后端，占位助手消息随片段到达单调增长；
// 流结束（成功或失败）后才整体持久化，绝不写入半途状态。
// 新的发送会取消仍在途的上一次发送。
func (c *Conversation) Send(ctx context.Context, text, modelKey string, onToken func(string)) (*SendResult, error) {
	c.mu.Lock()

	c.abortLocked()
	myEpoch := c.epoch
	streamCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	now := time.Now()
	if c.sessionID == "" {
		c.sessionID = uuid.New().String()
		c.title = deriveTitle(text)
		c.createdAt = now
		c.updatedAt = now
	}

	outgoing := text
	if len(c.attachments) > 0 {
		outgoing = flattenAttachments(text, c.attachments)
		if c.articleID == "" {
			c.articleID = c.attachments[0].ArticleID
		}
		c.attachments = nil
	}

	userMsg := &model.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: c.sessionID,
		Role:      model.RoleUser,
		Content:   outgoing,
		CreatedAt: now,
	}
	// 占位助手消息先进入记录，随流式片段渐进填充
	placeholder := &model.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: c.sessionID,
		Role:      model.RoleAssistant,
		CreatedAt: now,
	}
	c.messages = append(c.messages, userMsg, placeholder)
	c.pending = placeholder

	history := historyOf(c.messages[:len(c.messages)-1])
	system := c.system
	if system == "" {
		system = defaultSystemPrompt
	}
	c.mu.Unlock()

	streamErr := c.completer.StreamReply(streamCtx, system, history, modelKey, func(fragment string) {
		c.mu.Lock()
		defer c.mu.Unlock()
		// 过期流的片段永不触达新的占位消息
		if c.epoch != myEpoch {
			return
		}
		placeholder.Content += fragment
		if onToken != nil {
			onToken(fragment)
		}
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != myEpoch {
		return nil, ErrSuperseded
	}
	cancel()
	c.cancel = nil
	c.pending = nil

	if streamErr != nil {
		// 部分输出替换为可见的错误标记，用户消息保留
		placeholder.Content = fmt.Sprintf("**Error:** %s", streamErr.Error())
	} else {
		c.updatedAt = time.Now()
	}

	session := &model.ChatSession{
		ID:               c.sessionID,
		Title:            c.title,
		SystemPrompt:     c.system,
		ArticleContextID: c.articleID,
		CreatedAt:        c.createdAt,
		UpdatedAt:        c.updatedAt,
	}
	snapshot := make([]*model.ChatMessage, len(c.messages))
	copy(snapshot, c.messages)

	if err := c.store.SaveSession(ctx, session, snapshot); err != nil {
		return nil, err
	}

	return &SendResult{
		SessionID:        c.sessionID,
		UserMessage:      userMsg,
		AssistantMessage: placeholder,
	}, streamErr
}

// deriveTitle 取首条消息的前 30 个字符作为会话标题，截断时补省略号
func deriveTitle(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= titleMaxRunes {
		return string(runes)
	}
	return string(runes[:titleMaxRunes]) + "…"
}

// flattenAttachments 将引用附件序列化为定界块追加到消息正文
// 发送之后用户文本与引用内容的结构区分即不再可恢复
func flattenAttachments(text string, attachments []Attachment) string {
	var sb strings.Builder
	sb.WriteString(text)
	for _, att := range attachments {
		sb.WriteString("\n\n---\n【引用文章】\n")
		sb.WriteString("标题：" + att.Title + "\n")
		sb.WriteString("摘要：" + att.Summary + "\n")
		sb.WriteString("正文：\n" + att.Content + "\n---")
	}
	return sb.String()
}

func historyOf(messages []*model.ChatMessage) []completion.Message {
	history := make([]completion.Message, 0, len(messages))
	for _, m := range messages {
		history = append(history, completion.Message{Role: m.Role, Content: m.Content})
	}
	return history
}
