package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eraywen/lumen-blog/internal/middleware"
	"github.com/eraywen/lumen-blog/internal/service"
	"github.com/eraywen/lumen-blog/internal/service/chat"
)

// ChatHandler 对话处理器，管理员与访客共用同一组路由
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建对话处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Models 调用方可选的模型列表及默认选中项
func (h *ChatHandler) Models(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	success(c, gin.H{
		"models":  h.svc.Chat.SelectableModels(caller),
		"default": h.svc.Chat.DefaultModel(caller),
	})
}

// ListSessions 列出调用方的历史会话
func (h *ChatHandler) ListSessions(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	sessions, err := h.svc.Chat.ListSessions(c.Request.Context(), caller)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, sessions)
}

// OpenSession 切换到指定会话并返回其完整记录
func (h *ChatHandler) OpenSession(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	conv := h.svc.Chat.Conversation(caller)
	if err := conv.Open(c.Request.Context(), c.Param("id")); err != nil {
		notFound(c, "会话不存在")
		return
	}
	success(c, gin.H{
		"session_id": conv.SessionID(),
		"messages":   conv.Messages(),
	})
}

// DeleteSession 删除会话，删除活跃会话时对话回到空状态
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	if err := h.svc.Chat.DeleteSession(c.Request.Context(), caller, c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}
	c.Status(204)
}

// NewConversation 开启一个新的空对话，不产生任何持久化
func (h *ChatHandler) NewConversation(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	h.svc.Chat.Conversation(caller).Reset()
	success(c, nil)
}

// AttachRequest 引用文章请求
type AttachRequest struct {
	ArticleID string `json:"article_id" binding:"required"`
}

// Attach 把一篇文章作为引用挂到下一条消息上
func (h *ChatHandler) Attach(c *gin.Context) {
	var req AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	caller := middleware.CallerFrom(c)
	article, err := h.svc.Content.GetArticle(c.Request.Context(), req.ArticleID, caller.IsAdmin)
	if err != nil {
		errorResponse(c, err)
		return
	}
	if article == nil {
		notFound(c, "文章不存在")
		return
	}

	h.svc.Chat.Conversation(caller).Attach(chat.Attachment{
		ArticleID: article.ID,
		Title:     article.Title,
		Summary:   article.Summary,
		Content:   article.Content,
	})
	success(c, nil)
}

// PendingAttachments 尚未发送的引用列表
func (h *ChatHandler) PendingAttachments(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	success(c, h.svc.Chat.Conversation(caller).PendingAttachments())
}

// SendRequest 发送消息请求
type SendRequest struct {
	Text  string `json:"text" binding:"required"`
	Model string `json:"model"`
}

// Send 发送一条消息，以 SSE 流式返回助手回复
//
// 事件序列：零或多个 token 事件，随后恰好一个 done 或 error 事件。
// done 事件携带会话 id 与完整的最终消息。
func (h *ChatHandler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	caller := middleware.CallerFrom(c)
	modelKey := req.Model
	if modelKey == "" {
		modelKey = h.svc.Chat.DefaultModel(caller)
	}
	if !h.svc.Chat.CanUse(caller, modelKey) {
		badRequest(c, "所选模型不可用")
		return
	}

	sseHeaders(c)
	conv := h.svc.Chat.Conversation(caller)
	result, err := conv.Send(c.Request.Context(), req.Text, modelKey, func(fragment string) {
		c.SSEvent("token", fragment)
		c.Writer.Flush()
	})
	if errors.Is(err, chat.ErrSuperseded) {
		c.SSEvent("superseded", "")
		c.Writer.Flush()
		return
	}
	if result == nil {
		c.SSEvent("error", "保存会话失败")
		c.Writer.Flush()
		return
	}
	if err != nil {
		// 失败的回复已替换为错误标记并随会话保存
		c.SSEvent("error", gin.H{
			"session_id": result.SessionID,
			"message":    result.AssistantMessage,
		})
		c.Writer.Flush()
		return
	}
	c.SSEvent("done", gin.H{
		"session_id": result.SessionID,
		"message":    result.AssistantMessage,
	})
	c.Writer.Flush()
}
