package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eraywen/lumen-blog/internal/service"
	"github.com/eraywen/lumen-blog/internal/service/completion"
)

// AIHandler 内容创作辅助处理器（仅管理员）
type AIHandler struct {
	svc *service.Services
}

// NewAIHandler 创建 AI 处理器
func NewAIHandler(svc *service.Services) *AIHandler {
	return &AIHandler{svc: svc}
}

// SummarizeRequest 摘要生成请求
type SummarizeRequest struct {
	Content string `json:"content" binding:"required"`
	Model   string `json:"model"`
}

// Summarize 流式生成文章摘要，逐片段以 SSE 推送
func (h *AIHandler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	modelKey := req.Model
	if modelKey == "" {
		modelKey = h.svc.Setting.GeneralModel(ctx)
	}

	sseHeaders(c)
	err := h.svc.Completion.SummarizeStream(ctx, req.Content, modelKey, func(fragment string) {
		c.SSEvent("token", fragment)
		c.Writer.Flush()
	})
	if err != nil {
		c.SSEvent("error", userFacingAIError(err))
		c.Writer.Flush()
		return
	}
	c.SSEvent("done", "")
	c.Writer.Flush()
}

// TagsRequest 标签生成请求
type TagsRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Existing []string `json:"existing"`
	Model    string   `json:"model"`
}

// Tags 生成文章标签
func (h *AIHandler) Tags(c *gin.Context) {
	var req TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	modelKey := req.Model
	if modelKey == "" {
		modelKey = h.svc.Setting.GeneralModel(ctx)
	}

	tags, err := h.svc.Completion.SuggestTags(ctx, req.Title, req.Content, req.Existing, modelKey)
	if err != nil {
		badRequest(c, userFacingAIError(err))
		return
	}
	success(c, gin.H{"tags": tags})
}

// IconRequest 图标推荐请求
type IconRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Icons       []string `json:"icons" binding:"required"`
	Model       string   `json:"model"`
}

// Icon 从给定图标集合中推荐一个
func (h *AIHandler) Icon(c *gin.Context) {
	var req IconRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	modelKey := req.Model
	if modelKey == "" {
		modelKey = h.svc.Setting.GeneralModel(ctx)
	}

	icon, err := h.svc.Completion.RecommendIcon(ctx, req.Title, req.Description, req.Icons, modelKey)
	if err != nil {
		badRequest(c, userFacingAIError(err))
		return
	}
	success(c, gin.H{"icon": icon})
}

// SVGRequest SVG 图标生成请求
type SVGRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Model       string `json:"model"`
}

// SVG 生成 SVG 图标代码
func (h *AIHandler) SVG(c *gin.Context) {
	var req SVGRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	modelKey := req.Model
	if modelKey == "" {
		modelKey = h.svc.Setting.SVGModel(ctx)
	}

	svg, err := h.svc.Completion.GenerateIconArt(ctx, req.Title, req.Description, modelKey)
	if err != nil {
		badRequest(c, userFacingAIError(err))
		return
	}
	success(c, gin.H{"svg": svg})
}

// sseHeaders 设置流式响应头
func sseHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
}

// userFacingAIError 将配置类错误转为面向用户的提示
func userFacingAIError(err error) string {
	if errors.Is(err, completion.ErrProviderNotConfigured) {
		return "提供商未配置：请先在环境变量中设置对应的 API Key"
	}
	if errors.Is(err, completion.ErrUnknownModel) {
		return "所选模型不存在"
	}
	return err.Error()
}
