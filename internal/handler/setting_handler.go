package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eraywen/lumen-blog/internal/service"
)

// SettingHandler 系统设置处理器
type SettingHandler struct {
	svc *service.Services
}

// NewSettingHandler 创建设置处理器
func NewSettingHandler(svc *service.Services) *SettingHandler {
	return &SettingHandler{svc: svc}
}

// GetAIModels 获取内容辅助与 SVG 生成的模型设置
func (h *SettingHandler) GetAIModels(c *gin.Context) {
	ctx := c.Request.Context()
	success(c, gin.H{
		"general": h.svc.Setting.GeneralModel(ctx),
		"svg":     h.svc.Setting.SVGModel(ctx),
	})
}

// UpdateAIModelsRequest 更新模型设置请求
type UpdateAIModelsRequest struct {
	General string `json:"general"`
	SVG     string `json:"svg"`
}

// UpdateAIModels 更新模型设置，留空的字段不改动
func (h *SettingHandler) UpdateAIModels(c *gin.Context) {
	var req UpdateAIModelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if req.General != "" {
		if err := h.svc.Setting.SetGeneralModel(ctx, req.General); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	if req.SVG != "" {
		if err := h.svc.Setting.SetSVGModel(ctx, req.SVG); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	success(c, gin.H{
		"general": h.svc.Setting.GeneralModel(ctx),
		"svg":     h.svc.Setting.SVGModel(ctx),
	})
}
