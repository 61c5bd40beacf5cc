package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eraywen/lumen-blog/internal/model"
	"github.com/eraywen/lumen-blog/internal/service"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	svc *service.Services
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(svc *service.Services) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List 列出项目
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.Content.ListProjects(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"projects": projects})
}

// Save 创建或覆盖项目
func (h *ProjectHandler) Save(c *gin.Context) {
	var project model.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		badRequest(c, err.Error())
		return
	}

	isNew := project.ID == ""
	if err := h.svc.Content.SaveProject(c.Request.Context(), &project); err != nil {
		badRequest(c, err.Error())
		return
	}

	if isNew {
		created(c, project)
		return
	}
	success(c, project)
}

// Delete 删除项目
func (h *ProjectHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Content.DeleteProject(c.Request.Context(), id); err != nil {
		errorResponse(c, err)
		return
	}
	c.Status(204)
}
