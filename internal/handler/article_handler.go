package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eraywen/lumen-blog/internal/middleware"
	"github.com/eraywen/lumen-blog/internal/model"
	"github.com/eraywen/lumen-blog/internal/service"
)

// ArticleHandler 文章处理器
type ArticleHandler struct {
	svc *service.Services
}

// NewArticleHandler 创建文章处理器
func NewArticleHandler(svc *service.Services) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// List 列出文章，管理员可见未发布的
func (h *ArticleHandler) List(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	articles, err := h.svc.Content.ListArticles(c.Request.Context(), caller.IsAdmin)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"articles": articles})
}

// Get 获取单篇文章
func (h *ArticleHandler) Get(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	id := c.Param("id")

	article, err := h.svc.Content.GetArticle(c.Request.Context(), id, caller.IsAdmin)
	if err != nil {
		errorResponse(c, err)
		return
	}
	if article == nil {
		notFound(c, "article not found")
		return
	}
	success(c, article)
}

// Save 创建或覆盖文章
func (h *ArticleHandler) Save(c *gin.Context) {
	var article model.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		badRequest(c, err.Error())
		return
	}

	isNew := article.ID == ""
	if err := h.svc.Content.SaveArticle(c.Request.Context(), &article); err != nil {
		errorResponse(c, err)
		return
	}

	if isNew {
		created(c, article)
		return
	}
	success(c, article)
}

// Delete 删除文章
func (h *ArticleHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Content.DeleteArticle(c.Request.Context(), id); err != nil {
		errorResponse(c, err)
		return
	}
	c.Status(204)
}
