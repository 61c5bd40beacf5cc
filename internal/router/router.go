package router

import (
	"github.com/gin-gonic/gin"

	"github.com/eraywen/lumen-blog/internal/handler"
	"github.com/eraywen/lumen-blog/internal/middleware"
	"github.com/eraywen/lumen-blog/internal/service/auth"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, authSvc *auth.Service) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.AuthMiddleware(authSvc))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Auth 认证
		v1.POST("/auth/login", h.Auth.Login)
		v1.POST("/auth/logout", h.Auth.Logout)

		// Articles 文章，读取公开，写入仅管理员
		articles := v1.Group("/articles")
		{
			articles.GET("", h.Article.List)
			articles.GET("/:id", h.Article.Get)
			articles.POST("", middleware.RequireAdmin(), h.Article.Save)
			articles.DELETE("/:id", middleware.RequireAdmin(), h.Article.Delete)
		}

		// Projects 项目
		projects := v1.Group("/projects")
		{
			projects.GET("", h.Project.List)
			projects.POST("", middleware.RequireAdmin(), h.Project.Save)
			projects.DELETE("/:id", middleware.RequireAdmin(), h.Project.Delete)
		}

		// Settings 设置，仅管理员
		settings := v1.Group("/settings", middleware.RequireAdmin())
		{
			settings.GET("/ai-models", h.Setting.GetAIModels)
			settings.PUT("/ai-models", h.Setting.UpdateAIModels)
		}

		// AI 创作辅助，仅管理员
		ai := v1.Group("/ai", middleware.RequireAdmin())
		{
			ai.POST("/summarize", h.AI.Summarize)
			ai.POST("/tags", h.AI.Tags)
			ai.POST("/icon", h.AI.Icon)
			ai.POST("/svg", h.AI.SVG)
		}

		// Chat 对话，管理员与访客共用
		chat := v1.Group("/chat")
		{
			chat.GET("/models", h.Chat.Models)
			chat.GET("/sessions", h.Chat.ListSessions)
			chat.POST("/sessions/:id/open", h.Chat.OpenSession)
			chat.DELETE("/sessions/:id", h.Chat.DeleteSession)
			chat.POST("/new", h.Chat.NewConversation)
			chat.POST("/attachments", h.Chat.Attach)
			chat.GET("/attachments", h.Chat.PendingAttachments)
			chat.POST("/send", h.Chat.Send)
		}
	}

	return r
}
