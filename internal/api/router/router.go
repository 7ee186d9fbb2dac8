package router

import (
	"homepage-go/internal/api/handler"
	"homepage-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	commentHandler *handler.CommentHandler,
	reactionHandler *handler.ReactionHandler,
	reportHandler *handler.ReportHandler,
	adminHandler *handler.AdminHandler,
	adminMiddleware gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.GET("/me", authHandler.GetMe)
		}
	}

	// --- 评论模块 ---
	// 游客也可以发评论、点赞和举报，登录态可选
	comments := v1.Group("/comments", middleware.AuthOptional())
	{
		comments.POST("", commentHandler.Create)
		comments.GET("", commentHandler.List)
		comments.PATCH("/:id", commentHandler.Edit)
		comments.GET("/:id/replies", commentHandler.ListReplies)
		comments.POST("/:id/reaction", reactionHandler.Toggle)

		// 回复仅限登录用户
		commentsAuth := comments.Group("", middleware.AuthRequired())
		{
			commentsAuth.POST("/:id/replies", commentHandler.CreateReply)
		}
	}

	// --- 举报模块 ---
	reports := v1.Group("/reports", middleware.AuthOptional())
	{
		reports.POST("", reportHandler.Create)
	}

	// --- 管理模块 ---
	admin := v1.Group("/admin", middleware.AuthRequired(), adminMiddleware)
	{
		admin.GET("/comments", adminHandler.ListComments)
		admin.PATCH("/comments/:id", adminHandler.Moderate)
		admin.POST("/comments/:id/heart", adminHandler.ToggleHeart)

		admin.GET("/reports", adminHandler.ListReports)
		admin.PATCH("/reports/:id", adminHandler.ResolveReport)

		admin.GET("/audit", adminHandler.ListAudit)
		admin.DELETE("/audit", adminHandler.PurgeAudit)
	}
}
