// internal/app/router.go
package app

import (
	authHandler "elizatrader-service/internal/handlers/auth"
	postHandler "elizatrader-service/internal/handlers/post"
	wsHandler "elizatrader-service/internal/handlers/websocket"
	"elizatrader-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	PostHandler    *postHandler.PostHandler
	WSHandler      *wsHandler.WebSocketHandler
	AuthMiddleware *middleware.AuthMiddleware
	Health         gin.HandlerFunc
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	// ==================== Health & Index ====================
	r.GET("/health", h.Health)
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Elizabeth Trader Content API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"posts":  "/api/posts",
				"auth":   "/api/auth",
				"stats":  "/api/stats",
				"health": "/health",
			},
		})
	})

	// ==================== Admin Event Feed ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	api := r.Group("/api")

	// ==================== Auth Routes ====================
	api.POST("/login", h.AuthHandler.Login) // legacy alias
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.AuthHandler.Login)
		auth.POST("/logout", h.AuthHandler.Logout)
	}

	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.GET("/me", h.AuthHandler.GetMe)
	}

	// ==================== Public Post Routes ====================
	posts := api.Group("/posts")
	{
		posts.GET("", h.PostHandler.ListPosts)
		posts.GET("/:id", h.PostHandler.GetPost)
		posts.POST("/:id/like", h.PostHandler.LikePost)
	}

	api.GET("/stats", h.PostHandler.GetStats)

	// ==================== Admin Post Routes ====================
	postsAdmin := api.Group("/posts")
	postsAdmin.Use(h.AuthMiddleware.AdminOnly()...)
	{
		postsAdmin.POST("", h.PostHandler.CreatePost)
		postsAdmin.PUT("/:id", h.PostHandler.UpdatePost)
		postsAdmin.DELETE("/:id", h.PostHandler.DeletePost)
	}

	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.AdminOnly()...)
	{
		admin.GET("/posts", h.PostHandler.ListAllPosts)
		admin.GET("/ws/stats", h.WSHandler.GetStats)
	}
}
