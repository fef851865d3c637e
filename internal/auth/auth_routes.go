package auth

import (
	"github.com/kartikey1112/hrms-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, requireSession gin.HandlerFunc, logger *zap.Logger) {
	auth := r.Group("/auth")
	auth.Use(middleware.ContextLogger(logger))
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.POST("/signup", middleware.RateLimitByIP(0.1, 3), handler.SignUp)
		auth.POST("/refresh", middleware.RateLimitByIP(0.5, 5), handler.Refresh)
		auth.POST("/signout", handler.SignOut)
		auth.GET("/me", requireSession, middleware.RateLimitByUser(2, 5), handler.Me)
		auth.PUT("/profile", requireSession, middleware.RateLimitByUser(0.5, 3), handler.UpdateProfile)
	}
}
