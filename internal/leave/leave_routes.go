package leave

import (
	"github.com/kartikey1112/hrms-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	requireSession gin.HandlerFunc,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	leaves := r.Group("/leaves")
	leaves.Use(requireSession)
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.GET("", middleware.RateLimitByUser(5, 20), handler.List)
		leaves.GET("/:id", middleware.RateLimitByUser(5, 20), handler.GetByID)
		leaves.POST("", middleware.RateLimitByUser(1, 5), middleware.Idempotency(rdb), handler.Create)
		leaves.PATCH("/:id/status", middleware.RateLimitByUser(1, 5), handler.UpdateStatus)
	}
}
