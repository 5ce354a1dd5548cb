package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/smartcms/smartcontent/internal/handler"
	"github.com/smartcms/smartcontent/internal/middleware"
	"github.com/smartcms/smartcontent/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	contentHandler *handler.ContentHandler,
	lifecycleHandler *handler.LifecycleHandler,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api",
		middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()),
		middleware.JWTAuth(jwtManager),
		middleware.OrgScope(),
	)

	content := api.Group("/content")
	{
		content.POST("", contentHandler.Create)
		content.GET("", contentHandler.ListOrg)
		content.GET("/bin", lifecycleHandler.ListBin)
		content.GET("/status/:status", contentHandler.ListByStatus)

		content.GET("/:id", contentHandler.Get)
		content.PATCH("/:id", contentHandler.Update)
		content.DELETE("/:id", lifecycleHandler.HardDelete)

		// Lifecycle
		content.PATCH("/:id/status", lifecycleHandler.UpdateStatus)
		content.POST("/:id/schedule", lifecycleHandler.SchedulePublish)
		content.POST("/:id/bin", lifecycleHandler.MoveToBin)
		content.POST("/:id/restore", lifecycleHandler.Restore)
		content.GET("/:id/audit", lifecycleHandler.ListStatusAudit)

		// Versioning
		content.GET("/:id/versions", contentHandler.ListVersions)
		content.POST("/:id/rollback", contentHandler.Rollback)

		// Slugs
		content.PATCH("/:id/slug", contentHandler.UpdateSlug)
		content.GET("/:id/slug/validate", contentHandler.ValidateSlug)
		content.POST("/:id/slug/generate", contentHandler.GenerateSlug)
	}
}
