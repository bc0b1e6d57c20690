package api

import (
	"concarne/health-app/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	snapshotTick time.Duration,
	authService service.AuthService,
	fastService service.FastService,
	weightService service.WeightService,
	backupService service.BackupService,
) {

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(authService)
	fastHandler := NewFastHandler(fastService, snapshotTick)
	weightHandler := NewWeightHandler(weightService)
	backupHandler := NewBackupHandler(backupService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.Me)
		protected.PUT("/me/height", userHandler.UpdateHeight)

		// --- Fast Routes ---
		fastGroup := protected.Group("/fasts")
		{
			// POST /api/v1/fasts - create a pending fast from a duration
			fastGroup.POST("", fastHandler.CreateFast)
			// GET /api/v1/fasts - full fasting history
			fastGroup.GET("", fastHandler.ListFasts)
			// GET /api/v1/fasts/current?id= - resolve the fast to display
			fastGroup.GET("/current", fastHandler.GetCurrentFast)

			// Lifecycle transitions
			fastGroup.POST("/:id/start", fastHandler.StartFast)
			fastGroup.POST("/:id/end", fastHandler.EndFast)

			// Timestamp amendments (state-preserving)
			fastGroup.PATCH("/:id/start-time", fastHandler.UpdateStartTime)
			fastGroup.PATCH("/:id/end-time", fastHandler.UpdateEndTime)

			// GET /api/v1/fasts/:id/track - SSE snapshot stream
			fastGroup.GET("/:id/track", fastHandler.TrackFast)
		}

		// --- Weight Routes ---
		weightGroup := protected.Group("/weights")
		{
			weightGroup.POST("", weightHandler.CreateWeight)
			weightGroup.GET("", weightHandler.ListWeights)
			weightGroup.DELETE("/:id", weightHandler.DeleteWeight)
		}

		// --- Backup Routes ---
		protected.POST("/backup/export", backupHandler.Export)
	}
}
