package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/reel", handler.GetReel)
		apiGroup.POST("/youtube/extract", handler.ExtractYouTube)
		apiGroup.POST("/youtube/download-audio", handler.DownloadYouTubeAudio)
		apiGroup.POST("/youtube/transcribe", handler.TranscribeYouTube)
		apiGroup.GET("/health", handler.GetHealth)
		apiGroup.GET("/debug-sentry", handler.DebugSentry)
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "PeekPost",
			"description": "Normalized metadata and media URLs for short-form video posts",
			"endpoints": map[string]string{
				"reel":           "/api/reel (POST)",
				"extract":        "/api/youtube/extract (POST)",
				"download_audio": "/api/youtube/download-audio (POST)",
				"transcribe":     "/api/youtube/transcribe (POST)",
				"health":         "/api/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
