package server

import (
	"time"

	"github.com/bitrise-io/ai-deobfuscator/config"
	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/bitrise-io/ai-deobfuscator/ui"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const controllerKey = "controller"

// loads the session named in the path, aborting with 404 if it is unknown or expired
func sessionMiddleware(sessions *ui.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		controller, ok := sessions.Get(c.Param("id"))
		if !ok {
			sessionNotFound(c)
			c.Abort()
			return
		}

		c.Set(controllerKey, controller)
		c.Next()
	}
}

func controllerFrom(c *gin.Context) *ui.Controller {
	return c.MustGet(controllerKey).(*ui.Controller)
}

func corsMiddleware(settings config.Server) gin.HandlerFunc {
	if len(settings.AllowedOrigins) == 0 {
		return cors.Default()
	}

	return cors.New(cors.Config{
		AllowOrigins:     settings.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Infow("Request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
