package server

import (
	"github.com/bitrise-io/ai-deobfuscator/config"
	"github.com/bitrise-io/ai-deobfuscator/ui"
	"github.com/gin-gonic/gin"
)

// sets up all routes and middleware
func registerRoutes(router *gin.Engine, sessions *ui.Sessions, settings config.Server) {
	router.Use(corsMiddleware(settings))

	router.GET("/", indexHandler)
	router.GET("/healthz", healthHandler(sessions))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/sessions", createSessionHandler(sessions))

		session := v1.Group("/sessions/:id", sessionMiddleware(sessions))
		session.GET("", getSessionHandler)
		session.DELETE("", deleteSessionHandler(sessions))
		session.POST("/deobfuscate", deobfuscateHandler)
		session.POST("/explain", explainHandler)
		session.POST("/suggest", suggestHandler)
		session.POST("/chat", chatHandler)
	}
}
