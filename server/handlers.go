package server

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/bitrise-io/ai-deobfuscator/model"
	"github.com/bitrise-io/ai-deobfuscator/ui"
	"github.com/bitrise-io/ai-deobfuscator/version"
	"github.com/gin-gonic/gin"
)

const defaultProgrammingLanguage = "Python"

//go:embed static/index.html
var indexPage []byte

// actionContext keeps request values but not its cancellation: a model call
// in flight completes and lands in the session even if the client goes away.
// The llm.api_timeout deadline still applies inside the client.
func actionContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func indexHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func healthHandler(sessions *ui.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:   "healthy",
			Service:  "deobfuscator",
			Version:  version.Version,
			Sessions: sessions.Count(),
		})
	}
}

func createSessionHandler(sessions *ui.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := sessions.Create()
		c.JSON(http.StatusCreated, CreateSessionResponse{ID: id})
	}
}

func getSessionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, controllerFrom(c).Snapshot())
}

func deleteSessionHandler(sessions *ui.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions.Delete(c.Param("id"))
		c.Status(http.StatusNoContent)
	}
}

func deobfuscateHandler(c *gin.Context) {
	var req CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	controller := controllerFrom(c)
	err := controller.Deobfuscate(actionContext(c), req.ObfuscatedCode)
	respondAction(c, controller, err)
}

func explainHandler(c *gin.Context) {
	var req ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	language := req.ProgrammingLanguage
	if language == "" {
		language = defaultProgrammingLanguage
	}

	controller := controllerFrom(c)
	err := controller.Explain(actionContext(c), model.ExplainRequest{
		CodeSection:         req.CodeSection,
		ProgrammingLanguage: language,
		KnownContext:        req.KnownContext,
	})
	respondAction(c, controller, err)
}

func suggestHandler(c *gin.Context) {
	var req CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	controller := controllerFrom(c)
	err := controller.Suggest(actionContext(c), req.ObfuscatedCode)
	respondAction(c, controller, err)
}

func chatHandler(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	controller := controllerFrom(c)
	err := controller.Chat(actionContext(c), req.Message)
	respondAction(c, controller, err)
}
