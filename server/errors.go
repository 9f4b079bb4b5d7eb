package server

import (
	"errors"
	"net/http"

	"github.com/bitrise-io/ai-deobfuscator/flow"
	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/bitrise-io/ai-deobfuscator/ui"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g. "not_found")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // never carries provider error text
}

// ActionFailedResponse is returned when an action's model call failed, the
// state already carries the fixed failure message
type ActionFailedResponse struct {
	ErrorResponse
	State ui.State `json:"state"`
}

const (
	CodeBadRequest      = "bad_request"
	CodeValidationError = "validation_error"
	CodeSessionNotFound = "session_not_found"
	CodeUpstreamError   = "upstream_error"
	CodeInvalidReply    = "invalid_reply"
	CodeChatUnavailable = "chat_unavailable"
	CodeInternalError   = "server_error"
)

// returns a 400 bad request error
func badRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}
	if err != nil {
		response.Details = err.Error()
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 404 error for session not found
func sessionNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeSessionNotFound,
		Message: "session not found or expired",
	})
}

// writes the outcome of an action on the session
func respondAction(c *gin.Context, controller *ui.Controller, err error) {
	state := controller.Snapshot()

	switch {
	case err == nil:
		c.JSON(http.StatusOK, state)
	case errors.Is(err, flow.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   CodeValidationError,
			Message: "code must not be empty",
		})
	case errors.Is(err, flow.ErrChatUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   CodeChatUnavailable,
			Message: "chat is not configured on this server",
		})
	case flow.IsReplyError(err):
		c.JSON(http.StatusBadGateway, ActionFailedResponse{
			ErrorResponse: ErrorResponse{
				Error:   CodeInvalidReply,
				Message: state.Error,
				Details: "the model reply did not match the expected shape",
			},
			State: state,
		})
	case flow.IsTransportError(err):
		c.JSON(http.StatusBadGateway, ActionFailedResponse{
			ErrorResponse: ErrorResponse{
				Error:   CodeUpstreamError,
				Message: state.Error,
				Details: "the model provider could not be reached",
			},
			State: state,
		})
	default:
		logger.Errorw("Unexpected action error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, ActionFailedResponse{
			ErrorResponse: ErrorResponse{
				Error:   CodeInternalError,
				Message: state.Error,
			},
			State: state,
		})
	}
}
