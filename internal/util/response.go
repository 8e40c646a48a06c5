package util

import (
	"net/http"

	"eduverse_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every handler writes. Payload keys are merged
// into the top level next to success and message.
// swagger:model Response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func respond(c *gin.Context, code int, success bool, message string, payload gin.H) {
	body := gin.H{"success": success}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		if k == "success" {
			continue
		}
		body[k] = v
	}
	c.JSON(code, body)
}

func Success(c *gin.Context, payload gin.H) {
	respond(c, http.StatusOK, true, "", payload)
}

func SuccessMessage(c *gin.Context, message string, payload gin.H) {
	respond(c, http.StatusOK, true, message, payload)
}

func Created(c *gin.Context, message string, payload gin.H) {
	respond(c, http.StatusCreated, true, message, payload)
}

func Error(c *gin.Context, code int, message string) {
	respond(c, code, false, message, nil)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}
