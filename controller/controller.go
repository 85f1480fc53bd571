package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// InternalError logs err server-side and answers with the generic 500 body.
func InternalError(c *gin.Context, logger *slog.Logger, err error) {
	_ = c.Error(err)
	logger.Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetString("requestId"),
		"error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
