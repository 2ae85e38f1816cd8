// Package handlers implements the reference reservation endpoints. The
// response shapes are a fixed contract with the client package: error
// payloads carry "error", search answers are either an array or a
// message object, bookings come back under "bookings".
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pari08yadav/train-ticket-booking/internal/server/middleware"
)

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	})
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body is required")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return false
	}
	return true
}

// Health is a liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
