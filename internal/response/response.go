package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Statuses carried by the response envelope.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope is the shape of every JSON API response.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success sends a 200 success envelope.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// Fail sends a fail envelope with the given status code. Used for
// validation, authentication, and ownership failures.
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Envelope{
		Status:  StatusFail,
		Message: message,
		Data:    nil,
	})
}

// Error sends an error envelope for infrastructure failures.
func Error(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, Envelope{
		Status:  StatusError,
		Message: message,
		Data:    nil,
	})
}

// Helper functions for common failure responses

// BadRequest sends a 400 fail response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 fail response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	Fail(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 fail response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Not authenticated"
	}
	Fail(c, http.StatusForbidden, message)
}

// NotFound sends a 404 fail response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Fail(c, http.StatusNotFound, message)
}
