package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the site's public JSON envelope.
type Response struct {
	Status     string            `json:"status"`
	Message    string            `json:"message"`
	Errors     map[string]string `json:"errors,omitempty"`
	RetryAfter int               `json:"retry_after,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Status:    "success",
		Message:   message,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Status:    "error",
		Message:   message,
		RequestID: requestID(c),
	})
}

// ValidationError sends a 400 with per-field reasons
func ValidationError(c *gin.Context, code int, message string, errs map[string]string) {
	c.JSON(code, Response{
		Status:    "error",
		Message:   message,
		Errors:    errs,
		RequestID: requestID(c),
	})
}

// RateLimited sends a 429 with a retry hint in both body and value
func RateLimited(c *gin.Context, code int, message string, retryAfterSeconds int) {
	c.JSON(code, Response{
		Status:     "error",
		Message:    message,
		RetryAfter: retryAfterSeconds,
		RequestID:  requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
