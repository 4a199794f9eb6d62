package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerFunc is a request handler that reports failure by returning
// an error instead of writing its own error response.
type HandlerFunc func(c *gin.Context) error

// Wrap converts a HandlerFunc into a gin handler. Any returned error
// is answered as {success:false, message} with the status attached to
// the error, or 500 when there is none. This is the only place errors
// turn into transport responses.
func Wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h(c)
		if err == nil {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"

		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status >= 100 && apiErr.Status < 600 {
			status = apiErr.Status
			message = apiErr.Message
		}

		if status >= http.StatusInternalServerError {
			zap.L().Error("Request failed",
				zap.Error(err),
				zap.String("requestID", c.GetString("requestID")),
				zap.String("path", c.FullPath()),
			)
		}

		c.AbortWithStatusJSON(status, gin.H{
			"success": false,
			"message": message,
		})
	}
}

// AbortError writes the error envelope from inside middleware, which
// can't return errors through Wrap.
func AbortError(c *gin.Context, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Internal("Internal server error")
	}

	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"success": false,
		"message": apiErr.Message,
	})
}

// OK writes the success envelope. Extra payload fields are merged in
// next to success and message.
func OK(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	for k, v := range payload {
		body[k] = v
	}

	c.JSON(status, body)
}
