package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
)

// PipelineAuthMiddleware requires the X-API-Key header to match apiKey.
// Without a configured key the pipeline routes answer 503.
func PipelineAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			abortWithAppError(c, apperrors.ErrPipelineNotConfigured)
			return
		}
		if subtle.ConstantTimeCompare([]byte(c.GetHeader("X-API-Key")), []byte(apiKey)) != 1 {
			abortWithAppError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}

// CaptureGuard rejects capture requests unless allowed reports true.
// Capture is off outside production unless ALLOW_CAPTURE is set.
func CaptureGuard(allowed func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowed() {
			abortWithAppError(c, apperrors.ErrCaptureDisabled)
			return
		}
		c.Next()
	}
}
