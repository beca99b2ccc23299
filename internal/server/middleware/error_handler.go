package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "audiocheck/internal/server/errors"
)

// ErrorHandler recovers panics and renders them as structured API errors.
func ErrorHandler(logger *zap.SugaredLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString("request_id")

		var apiErr *apierrors.APIError

		switch err := recovered.(type) {
		case *apierrors.APIError:
			apiErr = err
			apiErr.RequestID = requestID
		case error:
			logger.Errorw("internal server error",
				"error", err.Error(),
				"request_id", requestID,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
			apiErr = apierrors.NewInternalError("Internal server error")
			apiErr.RequestID = requestID
		default:
			logger.Errorw("unknown panic",
				"recovered", recovered,
				"request_id", requestID,
			)
			apiErr = apierrors.NewInternalError("Internal server error")
			apiErr.RequestID = requestID
		}

		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError renders err on the response. Non-API errors escalate to the
// recovery middleware via panic.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if apiErr, ok := err.(*apierrors.APIError); ok {
		apiErr.RequestID = c.GetString("request_id")
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
		return
	}

	panic(err)
}
