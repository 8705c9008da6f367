package httperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, kind Kind, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Kind:    kind,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, KindValidation, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, KindInternal, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, KindUnauthorized, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindSlotUnavailable, KindInvalidTransition:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Respond renders err for the client. Anything that is not a BusinessError
// is logged with full detail and hidden behind a generic message.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	if be, ok := AsBusiness(err); ok {
		Write(c, StatusFor(be.Kind), be.Kind, be.Code, be.Message)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		log.Warn("request timed out",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Write(c, http.StatusGatewayTimeout, KindInternal, "timeout", "The request took too long. Please try again.")
		return
	}

	log.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	Internal(c, "internal_error", "Something went wrong. Please try again later.")
}
