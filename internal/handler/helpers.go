package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/gridwatch/gridboard/internal/middleware"
	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
	"github.com/gridwatch/gridboard/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

// handleError maps a service failure to its {status, message} pair.
// Handlers that owe the client a more specific message intercept the
// sentinel before falling through to this.
func handleError(c *gin.Context, resp *response.Formatter, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, appErr.ErrNotFound):
		resp.Error(c, http.StatusNotFound, "Resource Error: resource not found.")
	case errors.Is(err, appErr.ErrUnauthorized):
		resp.Error(c, http.StatusUnauthorized, "Authentication Error: credentials mismatch.")
	case errors.Is(err, appErr.ErrForbidden):
		resp.Error(c, http.StatusForbidden, "Authorization Error: access denied.")
	case errors.Is(err, appErr.ErrInvalid):
		resp.Error(c, http.StatusBadRequest, "Validation Error: invalid request.")
	case errors.Is(err, appErr.ErrConflict):
		resp.Error(c, http.StatusConflict, "Resource Error: resource already exists.")
	case errors.Is(err, appErr.ErrResetExpired):
		resp.Error(c, http.StatusGone, "Resource Error: reset token has expired.")
	default:
		requestID, _ := c.Get("request_id")
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.Any("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("user_id", getUserID(c)),
			zap.Error(err),
		)
		// The formatter redacts this message in production mode.
		resp.Error(c, http.StatusInternalServerError, err.Error())
	}
}
