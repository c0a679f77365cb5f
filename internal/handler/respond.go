package handler

import (
	"net/http"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/apperr"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

var kindStatus = map[apperr.Kind]int{
	apperr.KindValidation:      http.StatusBadRequest,
	apperr.KindNotFound:        http.StatusNotFound,
	apperr.KindConflict:        http.StatusConflict,
	apperr.KindUnauthenticated: http.StatusUnauthorized,
	apperr.KindForbidden:       http.StatusForbidden,
	apperr.KindInternal:        http.StatusInternalServerError,
}

// errorResponder maps service errors to HTTP responses. Internal
// failures are logged with the request correlation id, and their
// detail is exposed to the client only in development mode.
type errorResponder struct {
	log   *zap.SugaredLogger
	debug bool
}

func (e errorResponder) fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	resp := Response{Success: false, Message: apperr.MessageOf(err)}
	if kind == apperr.KindInternal {
		resp.Message = "Internal server error"
		e.log.Errorw("request failed",
			"request_id", c.GetString(middleware.RequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		if e.debug {
			resp.Error = err.Error()
		}
	}
	c.JSON(status, resp)
}
