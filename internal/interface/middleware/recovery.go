package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/pkg/response"
)

// Recovery turns a panic into a 500 envelope and logs it with the stack.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"panic":      recovered,
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
			"stack":      string(debug.Stack()),
		}).Error("panic recovered")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
	})
}
