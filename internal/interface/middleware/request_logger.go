package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/pkg/helpers"
)

const (
	maxBodyRead   = 64 << 10
	maxBodyLogged = 1000
)

// RequestLogger writes one logrus entry per request. With logBody set, JSON
// request bodies are logged with sensitive values masked.
func RequestLogger(logger *logrus.Logger, logBody bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var body string
		if logBody && c.Request.Body != nil && strings.Contains(c.ContentType(), "json") {
			b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyRead))
			if err == nil {
				c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(b), c.Request.Body))
				body = helpers.MaskJSON(b, maxBodyLogged)
			}
		}

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"route":      c.FullPath(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": c.GetString("request_id"),
			"ip":         ipFromCtx(c),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields["query"] = q
		}
		if actor := c.GetString("actor"); actor != "" {
			fields["actor"] = actor
		}
		if body != "" {
			fields["body"] = body
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		entry := logger.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("http request")
		case status >= 400:
			entry.Warn("http request")
		default:
			entry.Info("http request")
		}
	}
}
