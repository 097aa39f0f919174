package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/internal/application"
	"github.com/oksasatya/go-user-admin/pkg/response"
	"github.com/oksasatya/go-user-admin/pkg/validation"
)

// fail maps a service error onto the envelope: conflicts become 409, anything else 500.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	if errors.Is(err, application.ErrConflict) {
		msg := "conflict"
		var ce *application.ConflictError
		if errors.As(err, &ce) {
			msg = ce.Reason
		}
		response.Fail(c, http.StatusConflict, msg, nil)
		return
	}
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).Error("request failed")
	}
	response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
}

func invalid(c *gin.Context, err error) {
	response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

func notFound(c *gin.Context, what string) {
	response.Fail(c, http.StatusNotFound, what+" not found", nil)
}

// pathID parses the :id segment. A malformed id cannot match any row, so it answers 404.
func pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c, what)
		return uuid.Nil, false
	}
	return id, true
}
