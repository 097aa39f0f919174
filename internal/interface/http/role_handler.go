package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/internal/application"
	"github.com/oksasatya/go-user-admin/pkg/response"
)

type RoleHandler struct {
	Svc    *application.RoleService
	Logger *logrus.Logger
}

func NewRoleHandler(svc *application.RoleService, logger *logrus.Logger) *RoleHandler {
	return &RoleHandler{Svc: svc, Logger: logger}
}

func (h *RoleHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, items, "Roles fetched successfully.", nil)
}

func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "role")
	if !ok {
		return
	}
	r, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if r == nil {
		notFound(c, "role")
		return
	}
	response.OK(c, http.StatusOK, r, "Role retrieved successfully.", nil)
}

// Roles are system-managed: Create, Update and Delete answer 409 whatever the id or body.
func (h *RoleHandler) Create(c *gin.Context) {
	_, err := h.Svc.Create(c.Request.Context(), application.RoleWrite{})
	h.reject(c, err)
}

func (h *RoleHandler) Update(c *gin.Context) {
	id, _ := uuid.Parse(c.Param("id"))
	_, err := h.Svc.Update(c.Request.Context(), id, application.RoleWrite{})
	h.reject(c, err)
}

func (h *RoleHandler) Delete(c *gin.Context) {
	id, _ := uuid.Parse(c.Param("id"))
	_, err := h.Svc.Delete(c.Request.Context(), id)
	h.reject(c, err)
}

func (h *RoleHandler) reject(c *gin.Context, err error) {
	if err == nil {
		err = application.ErrRolesSystemManaged
	}
	fail(c, h.Logger, err)
}
