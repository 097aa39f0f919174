package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/internal/application"
	"github.com/oksasatya/go-user-admin/internal/infrastructure/search"
	"github.com/oksasatya/go-user-admin/pkg/response"
)

// Page size bounds for GET /users.
const (
	MinPageSize = 1
	MaxPageSize = 200
)

// UserSearcher answers free-text user lookups; satisfied by search.UserIndex.
type UserSearcher interface {
	Search(ctx context.Context, q string, size int) ([]search.UserDocument, error)
}

type UserHandler struct {
	Svc      *application.UserService
	Searcher UserSearcher
	Logger   *logrus.Logger
}

// NewUserHandler builds the handler; a nil searcher disables GET /users/search.
func NewUserHandler(svc *application.UserService, searcher UserSearcher, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Searcher: searcher, Logger: logger}
}

type listUsersQuery struct {
	Page     int    `json:"page" form:"page"`
	PageSize *int   `json:"pageSize" form:"pageSize"`
	Search   string `json:"search" form:"search" binding:"max=200"`
	Sort     string `json:"sort" form:"sort" binding:"max=32"`
}

// pageSize applies the default and clamps to [MinPageSize, MaxPageSize].
func (q listUsersQuery) pageSize() int {
	if q.PageSize == nil {
		return application.DefaultPageSize
	}
	return min(max(*q.PageSize, MinPageSize), MaxPageSize)
}

type searchUsersQuery struct {
	Q    string `json:"q" form:"q" binding:"required,notblank,max=200"`
	Size int    `json:"size" form:"size" binding:"omitempty,min=1,max=50"`
}

func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalid(c, err)
		return
	}
	page, size := application.NormalizePaging(q.Page, q.pageSize())
	res, err := h.Svc.ListPaged(c.Request.Context(), application.PagingRequest{
		Page:     page,
		PageSize: size,
		Search:   q.Search,
		Sort:     q.Sort,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, res, "Users fetched successfully.", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	if h.Searcher == nil {
		response.Fail(c, http.StatusServiceUnavailable, "search is disabled", nil)
		return
	}
	var q searchUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalid(c, err)
		return
	}
	docs, err := h.Searcher.Search(c.Request.Context(), strings.TrimSpace(q.Q), q.Size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, docs, "Users found.", map[string]any{"count": len(docs)})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if u == nil {
		notFound(c, "user")
		return
	}
	response.OK(c, http.StatusOK, u, "User retrieved successfully.", nil)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req application.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+u.ID.String())
	response.OK(c, http.StatusCreated, u, "User created successfully.", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}
	var req application.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if u == nil {
		notFound(c, "user")
		return
	}
	response.OK(c, http.StatusOK, u, "User updated successfully.", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}
	removed, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if !removed {
		notFound(c, "user")
		return
	}
	response.OK(c, http.StatusOK, true, "User deleted successfully.", nil)
}
