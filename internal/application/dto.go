package application

import (
	"time"

	"github.com/google/uuid"
)

// Paging defaults applied when the request carries non-positive values.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

type PagingRequest struct {
	Page     int
	PageSize int
	Search   string
	Sort     string
}

type PagedResult[T any] struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	Items      []T   `json:"items"`
}

type RoleItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type UserListItem struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Active    bool       `json:"active"`
	Roles     []RoleItem `json:"roles"`
}

type UserDetail struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Active      bool       `json:"active"`
	CreatedDate time.Time  `json:"createdDate"`
	UpdatedDate *time.Time `json:"updatedDate"`
	Roles       []RoleItem `json:"roles"`
}

// UserCreate is bound straight from the request body.
// A nil RoleIDs leaves the new user without roles.
type UserCreate struct {
	FirstName string      `json:"firstName" binding:"personname"`
	LastName  string      `json:"lastName" binding:"personname"`
	Email     string      `json:"email" binding:"required,email,max=256"`
	Active    bool        `json:"active"`
	RoleIDs   []uuid.UUID `json:"roleIds" binding:"omitempty,unique,dive,nonnil_uuid"`
}

// UserUpdate replaces every editable field. RoleIDs is the complete desired
// set; nil and empty both clear the user's roles.
type UserUpdate struct {
	FirstName string      `json:"firstName" binding:"personname"`
	LastName  string      `json:"lastName" binding:"personname"`
	Email     string      `json:"email" binding:"required,email,max=256"`
	Active    bool        `json:"active"`
	RoleIDs   []uuid.UUID `json:"roleIds" binding:"omitempty,unique,dive,nonnil_uuid"`
}

// RoleWrite is accepted only so role mutations can be rejected uniformly.
type RoleWrite struct {
	Name string `json:"name"`
}
