package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
)

const (
	HeaderActor   = "X-Actor"
	maxActorRunes = 100
)

// Actor puts the caller named by X-Actor (or fallback) into the request context,
// where stores read it for CreatedBy/UpdatedBy.
func Actor(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(HeaderActor))
		if r := []rune(actor); len(r) > maxActorRunes {
			actor = string(r[:maxActorRunes])
		}
		if actor == "" {
			actor = fallback
		}
		if actor != "" {
			c.Request = c.Request.WithContext(entity.WithActor(c.Request.Context(), actor))
			c.Set("actor", actor)
		}
		c.Next()
	}
}
