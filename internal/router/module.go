package router

import "github.com/gin-gonic/gin"

// Module is one feature area (users, roles, health, debug) that mounts its routes
// under the /api group, attaching its own limiters.
type Module interface {
	Register(rg *gin.RouterGroup)
}
