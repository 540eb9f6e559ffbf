package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const HeaderUserRole = "X-User-Role"

// RoleGuard gates mutating requests on the caller's role. Identity is
// resolved upstream; this engine only consumes the resulting role string
// from the X-User-Role header. Reads are open to any caller.
type RoleGuard struct {
	writeRoles map[string]bool
}

func NewRoleGuard(writeRoles []string) *RoleGuard {
	allowed := make(map[string]bool, len(writeRoles))
	for _, role := range writeRoles {
		allowed[role] = true
	}
	return &RoleGuard{writeRoles: allowed}
}

func (g *RoleGuard) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		role := c.GetHeader(HeaderUserRole)
		if !g.writeRoles[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: "role not permitted to modify bookings",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}
		c.Next()
	}
}
