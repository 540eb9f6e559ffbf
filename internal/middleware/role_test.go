package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newGuardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewRoleGuard([]string{"admin", "staff"}).Guard())
	r.GET("/bookings", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/bookings", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func TestRoleGuard(t *testing.T) {
	r := newGuardedRouter()

	cases := []struct {
		name   string
		method string
		role   string
		want   int
	}{
		{"read without role", http.MethodGet, "", http.StatusOK},
		{"read with any role", http.MethodGet, "viewer", http.StatusOK},
		{"write as admin", http.MethodPost, "admin", http.StatusCreated},
		{"write as staff", http.MethodPost, "staff", http.StatusCreated},
		{"write without role", http.MethodPost, "", http.StatusForbidden},
		{"write as viewer", http.MethodPost, "viewer", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/bookings", nil)
			if tc.role != "" {
				req.Header.Set(HeaderUserRole, tc.role)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
