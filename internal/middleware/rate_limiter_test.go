package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 2}).RateLimit())
	r.GET("/bookings", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings", nil))
		return w
	}

	// the burst passes, the next request is shed
	assert.Equal(t, http.StatusOK, get().Code)
	assert.Equal(t, http.StatusOK, get().Code)

	w := get()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}
