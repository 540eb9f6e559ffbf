package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/inkstudio/booking-api/internal/handler"
	"github.com/inkstudio/booking-api/internal/middleware"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine    *gin.Engine
	roleGuard *middleware.RoleGuard
	artistH   Handler
	customerH Handler
	bookingH  Handler
	paymentH  Handler
	healthH   Handler
	h         *handler.Handler
	metrics   *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

type Config struct {
	RateLimit     rate.Limit
	RateBurst     int
	Timeout       time.Duration
	CORSConfig    middleware.CORSConfig
	WriteRoles    []string
	MetricsPrefix string
}

func NewRouter(
	artistH Handler,
	customerH Handler,
	bookingH Handler,
	paymentH Handler,
	healthH Handler,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	if config.Timeout <= 0 {
		config.Timeout = middleware.DefaultTimeoutConfig().Duration
	}

	r := &Router{
		engine:    engine,
		roleGuard: middleware.NewRoleGuard(config.WriteRoles),
		artistH:   artistH,
		customerH: customerH,
		bookingH:  bookingH,
		paymentH:  paymentH,
		healthH:   healthH,
		h:         h,
		metrics:   initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
	)
	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", r.h.MetricsHandler)
	r.healthH.RegisterRoutes(r.engine.Group(""))

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	engine := api.Group("")
	engine.Use(r.roleGuard.Guard())

	r.artistH.RegisterRoutes(engine)
	r.customerH.RegisterRoutes(engine)
	r.bookingH.RegisterRoutes(engine)
	r.paymentH.RegisterRoutes(engine)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
