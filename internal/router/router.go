package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-portal/internal/middleware"
	"github.com/jwalitptl/therapy-portal/pkg/metrics"
	"github.com/jwalitptl/therapy-portal/pkg/security"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type RouterConfig struct {
	Mode             string
	CORSConfig       middleware.CORSConfig
	RateLimitEnabled bool
	RateLimit        middleware.RateLimiterConfig
	Security         middleware.SecurityConfig
	MaxBodyBytes     int64
	MaxUploadBytes   int64
}

// Handlers groups everything mounted under /api/v1.
type Handlers struct {
	Health  Handler
	Site    Handler
	Booking Handler
	Notice  Handler
	Admin   Handler
}

type Router struct {
	engine    *gin.Engine
	handlers  Handlers
	adminGate *security.AdminGate
	config    RouterConfig
}

func NewRouter(
	handlers Handlers,
	adminGate *security.AdminGate,
	notices middleware.Notifier,
	m *metrics.Metrics,
	config RouterConfig,
) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = middleware.DefaultMaxBodySize
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = middleware.DefaultMaxUploadSize
	}

	engine := gin.New()
	engine.MaxMultipartMemory = 8 << 20

	engine.Use(
		middleware.RequestID(),
		middleware.ClientID(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.FailureNotice(notices),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.SecurityHeaders(config.Security),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimitEnabled {
		engine.Use(middleware.NewRateLimiter(config.RateLimit).RateLimit())
	}

	return &Router{
		engine:    engine,
		handlers:  handlers,
		adminGate: adminGate,
		config:    config,
	}
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(api)
	}

	public := api.Group("", middleware.SizeLimit(r.config.MaxBodyBytes))
	for _, h := range []Handler{r.handlers.Site, r.handlers.Booking, r.handlers.Notice} {
		if h != nil {
			h.RegisterRoutes(public)
		}
	}

	admin := api.Group("/admin",
		middleware.AdminGate(r.adminGate),
		middleware.Cache(middleware.NoStoreConfig()),
		middleware.SizeLimit(r.config.MaxUploadBytes),
	)
	if r.handlers.Admin != nil {
		r.handlers.Admin.RegisterRoutes(admin)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
