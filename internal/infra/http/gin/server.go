package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybook/internal/infra/config"
	"staybook/internal/infra/obs"
)

type ListingHTTP interface {
	Overview(c *gin.Context)
	Availability(c *gin.Context)
	Quote(c *gin.Context)
}

type SelectionHTTP interface {
	Start(c *gin.Context)
	Get(c *gin.Context)
	Pick(c *gin.Context)
	SetGuests(c *gin.Context)
	Clear(c *gin.Context)
}

type Handlers struct {
	Listing   ListingHTTP
	Selection SelectionHTTP
	Metrics   http.Handler
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, obsMW, health, h),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.AccessLog())
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)
	if h.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(h.Metrics))
	}

	api := router.Group("/api/v1")
	if cfg.RateLimitRPS > 0 {
		api.Use(NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	}
	if h.Listing != nil {
		api.GET("/listings/:id/overview", h.Listing.Overview)
		api.GET("/listings/:id/availability", h.Listing.Availability)
		api.GET("/listings/:id/quote", h.Listing.Quote)
	}
	if h.Selection != nil {
		api.POST("/listings/:id/selections", h.Selection.Start)
		api.GET("/selections/:id", h.Selection.Get)
		api.POST("/selections/:id/dates", h.Selection.Pick)
		api.DELETE("/selections/:id/dates", h.Selection.Clear)
		api.PUT("/selections/:id/guests", h.Selection.SetGuests)
	}
	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
