package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/iss-spotter/iss-spotter/docs"
	"github.com/iss-spotter/iss-spotter/internal/api/handler"
	"github.com/iss-spotter/iss-spotter/internal/api/middleware"
	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Flyover ports.FlyoverService
	// Lookups is nil when history is disabled.
	Lookups   ports.LookupService
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
	// Registry receives the HTTP metrics; nil uses the Prometheus default.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "iss_spotter",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(deps.Mongo, deps.Redis)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Passes ---
	passes := handler.NewPassHandler(deps.Flyover)
	v1 := e.Group("/v1")
	v1.GET("/passes", passes.Next)
	v1.GET("/passes/ip/:ip", passes.ForIP)
	v1.GET("/passes/coordinates", passes.At)

	// --- History (admin only) ---
	if deps.Lookups != nil && deps.JWTSecret != "" {
		lookups := handler.NewLookupHandler(deps.Lookups)
		history := v1.Group("/lookups", middleware.Auth(deps.JWTSecret), middleware.RBAC(domain.RoleAdmin))
		history.GET("", lookups.List)
		history.GET("/:id", lookups.Get)
	} else {
		deps.Logger.Info().Msg("lookup history routes disabled")
	}

	return e
}
