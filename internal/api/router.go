package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/usermgmt/user-service/internal/api/handler"
	"github.com/usermgmt/user-service/internal/api/middleware"
	"github.com/usermgmt/user-service/internal/core/ports"
)

// Dependencies groups everything the router needs to build handlers.
type Dependencies struct {
	Auth     ports.AuthService
	Identity ports.IdentityResolver
	Users    ports.UserService
	Roles    ports.RoleService

	// Readiness probes keyed by dependency name; nil entries are skipped.
	Probes map[string]handler.Pinger

	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer

	Log       zerolog.Logger
	APIPrefix string
	// Swagger mounts /swagger/* when true.
	Swagger bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "usermgmt",
		Registerer: deps.Registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	roleHandler := handler.NewRoleHandler(deps.Roles)
	requireAuth := middleware.Auth(deps.Identity)

	api := e.Group(deps.APIPrefix)

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.DELETE("/me", authHandler.DeactivateMe, requireAuth)

	// --- Protected resources ---
	api.GET("/users", userHandler.List, requireAuth)

	roles := api.Group("/roles", requireAuth)
	roles.GET("", roleHandler.List)
	roles.GET("/:id", roleHandler.GetPermissions)
	roles.PUT("/:id", roleHandler.UpdatePermissions)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Probes)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	if deps.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}
