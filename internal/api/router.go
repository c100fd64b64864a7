package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/taskhub/internal/api/handler"
	"github.com/99minutos/taskhub/internal/api/middleware"
	"github.com/99minutos/taskhub/internal/core/domain"
	"github.com/99minutos/taskhub/internal/core/ports"
	opshttp "github.com/99minutos/taskhub/internal/infrastructure/http"
	"github.com/99minutos/taskhub/internal/infrastructure/http/handlers"
)

// Dependencies are the services the router mounts.
type Dependencies struct {
	Auth     ports.AuthService
	Sessions ports.SessionService
	Tasks    ports.TaskService
	Users    ports.UserService
	Checks   []handlers.Check
	Logger   zerolog.Logger

	// Registerer receives the HTTP request metrics. Nil means the default
	// Prometheus registerer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = newSonicSerializer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "taskhub",
		Registerer: deps.Registerer,
	}))

	// --- Ops: health probes, metrics, swagger (no auth required) ---
	opshttp.RegisterOps(e, deps.Checks...)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	requireAuth := middleware.Auth(deps.Sessions)

	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/me", authHandler.Me, requireAuth)

	// --- Task routes ---
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	tasks := e.Group("/tasks", requireAuth)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Admin routes ---
	adminHandler := handler.NewAdminHandler(deps.Users)
	admin := e.Group("/admin", requireAuth, middleware.RBAC(domain.RoleAdmin))
	admin.PUT("/assign-manager", adminHandler.AssignManager)

	return e
}
