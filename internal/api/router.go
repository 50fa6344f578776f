package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/sgsm/taskboard/internal/api/handler"
	"github.com/sgsm/taskboard/internal/api/middleware"
	"github.com/sgsm/taskboard/internal/core/domain"
	"github.com/sgsm/taskboard/internal/core/ports"
	infrahttp "github.com/sgsm/taskboard/internal/infrastructure/http"
	"github.com/sgsm/taskboard/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth      ports.AuthService
	Board     ports.TaskBoardService
	Projects  ports.ProjectService
	Comments  ports.CommentService
	Users     ports.UserService
	JWTSecret string
	Checks    map[string]handlers.Check
	Log       zerolog.Logger
	// Registerer receives the HTTP request metrics; nil means the default
	// registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "taskboard",
		Registerer: d.Registerer,
	}))

	// --- Health, metrics, docs (no auth required) ---
	infrahttp.RegisterOps(e, d.Checks)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	taskHandler := handler.NewTaskHandler(d.Board)
	projectHandler := handler.NewProjectHandler(d.Projects)
	commentHandler := handler.NewCommentHandler(d.Comments)
	userHandler := handler.NewUserHandler(d.Users)
	authMiddleware := middleware.Auth(d.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	v1 := e.Group("/v1", authMiddleware)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.POST("/users", authHandler.CreateUser)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)

	v1.GET("/users", userHandler.List)

	v1.GET("/projects", projectHandler.List)
	v1.POST("/projects", projectHandler.Create)
	v1.GET("/projects/:id", projectHandler.Get)
	v1.PUT("/projects/:id", projectHandler.Update)
	v1.DELETE("/projects/:id", projectHandler.Delete)
	v1.GET("/projects/:id/role/self", projectHandler.RoleSelf)
	v1.GET("/projects/:id/members", projectHandler.ListMembers)
	v1.POST("/projects/:id/members", projectHandler.AddMember)
	v1.DELETE("/projects/:id/members/:user_id", projectHandler.RemoveMember)

	v1.POST("/projects/:id/comments", commentHandler.Add)
	v1.GET("/projects/:id/comments", commentHandler.List)
	v1.DELETE("/projects/:id/comments/:comment_id", commentHandler.Delete)
	v1.PATCH("/projects/:id/comments/:comment_id/pin", commentHandler.TogglePin)

	v1.POST("/tasks", taskHandler.Create)
	v1.GET("/tasks", taskHandler.List)
	v1.GET("/tasks/:id", taskHandler.Get)
	v1.PUT("/tasks/:id", taskHandler.Update)
	v1.DELETE("/tasks/:id", taskHandler.Delete)

	return e
}

// requestLogger emits one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
