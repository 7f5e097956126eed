package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/taskboard-api/internal/api/handler"
	"github.com/taskboard/taskboard-api/internal/api/middleware"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/core/service"
	"github.com/taskboard/taskboard-api/internal/events"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/mongo"
)

// RouterDeps carries the shared infrastructure the router wires handlers to.
// Repositories and services are constructed here; long-lived components
// (bus, notifier, reporter) are built once in main and injected.
type RouterDeps struct {
	MongoClient *mongodriver.Client
	DB          *mongodriver.Database
	Redis       *redis.Client
	Bus         *events.Bus
	Notifier    ports.Notifier
	Reporter    middleware.CrashReporter
	JWTSecret   string
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(middleware.Recover(deps.Reporter))
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("taskboard"))

	// --- Dependencies ---
	userRepo := mongo.NewUserRepository(deps.DB)
	taskRepo := mongo.NewTaskRepository(deps.DB)
	notificationRepo := mongo.NewNotificationRepository(deps.DB)

	authService := service.NewAuthService(userRepo, deps.Bus, deps.JWTSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, notificationRepo, deps.Bus)
	taskService := service.NewTaskService(taskRepo, userRepo, deps.Notifier, deps.Bus, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)
	adminHandler := handler.NewAdminHandler(userRepo)
	healthHandler := handler.NewHealthHandler(deps.MongoClient, deps.Redis)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated API ---
	v1 := e.Group("/api/v1.0", middleware.Auth(deps.JWTSecret))

	v1.PATCH("/users/me/email", userHandler.UpdateEmail, middleware.RBAC(domain.OpUserUpdateEmail))
	v1.PATCH("/users/me/password", userHandler.UpdatePassword, middleware.RBAC(domain.OpUserUpdatePass))
	v1.GET("/users/me/notifications", userHandler.Notifications, middleware.RBAC(domain.OpNotificationsRead))
	v1.GET("/users/me/notifications/:id", userHandler.Notification, middleware.RBAC(domain.OpNotificationsRead))

	v1.POST("/tasks", taskHandler.Create, middleware.RBAC(domain.OpTaskCreate))
	v1.GET("/tasks/:id", taskHandler.Get, middleware.RBAC(domain.OpTaskRead))
	v1.POST("/tasks/:id/comments", taskHandler.AddComment, middleware.RBAC(domain.OpTaskComment))

	v1.GET("/admin/users", adminHandler.ListUsers, middleware.RBAC(domain.OpAdminUsers))

	return e
}
