package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wanderplan/travel-api/internal/api/handler"
	"github.com/wanderplan/travel-api/internal/api/middleware"
	"github.com/wanderplan/travel-api/internal/core/ports"
)

// Dependencies carries everything the router needs, constructed once in main.
type Dependencies struct {
	Users     ports.UserService
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Log       zerolog.Logger
	// Metrics defaults to the global registerer; tests inject their own so
	// building multiple routers does not collide on collector registration.
	Metrics prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer := deps.Metrics
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "travel_api",
		Registerer: registerer,
	}))

	userHandler := handler.NewUserHandler(deps.Users)
	auth := middleware.Auth(deps.JWTSecret)

	// --- Account routes ---
	users := e.Group("/users")
	users.POST("", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/forgot-password", userHandler.ForgotPassword)
	users.POST("/verify-otp", userHandler.VerifyOTP)
	users.POST("/reset-password", userHandler.ResetPassword)

	users.GET("", userHandler.List, auth)
	users.GET("/info", userHandler.Info, auth)
	users.PUT("/update", userHandler.Update, auth)
	users.PUT("/change-password", userHandler.ChangePassword, auth)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
