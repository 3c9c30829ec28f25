package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/infra/config"
	"github.com/articlepost/account-service/internal/transport/http/handlers"
	"github.com/articlepost/account-service/internal/transport/http/middleware"
	"github.com/articlepost/account-service/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Registration *usecase.RegistrationService
	Passwords    *usecase.PasswordService
	Profile      *usecase.ProfileService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Services ServiceSet
	Metrics  *middleware.HTTPMetrics
	Database DatabaseChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	checks := map[string]handlers.ReadinessCheck{}
	if deps.Database != nil {
		checks["mongodb"] = deps.Database.Ping
	}
	healthHandler := handlers.NewHealthHandler(checks)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(deps.Services.Auth)

	accountHandler := handlers.NewAccountHandler(deps.Services.Registration, deps.Services.Profile)
	authHandler := handlers.NewAuthHandler(deps.Services.Auth)
	passwordHandler := handlers.NewPasswordHandler(deps.Services.Passwords)

	user := r.Group("/user")
	{
		user.POST("", accountHandler.Register)
		user.POST("/login", authHandler.Login)
		user.POST("/forgotpassword", passwordHandler.ForgotPassword)
		user.POST("/resetpassword/:token", passwordHandler.ResetPassword)

		user.POST("/updatepassword", requireAuth, passwordHandler.UpdatePassword)
		user.GET("/get-current-user", requireAuth, accountHandler.CurrentUser)
		user.PATCH("/update-user-profile-image", requireAuth, accountHandler.UpdateProfileImage)
	}

	return r
}
