package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Webhook    *handler.WebhookHandler
	Checkout   *handler.CheckoutHandler
	Generation *handler.GenerationHandler
	Health     *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, handlers Handlers, verifier middleware.TokenVerifier) {
	router.GET("/healthz", handlers.Health.Check)

	api := router.Group("/api")
	{
		// Stripe calls and browser redirects, no bearer token
		api.POST("/stripe/webhook", handlers.Webhook.Receive)
		api.GET("/stripe/checkout", handlers.Checkout.Complete)
		api.GET("/generation-status", handlers.Generation.Status)

		authed := api.Group("", middleware.Auth(verifier))
		authed.POST("/generations", handlers.Generation.Submit)
		authed.GET("/generations", handlers.Generation.List)
		authed.POST("/generations/retry", handlers.Generation.Retry)
		authed.POST("/generation-status", handlers.Generation.MarkFailed)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider, allowedOrigins []string) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS(allowedOrigins...))
}
