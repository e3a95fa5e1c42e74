package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"tourdesk/internal/handler"
	"tourdesk/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	WizardHandler    *handler.WizardHandler
	ReferenceHandler *handler.ReferenceHandler
	RedisClient      *redis.Client
	NewRelicApp      *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Wizard session routes.
		sessions := v1.Group("/wizard/sessions")
		{
			sessions.POST("", deps.WizardHandler.CreateSession)
			sessions.GET("/:id", deps.WizardHandler.GetSession)
			sessions.DELETE("/:id", deps.WizardHandler.DeleteSession)

			sessions.PUT("/:id/client", deps.WizardHandler.SetClient)
			sessions.DELETE("/:id/client", deps.WizardHandler.ClearClient)

			sessions.PUT("/:id/trip", deps.WizardHandler.SetTrip)
			sessions.PATCH("/:id/trip", deps.WizardHandler.PatchTrip)
			sessions.DELETE("/:id/trip", deps.WizardHandler.ClearTrip)

			sessions.POST("/:id/passengers", deps.WizardHandler.AddPassenger)
			sessions.PUT("/:id/passengers/:index", deps.WizardHandler.UpdatePassenger)
			sessions.DELETE("/:id/passengers/:index", deps.WizardHandler.RemovePassenger)

			sessions.POST("/:id/services", deps.WizardHandler.AddService)
			sessions.PUT("/:id/services/:index", deps.WizardHandler.UpdateService)
			sessions.DELETE("/:id/services/:index", deps.WizardHandler.RemoveService)

			sessions.PUT("/:id/pricing", deps.WizardHandler.SetPricing)
			sessions.POST("/:id/pricing/preview", deps.WizardHandler.PreviewPricing)
			sessions.DELETE("/:id/pricing", deps.WizardHandler.ClearPricing)

			sessions.POST("/:id/steps/next", deps.WizardHandler.NextStep)
			sessions.POST("/:id/steps/previous", deps.WizardHandler.PreviousStep)
			sessions.POST("/:id/steps/goto", deps.WizardHandler.GoToStep)

			sessions.POST("/:id/submit", deps.WizardHandler.Submit)
		}

		// Reference data routes.
		reference := v1.Group("/reference")
		{
			reference.GET("/cities", deps.ReferenceHandler.GetCities)
			reference.GET("/currencies", deps.ReferenceHandler.GetCurrencies)
			reference.GET("/catalog", deps.ReferenceHandler.GetCatalog)
			reference.GET("/tax-rates", deps.ReferenceHandler.GetTaxRates)
			reference.GET("/cancellation-policies", deps.ReferenceHandler.GetCancellationPolicies)
			reference.GET("/exchange-rate", deps.ReferenceHandler.GetExchangeRate)
			reference.POST("/promo-codes/validate", deps.ReferenceHandler.ValidatePromoCode)
		}
	}

	return router
}
