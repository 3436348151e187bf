package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rental/internal/handler"
	"rental/internal/middleware"
	"rental/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	VehicleHandler *handler.VehicleHandler
	TripHandler    *handler.TripHandler
	PricingHandler *handler.PricingHandler
	AuthService    *service.AuthService
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
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

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	requireAuth := middleware.RequireAuth(deps.AuthService)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/logout", deps.AuthHandler.Logout)
		}

		// User routes.
		users := v1.Group("/users", requireAuth)
		{
			users.GET("/me", deps.AuthHandler.Me)
			users.GET("", deps.AuthHandler.ListUsers)
		}

		// Pricing routes are public so renters can quote before signing up.
		pricing := v1.Group("/pricing")
		{
			pricing.POST("/quote", deps.PricingHandler.Quote)
			pricing.GET("/classes", deps.PricingHandler.ListClasses)
		}

		// Vehicle routes.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.GET("", deps.VehicleHandler.ListAvailable)
			vehicles.GET("/:id", deps.VehicleHandler.GetVehicle)

			vehicles.POST("", requireAuth, deps.VehicleHandler.RegisterVehicle)
			vehicles.GET("/mine", requireAuth, deps.VehicleHandler.ListMine)
			vehicles.PUT("/:id/status", requireAuth, deps.VehicleHandler.SetStatus)
			vehicles.POST("/:id/verify", requireAuth, deps.VehicleHandler.VerifyVehicle)
			vehicles.GET("/:id/trips", requireAuth, deps.TripHandler.ListVehicleTrips)
		}

		// Trip routes.
		trips := v1.Group("/trips", requireAuth)
		{
			trips.POST("", deps.TripHandler.CreateTrip)
			trips.GET("", deps.TripHandler.ListMyTrips)
			trips.GET("/active", deps.TripHandler.GetActiveTrip)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.POST("/:id/confirm", deps.TripHandler.ConfirmTrip)
			trips.POST("/:id/start", deps.TripHandler.StartTrip)
			trips.POST("/:id/complete", deps.TripHandler.CompleteTrip)
			trips.POST("/:id/cancel", deps.TripHandler.CancelTrip)
			trips.POST("/:id/rating", deps.TripHandler.AddRating)
			trips.POST("/:id/claim", deps.TripHandler.LinkClaim)
		}

		// Claim routes.
		claims := v1.Group("/claims", requireAuth)
		{
			claims.GET("/trips", deps.TripHandler.ListClaimTrips)
		}
	}

	return router
}
