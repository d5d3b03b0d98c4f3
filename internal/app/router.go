package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"transfer/internal/handler"
	"transfer/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	BookingHandler     *handler.BookingHandler
	ReservationHandler *handler.ReservationHandler
	CatalogHandler     *handler.CatalogHandler
	DriverHandler      *handler.DriverHandler
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
	AllowedOrigins     []string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Booking wizard routes.
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", deps.BookingHandler.CreateDraft)
			bookings.GET("/:id", deps.BookingHandler.GetDraft)
			bookings.POST("/:id/advance", deps.BookingHandler.Advance)
			bookings.POST("/:id/back", deps.BookingHandler.Back)
			bookings.GET("/:id/payment-methods", deps.BookingHandler.PaymentMethods)
			bookings.POST("/:id/confirm", deps.BookingHandler.Confirm)
		}

		// Catalog routes.
		v1.GET("/vehicles", deps.CatalogHandler.ListVehicles)
		v1.GET("/services", deps.CatalogHandler.ListServices)

		// Reservation lifecycle routes.
		reservations := v1.Group("/reservations")
		{
			reservations.GET("", deps.ReservationHandler.List)
			reservations.POST("/verify", deps.ReservationHandler.Verify)
			reservations.GET("/:id", deps.ReservationHandler.Get)
			reservations.POST("/:id/assign", deps.ReservationHandler.Assign)
			reservations.POST("/:id/start", deps.ReservationHandler.Start)
			reservations.POST("/:id/complete", deps.ReservationHandler.Complete)
			reservations.POST("/:id/cancel", deps.ReservationHandler.Cancel)
		}

		// Driver registry routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.DriverHandler.Register)
			drivers.GET("", deps.DriverHandler.List)
		}
	}

	return router
}
