package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"transfer/internal/app"
	"transfer/internal/config"
	"transfer/internal/handler"
	internalRedis "transfer/internal/redis"
	"transfer/internal/repository/postgres"
	"transfer/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	server := wireServer(db, redisClient, nrApp, cfg)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	draftStore := internalRedis.NewDraftStore(redisClient, cfg.Booking.DraftTTL)
	lockStore := internalRedis.NewLockStore(redisClient)
	catalogCache := internalRedis.NewCatalogCache(redisClient)

	// Initialize repositories.
	reservationRepo := postgres.NewReservationRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	settingsRepo := postgres.NewPaymentSettingsRepository(db)
	driverRepo := postgres.NewDriverRepository(db)

	// Initialize services.
	notifier := service.NewNotificationService()
	fare := service.NewFareCalculator()
	splitter := service.NewCommissionSplitter()
	tokens := service.NewTokenService(cfg.Booking.TokenSecret)
	resolver := service.NewPaymentMethodResolver(fare, service.NewMockGateway())
	catalog := service.NewCatalogService(vehicleRepo, serviceRepo, catalogCache)
	bookingService := service.NewBookingService(
		draftStore, catalog, settingsRepo, reservationRepo, fare, resolver, tokens, notifier,
	)
	tripService := service.NewTripService(
		reservationRepo, driverRepo, lockStore, splitter, cfg.Booking.DriverSharePercent, notifier,
	)
	driverService := service.NewDriverService(driverRepo)

	// Initialize handlers.
	bookingHandler := handler.NewBookingHandler(bookingService)
	reservationHandler := handler.NewReservationHandler(tripService, tokens)
	catalogHandler := handler.NewCatalogHandler(catalog)
	driverHandler := handler.NewDriverHandler(driverService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		BookingHandler:     bookingHandler,
		ReservationHandler: reservationHandler,
		CatalogHandler:     catalogHandler,
		DriverHandler:      driverHandler,
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
