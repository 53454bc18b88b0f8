// File: salonflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonflow/config"
	"salonflow/cron"
	"salonflow/database"
	recordsRepo "salonflow/database/repository/records"
	"salonflow/handlers"
	"salonflow/middleware"
	"salonflow/routes"
	"salonflow/services/booking"
	"salonflow/services/catalog"
	"salonflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	utils.InitCatalogCache()

	// The archive is optional: without a database URL, confirmed bookings
	// are not recorded locally and the flow still completes.
	var archive recordsRepo.BookingRecordRepository
	var mongoClient *mongo.Client
	if config.AppConfig.DatabaseURL != "" {
		database.InitDB()
		mongoClient = database.MongoClient
		archive = recordsRepo.NewMongoRecordRepo()
	} else {
		logger.Sugar().Warn("main: no database URL configured, booking archive disabled")
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	catalogService := catalog.NewCatalogService(utils.GetCatalogCacheClient())

	var reminders booking.ReminderScheduler
	if config.AppConfig.RemindersEnabled {
		reminders = cron.NewScheduler()
		cron.InitReminderWorker(cron.LogNotifier{})
	}

	engine := &booking.Engine{
		Store:     booking.NewSessionStore(utils.GetSessionCacheClient()),
		Catalog:   catalogService,
		Resolver:  booking.NewAvailabilityResolver(booking.NewHTTPRosterSource()),
		Summary:   booking.NewSummaryBuilder(),
		Submitter: booking.NewHTTPBookingSubmitter(),
		Archive:   archive,
		Reminders: reminders,
		Tenant:    config.AppConfig.TenantID,
	}

	bookingHandler := handlers.NewBookingHandler(engine)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	routes.RegisterRoutes(router, bookingHandler, catalogHandler)

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetSessionCacheClient(),
		utils.GetCatalogCacheClient(),
	}, mongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
