package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rutacostera/service-routes/internal/application"
	"github.com/rutacostera/service-routes/internal/config"
	"github.com/rutacostera/service-routes/internal/domain/routing"
	routeEvents "github.com/rutacostera/service-routes/internal/events"
	"github.com/rutacostera/service-routes/internal/handler"
	"github.com/rutacostera/service-routes/internal/platform/auth"
	"github.com/rutacostera/service-routes/internal/platform/database"
	"github.com/rutacostera/service-routes/internal/platform/health"
	"github.com/rutacostera/service-routes/internal/platform/kafka"
	"github.com/rutacostera/service-routes/internal/platform/logger"
	"github.com/rutacostera/service-routes/internal/platform/middleware"
	"github.com/rutacostera/service-routes/internal/provider"
	"github.com/rutacostera/service-routes/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-routes")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-routes",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.VehicleModel{},
			&repository.FuelPriceModel{},
			&repository.EstimateModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		dbURL := dbConfig.DatabaseURL()
		if err := database.RunMigrations(dbURL, "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	vehicleRepo := repository.NewGormVehicleRepository(db)
	fuelPriceRepo := repository.NewGormFuelPriceRepository(db)
	estimateRepo := repository.NewGormEstimateRepository(db)

	// Destination catalog and route provider
	catalog := routing.DefaultCatalog()
	directions := provider.NewGoogleDirections(cfg.GoogleMapsAPIKey, cfg.ProviderTimeout, log)

	// Initialize application services
	authService := application.NewAuthService(userRepo, jwtManager, log)
	vehicleService := application.NewVehicleService(vehicleRepo, log)
	fuelPriceService := application.NewFuelPriceService(fuelPriceRepo, log)
	estimateService := application.NewEstimateService(
		catalog,
		directions,
		cfg.ProviderTimeout,
		estimateRepo,
		vehicleRepo,
		fuelPriceRepo,
		kafkaProducer,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed default fuel prices on an empty table
	fuelPriceService.SeedInitialPrices(ctx)

	// Initialize and start the fuel price event consumer in a goroutine
	groupID := cfg.KafkaConfig.GroupPrefix + "routes-service"
	priceConsumer := routeEvents.NewFuelPriceEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		fuelPriceService,
		log,
	)
	defer func() { _ = priceConsumer.Close() }()

	go func() {
		log.Info("starting fuel price event consumer")
		if err := priceConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("fuel price event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	fuelPriceHandler := handler.NewFuelPriceHandler(fuelPriceService)
	estimateHandler := handler.NewEstimateHandler(estimateService)
	destinationHandler := handler.NewDestinationHandler(catalog)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-routes")
	healthHandler.RegisterRoutes(router)

	// Register routes
	authHandler.RegisterRoutes(&router.RouterGroup)
	destinationHandler.RegisterRoutes(&router.RouterGroup)
	vehicleHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	fuelPriceHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	estimateHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-routes...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-routes stopped")
}
