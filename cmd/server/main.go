package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flight-query-service/internal/infrastructure/config"
	"flight-query-service/internal/infrastructure/persistence"
	"flight-query-service/internal/infrastructure/router"
	"flight-query-service/internal/interface/handler"
	mongoRepo "flight-query-service/internal/interface/repository"
	"flight-query-service/internal/usecase"
	"flight-query-service/pkg/logger"
	"flight-query-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("production").Fatal("Failed to load config", "error", err)
	}

	log := logger.NewLogger(cfg.AppEnv)
	defer log.Sync()
	log.Info("Starting Flight Query Service", "version", cfg.AppVersion, "env", cfg.AppEnv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	flightRecordRepo := mongoRepo.NewMongoFlightRecordRepository(db, cfg.MongoCollection)
	if err := flightRecordRepo.EnsureIndexes(ctx); err != nil {
		log.Warn("Failed to create flight indexes", "error", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(cfg.MetricsNamespace, registry)

	flightQuery := usecase.NewFlightQueryService(flightRecordRepo, appMetrics, log, cfg.StoreQueryTimeout)
	flightHandler := handler.NewFlightHandler(flightQuery, appMetrics, log)

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.New(router.Options{
			Flights:        flightHandler,
			Store:          flightRecordRepo,
			Metrics:        appMetrics,
			Gatherer:       registry,
			Logger:         log,
			AllowedOrigins: cfg.AllowedOrigins,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer disconnectCancel()
	if err := mongoClient.Disconnect(disconnectCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flight Query Service stopped")
}
