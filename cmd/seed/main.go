package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"
	"time"

	"flight-query-service/internal/infrastructure/config"
	"flight-query-service/internal/infrastructure/persistence"
	mongoRepo "flight-query-service/internal/interface/repository"
	"flight-query-service/internal/usecase"
	"flight-query-service/pkg/logger"
)

func main() {
	count := flag.Int("count", 1000, "number of flights to generate")
	seed := flag.Uint64("seed", 0, "random seed, 0 uses the current time")
	drop := flag.Bool("drop", false, "delete existing flights first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("production").Fatal("Failed to load config", "error", err)
	}

	log := logger.NewLogger(cfg.AppEnv)
	defer log.Sync()

	if *count < 0 {
		log.Fatal("Invalid flight count", "count", *count)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	log.Info("Seeding flights", "count", *count, "seed", *seed, "collection", cfg.MongoCollection)

	repo := mongoRepo.NewMongoFlightRecordRepository(db, cfg.MongoCollection)
	seeder := usecase.NewFlightSeeder(repo, log, rand.New(rand.NewPCG(*seed, *seed>>1)))

	inserted, err := seeder.Seed(ctx, *count, *drop)
	if err == nil {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn("Failed to create flight indexes", "error", err)
		}
		log.Info("Data uploaded", "inserted", inserted)
	} else {
		log.Error("Seeding failed", "inserted", inserted, "error", err)
	}

	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}
	if err != nil {
		os.Exit(1)
	}
}
