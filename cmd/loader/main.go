package main

import (
	"context"
	"flag"
	"log"

	"github.com/chrisdamba/delaycompanion/internal/loader"
	"github.com/chrisdamba/delaycompanion/internal/logging"
	"github.com/chrisdamba/delaycompanion/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	flightsCSV := flag.String("flights", "data/flightdelays.csv", "path to flights CSV")
	passengersCSV := flag.String("passengers", "data/passengers.csv", "path to passengers CSV")
	schemaOnly := flag.Bool("schema-only", false, "create tables and indexes without loading data")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatalw("failed to create connection pool", "error", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatalw("failed to ping database", "error", err)
	}

	l := loader.NewLoader(pool)

	if err := l.CreateSchema(ctx); err != nil {
		logger.Fatalw("schema setup failed", "error", err)
	}
	logger.Infow("schema ready")

	if *schemaOnly {
		return
	}

	flights, err := l.LoadFlights(ctx, *flightsCSV)
	if err != nil {
		logger.Fatalw("flight load failed", "error", err, "loaded", flights)
	}
	logger.Infow("flights loaded", "count", flights, "source", *flightsCSV)

	passengers, err := l.LoadPassengers(ctx, *passengersCSV)
	if err != nil {
		logger.Fatalw("passenger load failed", "error", err, "loaded", passengers)
	}
	logger.Infow("passengers loaded", "count", passengers, "source", *passengersCSV)
}
