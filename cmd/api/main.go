package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chrisdamba/delaycompanion/internal/api"
	"github.com/chrisdamba/delaycompanion/internal/logging"
	"github.com/chrisdamba/delaycompanion/internal/metrics"
	"github.com/chrisdamba/delaycompanion/internal/ports"
	"github.com/chrisdamba/delaycompanion/internal/repository"
	"github.com/chrisdamba/delaycompanion/internal/service"
	"github.com/chrisdamba/delaycompanion/internal/utils"
	"github.com/chrisdamba/delaycompanion/pkg/config"
	"github.com/chrisdamba/delaycompanion/pkg/health"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type App struct {
	config  *config.Config
	server  *http.Server
	db      *pgxpool.Pool
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewApp(cfg *config.Config, logger *zap.SugaredLogger) *App {
	return &App{
		config: cfg,
		log:    logger,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	if err := a.setupServer(); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	poolCfg, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

func (a *App) setupServer() error {
	a.metrics = metrics.New(prometheus.DefaultRegisterer)

	svc := a.setupService()
	router := a.setupRouter(svc)

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      router,
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

func (a *App) setupService() ports.AssistService {
	flights := repository.NewFlightRepository(a.db)
	passengers := repository.NewPassengerRepository(a.db)
	return service.NewAssistService(flights, passengers, a.log, a.metrics)
}

func (a *App) setupRouter(svc ports.AssistService) http.Handler {
	router := chi.NewRouter()
	router.Use(a.metrics.Middleware)

	router.Get("/metrics", promhttp.Handler().ServeHTTP)

	router.Route("/v1", func(v1 chi.Router) {
		v1.Get("/health", health.HealthGet())

		v1.Route("/flights", func(flights chi.Router) {
			flights.Get("/delayed", api.ListDelayedFlightsHandler(svc))
			flights.Get("/{id}", api.GetFlightHandler(svc))
			flights.Get("/{id}/rebooking-options", api.GetRebookingOptionsHandler(svc))
			flights.Get("/{id}/passengers", api.ListFlightPassengersHandler(svc))
		})

		v1.Route("/passengers", func(passengers chi.Router) {
			passengers.Get("/{id}", api.GetPassengerHandler(svc))
			passengers.Get("/{id}/handoff-context", api.HandoffContextHandler(svc))
			passengers.Post("/{id}/rebook", utils.AllowedContentTypes(
				api.RebookPassengerHandler(svc),
				"application/json",
			))
		})
	})

	return router
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.log.Infow("starting server", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
		a.log.Infow("starting graceful shutdown")
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.db != nil {
		a.db.Close()
	}

	return nil
}

func main() {
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

	app := NewApp(cfg, logger)
	if err := app.Initialize(ctx); err != nil {
		logger.Fatalw("failed to initialize application", "error", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Fatalw("application error", "error", err)
	}
}
